package entity

import "strings"

const PaymentMethodCard = "card"

// PaymentDetails is transient card input. It is validated locally, sent on
// the single booking-creation call and never persisted.
type PaymentDetails struct {
	CardNumber string `json:"cardNumber"`
	ExpiryDate string `json:"expiryDate"`
	CVV        string `json:"cvv"`
	CardHolder string `json:"cardHolder"`

	// CardHolderName is the legacy field name some callers still send.
	CardHolderName string `json:"cardHolderName,omitempty"`
}

// Normalize re-derives the cardholder from alternate field names and trims
// whitespace. The result is what goes on the wire.
func (p PaymentDetails) Normalize() PaymentDetails {
	holder := strings.TrimSpace(p.CardHolder)
	if holder == "" {
		holder = strings.TrimSpace(p.CardHolderName)
	}
	return PaymentDetails{
		CardNumber: p.CardNumber,
		ExpiryDate: p.ExpiryDate,
		CVV:        p.CVV,
		CardHolder: holder,
	}
}
