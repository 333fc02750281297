package usecase

import (
	"context"
	"strconv"
	"strings"
	"time"

	"eventora-client/internal/data/entity"

	"go.uber.org/zap"
)

// PaymentSucceeded is the local trigger emitted after a simulated capture.
// It does not represent a real charge; it only gates the reservation
// orchestrator.
type PaymentSucceeded struct {
	Details     entity.PaymentDetails
	CompletedAt time.Time
}

// PaymentService collects card-like input and performs local-only
// validation. Nothing here talks to a payment gateway.
type PaymentService interface {
	FormatCardNumber(raw string) string
	FormatExpiry(raw string) string

	// Validate reports the first failing rule, in a fixed order: card
	// number, expiry format, expiry date, CVV, cardholder.
	Validate(details entity.PaymentDetails) error

	// Submit validates, waits the configured simulated latency, then emits
	// PaymentSucceeded with normalized details.
	Submit(ctx context.Context, details entity.PaymentDetails) (*PaymentSucceeded, error)
}

type paymentService struct {
	processingDelay time.Duration
	log             *zap.Logger
	now             func() time.Time
}

func NewPaymentService(processingDelay time.Duration, log *zap.Logger) PaymentService {
	return &paymentService{
		processingDelay: processingDelay,
		log:             log.With(zap.String("service", "payment")),
		now:             time.Now,
	}
}

func digitsOnly(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatCardNumber strips non-digits, groups into 4-digit blocks and caps
// the result at 19 characters (16 digits + 3 spaces).
func (s *paymentService) FormatCardNumber(raw string) string {
	cleaned := digitsOnly(raw)

	var groups []string
	for i := 0; i < len(cleaned); i += 4 {
		end := i + 4
		if end > len(cleaned) {
			end = len(cleaned)
		}
		groups = append(groups, cleaned[i:end])
	}

	formatted := strings.Join(groups, " ")
	if len(formatted) > 19 {
		formatted = formatted[:19]
	}
	return formatted
}

// FormatExpiry strips non-digits and inserts the slash after the month,
// capping at MM/YY.
func (s *paymentService) FormatExpiry(raw string) string {
	cleaned := digitsOnly(raw)
	if len(cleaned) >= 2 {
		tail := cleaned[2:]
		if len(tail) > 2 {
			tail = tail[:2]
		}
		return cleaned[:2] + "/" + tail
	}
	return cleaned
}

func (s *paymentService) Validate(details entity.PaymentDetails) error {
	if len(digitsOnly(details.CardNumber)) < 13 {
		return ErrInvalidCardNumber
	}

	if len(details.ExpiryDate) != 5 || details.ExpiryDate[2] != '/' {
		return ErrInvalidExpiryFormat
	}

	month, monthErr := strconv.Atoi(details.ExpiryDate[:2])
	year, yearErr := strconv.Atoi(details.ExpiryDate[3:])
	if monthErr != nil || month < 1 || month > 12 {
		return ErrInvalidExpiryFormat
	}
	if yearErr != nil {
		return ErrInvalidExpiryFormat
	}

	now := s.now()
	currentYear := now.Year() % 100
	currentMonth := int(now.Month())
	if year < currentYear || (year == currentYear && month < currentMonth) {
		return ErrExpiredCard
	}

	if len(digitsOnly(details.CVV)) < 3 {
		return ErrInvalidCVV
	}

	if strings.TrimSpace(details.CardHolder) == "" && strings.TrimSpace(details.CardHolderName) == "" {
		return ErrMissingCardHolder
	}

	return nil
}

func (s *paymentService) Submit(ctx context.Context, details entity.PaymentDetails) (*PaymentSucceeded, error) {
	if err := s.Validate(details); err != nil {
		return nil, err
	}

	// Simulated capture latency; the UI keeps the submit control disabled
	// for the duration.
	if s.processingDelay > 0 {
		timer := time.NewTimer(s.processingDelay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	s.log.Info("Payment capture simulated", zap.Duration("delay", s.processingDelay))

	return &PaymentSucceeded{
		Details:     details.Normalize(),
		CompletedAt: s.now(),
	}, nil
}
