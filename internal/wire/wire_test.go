package wire

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eventora-client/internal/data/store"
	"eventora-client/internal/gateway"
	"eventora-client/internal/usecase"
	"eventora-client/pkg/utils"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubBackend is a minimal stand-in for the authoritative API.
func stubBackend(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"token":"issued-token","data":{"name":"Jane"}}`))
	})
	mux.HandleFunc("GET /events/evt-1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":{"_id":"evt-1","title":"Summer Jazz Night","date":"2030-07-01","price":500,"totalSeats":10,"availableSeats":10}}`))
	})
	mux.HandleFunc("POST /bookings", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer issued-token" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"success":false,"message":"jwt malformed"}`))
			return
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"success":true,"data":{"_id":"bkg-1","eventId":"evt-1","numberOfTickets":2,"selectedSeats":[{"row":"A","seatNumber":1},{"row":"A","seatNumber":2}],"totalPrice":1000,"status":"confirmed","paymentStatus":"paid","bookingReference":"REF-001"}}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestApp(t *testing.T) *App {
	t.Helper()

	backend := stubBackend(t)
	logger := zap.NewNop()

	config := &utils.Config{
		Backend: utils.BackendConfig{BaseURL: backend.URL, Timeout: 5 * time.Second},
		Payment: utils.PaymentConfig{ProcessingDelay: 0},
	}

	st, err := store.NewStore(afero.NewMemMapFs(), "/data", logger)
	require.NoError(t, err)

	var service *usecase.Service
	gw := gateway.NewGateway(config.Backend, st.Credential, func() {
		if service != nil {
			service.Session.HandleUnauthorized()
		}
	}, logger)
	service = usecase.NewService(gw, st, config, logger)

	return Wiring(service, gw, config, logger)
}

func TestBookingFlowEndToEnd(t *testing.T) {
	app := newTestApp(t)
	edge := httptest.NewServer(app.Router)
	t.Cleanup(edge.Close)

	bookingPayload, err := json.Marshal(map[string]any{
		"eventId": "evt-1",
		"selectedSeats": []map[string]any{
			{"row": "A", "seatNumber": 1},
			{"row": "A", "seatNumber": 2},
		},
		"paymentDetails": map[string]string{
			"cardNumber": "4111111111111111",
			"expiryDate": "12/30",
			"cvv":        "123",
			"cardHolder": "Jane Doe",
		},
	})
	require.NoError(t, err)

	t.Run("booking before login is rejected", func(t *testing.T) {
		resp, err := http.Post(edge.URL+"/api/bookings", "application/json", bytes.NewReader(bookingPayload))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("login persists the credential", func(t *testing.T) {
		resp, err := http.Post(edge.URL+"/api/auth/login", "application/json",
			bytes.NewReader([]byte(`{"email":"jane@example.com","password":"secret"}`)))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Success bool `json:"success"`
			Data    struct {
				Token string `json:"token"`
			} `json:"data"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.True(t, body.Success)
		assert.Equal(t, "issued-token", body.Data.Token)
	})

	t.Run("booking after login succeeds", func(t *testing.T) {
		resp, err := http.Post(edge.URL+"/api/bookings", "application/json", bytes.NewReader(bookingPayload))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var body struct {
			Success bool `json:"success"`
			Data    struct {
				Booking struct {
					ID         string  `json:"_id"`
					TotalPrice float64 `json:"totalPrice"`
				} `json:"booking"`
				SeatLabels     []string `json:"seatLabels"`
				TotalPaidLabel string   `json:"totalPaidLabel"`
			} `json:"data"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

		assert.True(t, body.Success)
		assert.Equal(t, "bkg-1", body.Data.Booking.ID)
		assert.Equal(t, []string{"A1", "A2"}, body.Data.SeatLabels)
		assert.Equal(t, "Total Paid: ₹1000", body.Data.TotalPaidLabel)
	})

	t.Run("general admission booking without seats succeeds", func(t *testing.T) {
		gaPayload, err := json.Marshal(map[string]any{
			"eventId":         "evt-1",
			"numberOfTickets": 2,
			"paymentDetails": map[string]string{
				"cardNumber": "4111111111111111",
				"expiryDate": "12/30",
				"cvv":        "123",
				"cardHolder": "Jane Doe",
			},
		})
		require.NoError(t, err)

		resp, err := http.Post(edge.URL+"/api/bookings", "application/json", bytes.NewReader(gaPayload))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("booking with neither seats nor a ticket count is rejected", func(t *testing.T) {
		emptyPayload, err := json.Marshal(map[string]any{
			"eventId": "evt-1",
			"paymentDetails": map[string]string{
				"cardNumber": "4111111111111111",
				"expiryDate": "12/30",
				"cvv":        "123",
				"cardHolder": "Jane Doe",
			},
		})
		require.NoError(t, err)

		resp, err := http.Post(edge.URL+"/api/bookings", "application/json", bytes.NewReader(emptyPayload))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("invalid card is rejected locally", func(t *testing.T) {
		badPayload := bytes.Replace(bookingPayload, []byte("4111111111111111"), []byte("4111"), 1)

		resp, err := http.Post(edge.URL+"/api/bookings", "application/json", bytes.NewReader(badPayload))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body struct {
			Success bool   `json:"success"`
			Message string `json:"message"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.False(t, body.Success)
		assert.Equal(t, "Enter a valid card number to continue.", body.Message)
	})

	t.Run("health check", func(t *testing.T) {
		resp, err := http.Get(edge.URL + "/health")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}
