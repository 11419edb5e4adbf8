package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/oklog/ulid/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"camerpay-payments/internal/domain"
	"camerpay-payments/internal/domain/model"
	"camerpay-payments/internal/domain/ports/adapter"
	"camerpay-payments/internal/infra/metrics"
	"camerpay-payments/internal/usecase"
)

// SignatureHeader carries the hex HMAC-SHA256 of the raw webhook body.
const SignatureHeader = "X-Tranzak-Signature"

type Server struct {
	charges  usecase.ChargeUseCase
	verifier adapter.WebhookVerifier
	log      *zerolog.Logger
}

func NewServer(charges usecase.ChargeUseCase, verifier adapter.WebhookVerifier, logger *zerolog.Logger) *Server {
	return &Server{
		charges:  charges,
		verifier: verifier,
		log:      logger,
	}
}

// Router builds the service mux. The charge API is the entry point the front
// end calls with validated-ish form input; the webhook route is Tranzak's.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Post("/api/v1/charges", s.handleCharge)
	r.Post("/api/v1/webhooks/tranzak", s.handleTranzakWebhook)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "OK")
}

type chargeRequest struct {
	PhoneNumber   string `json:"phone_number"`
	Amount        int64  `json:"amount"`
	PaymentMethod string `json:"payment_method"`
	PaymentFlow   string `json:"payment_flow"`
	Memo          string `json:"memo"`
}

// validate performs the form-level checks the charge core assumes were done
// by its caller.
func (c *chargeRequest) validate() error {
	if !isNineDigits(c.PhoneNumber) {
		return errors.New("phone_number must be exactly 9 digits")
	}
	if c.Amount < 100 {
		return errors.New("amount must be at least 100 XAF")
	}
	if c.PaymentMethod == "" {
		return errors.New("payment_method is required")
	}
	switch c.PaymentFlow {
	case "", "direct", "redirect":
	default:
		return errors.New("payment_flow must be direct or redirect")
	}
	return nil
}

func isNineDigits(s string) bool {
	if len(s) != 9 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (s *Server) handleCharge(w http.ResponseWriter, r *http.Request) {
	var req chargeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.validate(); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	outcome := s.charges.Initiate(r.Context(), model.ChargeInput{
		PhoneNumber:   req.PhoneNumber,
		Amount:        req.Amount,
		PaymentMethod: model.PaymentMethod(req.PaymentMethod),
		PaymentFlow:   model.PaymentFlow(req.PaymentFlow),
		Memo:          req.Memo,
	})

	// Initiator failures are data for the front end to render, not HTTP errors.
	writeJSON(w, http.StatusOK, outcome)
}

func (s *Server) handleTranzakWebhook(w http.ResponseWriter, r *http.Request) {
	// Capture the body exactly once. Both the signature check and the JSON
	// parse must see the same bytes; the stream is never re-read.
	body, err := io.ReadAll(r.Body)
	if err != nil {
		metrics.IncWebhookDelivery("read_error")
		http.Error(w, "Failed to read body", http.StatusBadRequest)
		return
	}

	// Delivery id lets operators correlate a rejection without us ever
	// logging the (possibly forged) payload itself.
	deliveryID := ulid.Make().String()
	logger := s.log.With().Str("delivery_id", deliveryID).Logger()

	event, err := s.verifier.VerifyAndParse(body, r.Header.Get(SignatureHeader))
	switch {
	case err == nil:
		// Reconciliation against prior requests is a future consumer; for
		// now the verified event terminates in the log.
		logger.Info().
			Str("transaction_id", event.TransactionID).
			Str("status", event.Status).
			Msg("tranzak webhook verified")
		metrics.IncWebhookDelivery("verified")
		writeJSON(w, http.StatusOK, map[string]string{"message": "Webhook received"})
	case errors.Is(err, domain.ErrWebhookSecretMissing):
		logger.Error().Msg("tranzak webhook secret is not configured")
		metrics.IncWebhookDelivery("config_missing")
		http.Error(w, "Server configuration error", http.StatusInternalServerError)
	case errors.Is(err, domain.ErrSignatureMissing):
		logger.Warn().Msg("rejected tranzak webhook: missing signature")
		metrics.IncWebhookDelivery("signature_missing")
		http.Error(w, "Missing signature", http.StatusBadRequest)
	case errors.Is(err, domain.ErrSignatureInvalid):
		logger.Warn().Int("body_bytes", len(body)).Msg("rejected tranzak webhook: invalid signature")
		metrics.IncWebhookDelivery("signature_invalid")
		http.Error(w, "Invalid signature", http.StatusForbidden)
	case errors.Is(err, domain.ErrPayloadMalformed):
		logger.Warn().Msg("rejected tranzak webhook: malformed payload")
		metrics.IncWebhookDelivery("body_malformed")
		http.Error(w, "Malformed payload", http.StatusBadRequest)
	default:
		logger.Error().Err(err).Msg("tranzak webhook verification failed")
		metrics.IncWebhookDelivery("error")
		http.Error(w, "Webhook processing failed", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
