package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"camerpay-payments/internal/config"
	"camerpay-payments/internal/domain/ports/adapter"
)

var _ adapter.ChargeGateway = (*TranzakGateway)(nil)

const defaultBaseURL = "https://api.tranzak.net"

// TranzakGateway implements adapter.ChargeGateway against the Tranzak
// collection request API. Credentials travel as custom headers on every call.
type TranzakGateway struct {
	appID   string
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewTranzakGateway builds a gateway from config. An empty base URL falls
// back to production; tests point it at a stub server.
func NewTranzakGateway(cfg config.TranzakConfig) *TranzakGateway {
	base := cfg.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	return &TranzakGateway{
		appID:   cfg.AppID,
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(base, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (g *TranzakGateway) Name() string { return "tranzak" }

type chargeBody struct {
	Amount       int64  `json:"amount"`
	CurrencyCode string `json:"currency_code"`
	RequestID    string `json:"request_id"`
	Memo         string `json:"memo"`
	MNOCode      string `json:"mno_code"`
	PhoneNumber  string `json:"phone_number"`
	RedirectURL  string `json:"redirect_url,omitempty"`
}

type chargeReply struct {
	Status        string `json:"status"`
	TransactionID string `json:"transaction_id"`
	RedirectURL   string `json:"redirect_url"`
	Message       string `json:"message"`
}

// SubmitCharge posts one charge request and decodes the reply body whatever
// the HTTP status is. Classification of the outcome is the use case's job.
func (g *TranzakGateway) SubmitCharge(ctx context.Context, req adapter.ChargeRequest) (*adapter.ChargeResponse, error) {
	payload := chargeBody{
		Amount:       req.Amount,
		CurrencyCode: req.CurrencyCode,
		RequestID:    req.RequestID,
		Memo:         req.Memo,
		MNOCode:      req.MNOCode,
		PhoneNumber:  req.PhoneNumber,
		RedirectURL:  req.RedirectURL,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal charge request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/request", bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-App-Id", g.appID)
	httpReq.Header.Set("X-Api-Key", g.apiKey)

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var out chargeReply
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w, body: %s", err, string(body))
	}

	return &adapter.ChargeResponse{
		HTTPStatus:    resp.StatusCode,
		Status:        out.Status,
		TransactionID: out.TransactionID,
		RedirectURL:   out.RedirectURL,
		Message:       out.Message,
		RawBody:       body,
	}, nil
}
