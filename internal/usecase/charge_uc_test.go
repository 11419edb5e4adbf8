//go:build !integration

package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"camerpay-payments/internal/config"
	"camerpay-payments/internal/domain/model"
	"camerpay-payments/internal/domain/ports/adapter"
	"camerpay-payments/internal/usecase"
)

// MockChargeGateway records every submitted request and delegates to an
// optional hook, so tests can assert both wire content and call counts.
type MockChargeGateway struct {
	SubmitChargeFunc func(ctx context.Context, req adapter.ChargeRequest) (*adapter.ChargeResponse, error)
	Requests         []adapter.ChargeRequest
}

func (m *MockChargeGateway) Name() string { return "mock" }

func (m *MockChargeGateway) SubmitCharge(ctx context.Context, req adapter.ChargeRequest) (*adapter.ChargeResponse, error) {
	m.Requests = append(m.Requests, req)
	if m.SubmitChargeFunc != nil {
		return m.SubmitChargeFunc(ctx, req)
	}
	return successResponse("TX123"), nil
}

func successResponse(txID string) *adapter.ChargeResponse {
	return &adapter.ChargeResponse{
		HTTPStatus:    200,
		Status:        "SUCCESSFUL",
		TransactionID: txID,
		RawBody:       []byte(`{"status":"SUCCESSFUL"}`),
	}
}

func newTestLogger() *zerolog.Logger { l := zerolog.Nop(); return &l }

func testPaymentConfig() config.PaymentConfig {
	return config.PaymentConfig{
		Tranzak: config.TranzakConfig{
			AppID:  "app-1",
			APIKey: "key-1",
		},
		PublicBaseURL: "https://camerpay.example.com",
	}
}

func TestChargeUC_Initiate_Success(t *testing.T) {
	ctx := context.Background()

	t.Run("copies transaction id and hints phone approval on direct flow", func(t *testing.T) {
		gw := &MockChargeGateway{}
		uc := usecase.NewChargeUseCase(testPaymentConfig(), gw, newTestLogger(), false)

		out := uc.Initiate(ctx, model.ChargeInput{
			PhoneNumber:   "670000000",
			Amount:        500,
			PaymentMethod: model.MethodMTNMoMo,
			PaymentFlow:   model.FlowDirect,
		})

		if !out.Success {
			t.Fatalf("expected success, got failure: %s", out.Message)
		}
		if out.TransactionID != "TX123" {
			t.Errorf("expected transaction id TX123, got %q", out.TransactionID)
		}
		if !strings.Contains(out.Message, "approve the transaction") {
			t.Errorf("direct-flow message should contain approval hint, got %q", out.Message)
		}
	})

	t.Run("defaults flow to direct and memo to the canned description", func(t *testing.T) {
		gw := &MockChargeGateway{}
		uc := usecase.NewChargeUseCase(testPaymentConfig(), gw, newTestLogger(), false)

		out := uc.Initiate(ctx, model.ChargeInput{
			PhoneNumber:   "670000000",
			Amount:        500,
			PaymentMethod: model.MethodMTNMoMo,
		})

		if !out.Success {
			t.Fatalf("expected success, got failure: %s", out.Message)
		}
		if !strings.Contains(out.Message, "approve the transaction") {
			t.Errorf("default flow should behave as direct, got %q", out.Message)
		}
		if got := gw.Requests[0].Memo; got != "CamerPay Payment" {
			t.Errorf("expected default memo, got %q", got)
		}
	})

	t.Run("normalizes phone number and fixes currency", func(t *testing.T) {
		gw := &MockChargeGateway{}
		uc := usecase.NewChargeUseCase(testPaymentConfig(), gw, newTestLogger(), false)

		uc.Initiate(ctx, model.ChargeInput{
			PhoneNumber:   "670000000",
			Amount:        500,
			PaymentMethod: model.MethodMTNMoMo,
		})

		req := gw.Requests[0]
		if req.PhoneNumber != "+237670000000" {
			t.Errorf("expected +237670000000, got %q", req.PhoneNumber)
		}
		if req.CurrencyCode != "XAF" {
			t.Errorf("expected XAF, got %q", req.CurrencyCode)
		}
		if req.MNOCode != "MTN_MOMO" {
			t.Errorf("expected MTN_MOMO, got %q", req.MNOCode)
		}
	})

	t.Run("redirect flow sends a return URL and skips the approval hint", func(t *testing.T) {
		gw := &MockChargeGateway{
			SubmitChargeFunc: func(ctx context.Context, req adapter.ChargeRequest) (*adapter.ChargeResponse, error) {
				resp := successResponse("TX456")
				resp.RedirectURL = "https://pay.tranzak.net/session/abc"
				return resp, nil
			},
		}
		uc := usecase.NewChargeUseCase(testPaymentConfig(), gw, newTestLogger(), false)

		out := uc.Initiate(ctx, model.ChargeInput{
			PhoneNumber:   "690000001",
			Amount:        1500,
			PaymentMethod: model.MethodOrangeMoney,
			PaymentFlow:   model.FlowRedirect,
		})

		if !out.Success {
			t.Fatalf("expected success, got failure: %s", out.Message)
		}
		if want := "https://camerpay.example.com/dashboard/history"; gw.Requests[0].RedirectURL != want {
			t.Errorf("expected redirect url %q, got %q", want, gw.Requests[0].RedirectURL)
		}
		if out.RedirectURL != "https://pay.tranzak.net/session/abc" {
			t.Errorf("gateway redirect url not copied: %q", out.RedirectURL)
		}
		if strings.Contains(out.Message, "approve the transaction") {
			t.Errorf("redirect-flow message must not contain the phone approval hint")
		}
	})

	t.Run("direct flow omits the redirect URL from the wire request", func(t *testing.T) {
		gw := &MockChargeGateway{}
		uc := usecase.NewChargeUseCase(testPaymentConfig(), gw, newTestLogger(), false)

		uc.Initiate(ctx, model.ChargeInput{
			PhoneNumber:   "670000000",
			Amount:        500,
			PaymentMethod: model.MethodMTNMoMo,
			PaymentFlow:   model.FlowDirect,
		})

		if gw.Requests[0].RedirectURL != "" {
			t.Errorf("direct flow must not carry a redirect url, got %q", gw.Requests[0].RedirectURL)
		}
	})

	t.Run("two identical submits carry distinct request ids", func(t *testing.T) {
		gw := &MockChargeGateway{}
		uc := usecase.NewChargeUseCase(testPaymentConfig(), gw, newTestLogger(), false)

		in := model.ChargeInput{PhoneNumber: "670000000", Amount: 500, PaymentMethod: model.MethodMTNMoMo}
		uc.Initiate(ctx, in)
		uc.Initiate(ctx, in)

		if len(gw.Requests) != 2 {
			t.Fatalf("expected 2 gateway calls, got %d", len(gw.Requests))
		}
		a, b := gw.Requests[0].RequestID, gw.Requests[1].RequestID
		if a == "" || b == "" {
			t.Fatal("request ids must not be empty")
		}
		if a == b {
			t.Errorf("request ids must be fresh per submit, both were %q", a)
		}
	})
}

func TestChargeUC_Initiate_Failures(t *testing.T) {
	ctx := context.Background()
	in := model.ChargeInput{PhoneNumber: "670000000", Amount: 500, PaymentMethod: model.MethodMTNMoMo}

	t.Run("missing credentials short-circuits before any gateway call", func(t *testing.T) {
		for _, cfg := range []config.PaymentConfig{
			{Tranzak: config.TranzakConfig{APIKey: "key-1"}, PublicBaseURL: "https://x"},
			{Tranzak: config.TranzakConfig{AppID: "app-1"}, PublicBaseURL: "https://x"},
		} {
			gw := &MockChargeGateway{}
			uc := usecase.NewChargeUseCase(cfg, gw, newTestLogger(), false)

			out := uc.Initiate(ctx, in)

			if out.Success {
				t.Fatal("expected failure with missing credentials")
			}
			if len(gw.Requests) != 0 {
				t.Errorf("expected no gateway call, got %d", len(gw.Requests))
			}
			if out.Message != "Server configuration error. Please contact support." {
				t.Errorf("unexpected message: %q", out.Message)
			}
		}
	})

	t.Run("unknown payment method is rejected without I/O", func(t *testing.T) {
		gw := &MockChargeGateway{}
		uc := usecase.NewChargeUseCase(testPaymentConfig(), gw, newTestLogger(), false)

		out := uc.Initiate(ctx, model.ChargeInput{
			PhoneNumber:   "670000000",
			Amount:        500,
			PaymentMethod: "carrier-pigeon",
		})

		if out.Success {
			t.Fatal("expected failure for unmapped method")
		}
		if len(gw.Requests) != 0 {
			t.Errorf("expected no gateway call, got %d", len(gw.Requests))
		}
		if out.Message != "Unsupported payment method." {
			t.Errorf("unexpected message: %q", out.Message)
		}
	})

	t.Run("gateway decline surfaces the gateway message", func(t *testing.T) {
		gw := &MockChargeGateway{
			SubmitChargeFunc: func(ctx context.Context, req adapter.ChargeRequest) (*adapter.ChargeResponse, error) {
				return &adapter.ChargeResponse{
					HTTPStatus: 402,
					Message:    "Insufficient wallet balance.",
					RawBody:    []byte(`{"message":"Insufficient wallet balance."}`),
				}, nil
			},
		}
		uc := usecase.NewChargeUseCase(testPaymentConfig(), gw, newTestLogger(), false)

		out := uc.Initiate(ctx, in)
		if out.Success {
			t.Fatal("expected failure")
		}
		if out.Message != "Insufficient wallet balance." {
			t.Errorf("gateway message not surfaced: %q", out.Message)
		}
	})

	t.Run("gateway decline without message falls back to generic text", func(t *testing.T) {
		gw := &MockChargeGateway{
			SubmitChargeFunc: func(ctx context.Context, req adapter.ChargeRequest) (*adapter.ChargeResponse, error) {
				return &adapter.ChargeResponse{HTTPStatus: 500, RawBody: []byte(`{}`)}, nil
			},
		}
		uc := usecase.NewChargeUseCase(testPaymentConfig(), gw, newTestLogger(), false)

		out := uc.Initiate(ctx, in)
		if out.Message != "Payment request failed." {
			t.Errorf("unexpected message: %q", out.Message)
		}
	})

	t.Run("2xx with non-success status is still a decline", func(t *testing.T) {
		gw := &MockChargeGateway{
			SubmitChargeFunc: func(ctx context.Context, req adapter.ChargeRequest) (*adapter.ChargeResponse, error) {
				return &adapter.ChargeResponse{HTTPStatus: 200, Status: "PENDING_APPROVAL", RawBody: []byte(`{"status":"PENDING_APPROVAL"}`)}, nil
			},
		}
		uc := usecase.NewChargeUseCase(testPaymentConfig(), gw, newTestLogger(), false)

		out := uc.Initiate(ctx, in)
		if out.Success {
			t.Fatal("only the SUCCESSFUL sentinel counts as success")
		}
	})

	t.Run("transport fault resolves to a generic outcome, never an error", func(t *testing.T) {
		gw := &MockChargeGateway{
			SubmitChargeFunc: func(ctx context.Context, req adapter.ChargeRequest) (*adapter.ChargeResponse, error) {
				return nil, errors.New("dial tcp: connection refused")
			},
		}
		uc := usecase.NewChargeUseCase(testPaymentConfig(), gw, newTestLogger(), false)

		out := uc.Initiate(ctx, in)
		if out.Success {
			t.Fatal("expected failure")
		}
		if out.Message != "An unexpected error occurred. Please try again." {
			t.Errorf("internal error detail must not leak, got %q", out.Message)
		}
	})
}
