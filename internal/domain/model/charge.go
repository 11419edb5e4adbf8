package model

// PaymentMethod is the closed set of mobile-money operators we can charge.
// Tags arrive from the front end as free-form strings; anything outside this
// set is rejected rather than coerced to a default operator.
type PaymentMethod string

const (
	MethodMTNMoMo     PaymentMethod = "mtn-momo"
	MethodOrangeMoney PaymentMethod = "orange-money"
)

// MNOCode maps a method tag to the operator code Tranzak routes on.
// ok is false for unmapped tags.
func (m PaymentMethod) MNOCode() (code string, ok bool) {
	switch m {
	case MethodMTNMoMo:
		return "MTN_MOMO", true
	case MethodOrangeMoney:
		return "ORANGE_MONEY_CAMEROON", true
	}
	return "", false
}

// PaymentFlow selects how the payer approves the charge.
type PaymentFlow string

const (
	// FlowDirect prompts the payer on their phone (USSD/wallet app).
	FlowDirect PaymentFlow = "direct"
	// FlowRedirect sends the payer to a hosted payment page.
	FlowRedirect PaymentFlow = "redirect"
)

// ChargeInput carries pre-validated primitives from the caller.
// PhoneNumber is local format (9 digits); Amount is whole XAF.
type ChargeInput struct {
	PhoneNumber   string
	Amount        int64
	PaymentMethod PaymentMethod
	PaymentFlow   PaymentFlow // empty defaults to direct
	Memo          string      // empty gets a default
}

// ChargeOutcome is what the caller renders. Never persisted.
type ChargeOutcome struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	TransactionID string `json:"transaction_id,omitempty"` // gateway reference, success only
	RedirectURL   string `json:"redirect_url,omitempty"`   // redirect flow only
}
