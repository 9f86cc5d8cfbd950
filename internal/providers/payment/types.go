package payment

// CreateSessionReq describes one hosted checkout session. Amount is in
// integer minor units; the caller converts and validates before calling.
type CreateSessionReq struct {
	Reference   string
	AmountCents int64
	Currency    string
	Description string
	PayerEmail  string
	SuccessURL  string
	CancelURL   string
	Metadata    map[string]string
}

// CreateSessionResp carries the redirect target for the hosted page.
type CreateSessionResp struct {
	SessionID  string
	SessionURL string
}

// Client is the payment-provider surface the checkout service needs.
type Client interface {
	Ping() error
	CreateCheckoutSession(req CreateSessionReq) (*CreateSessionResp, error)
}
