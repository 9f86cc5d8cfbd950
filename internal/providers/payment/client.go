package payment

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"transfers/internal/domain"
)

const defaultBaseURL = "https://api.stripe.com"

type httpClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewHTTP returns the real provider client. The 30s timeout is fixed;
// a timed-out call surfaces as a connection-category error.
func NewHTTP(apiKey string) Client {
	return &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// NewHTTPWithBaseURL is used by tests to point the client at a stub.
func NewHTTPWithBaseURL(apiKey, baseURL string) Client {
	return &httpClient{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Ping is the lightweight connectivity probe run before session
// creation. A failure here means the provider is unreachable or the key
// is wrong, so checkout can bail out before any redirect is promised.
func (c *httpClient) Ping() error {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/v1/balance", nil)
	if err != nil {
		return domain.ProviderError{Category: domain.ProviderOther, Msg: err.Error(), Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.ProviderError{Category: domain.ProviderConnection, Msg: "provider unreachable", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return domain.ProviderError{Category: domain.ProviderAuthentication, Msg: "provider rejected API key"}
	}
	if resp.StatusCode >= 500 {
		return domain.ProviderError{Category: domain.ProviderAPI, Msg: "provider error: " + resp.Status}
	}
	return nil
}

func (c *httpClient) CreateCheckoutSession(req CreateSessionReq) (*CreateSessionResp, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("client_reference_id", req.Reference)
	form.Set("success_url", req.SuccessURL)
	form.Set("cancel_url", req.CancelURL)
	if req.PayerEmail != "" {
		form.Set("customer_email", req.PayerEmail)
	}
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", req.Currency)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(req.AmountCents, 10))
	form.Set("line_items[0][price_data][product_data][name]", req.Description)
	for k, v := range req.Metadata {
		form.Set(fmt.Sprintf("metadata[%s]", k), v)
	}

	httpReq, err := http.NewRequest(http.MethodPost, c.baseURL+"/v1/checkout/sessions",
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, domain.ProviderError{Category: domain.ProviderOther, Msg: err.Error(), Err: err}
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, domain.ProviderError{Category: domain.ProviderConnection, Msg: "provider unreachable", Err: err}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		return nil, classifyError(resp.StatusCode, body)
	}

	var out struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, domain.ProviderError{Category: domain.ProviderAPI, Msg: "malformed provider response", Err: err}
	}
	if out.ID == "" || out.URL == "" {
		return nil, domain.ProviderError{Category: domain.ProviderAPI, Msg: "provider returned empty session"}
	}

	return &CreateSessionResp{SessionID: out.ID, SessionURL: out.URL}, nil
}

// classifyError maps a provider error response onto the fixed taxonomy.
func classifyError(status int, body []byte) error {
	var wrapper struct {
		Error struct {
			Type    string `json:"type"`
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	_ = json.Unmarshal(body, &wrapper)

	pe := domain.ProviderError{
		Code: wrapper.Error.Code,
		Msg:  wrapper.Error.Message,
	}
	if pe.Msg == "" {
		pe.Msg = http.StatusText(status)
	}

	switch {
	case wrapper.Error.Type == "card_error":
		pe.Category = domain.ProviderCard
	case wrapper.Error.Type == "invalid_request_error":
		pe.Category = domain.ProviderInvalidRequest
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		pe.Category = domain.ProviderAuthentication
	case status == http.StatusTooManyRequests:
		pe.Category = domain.ProviderRateLimit
	case status >= 500:
		pe.Category = domain.ProviderAPI
	default:
		pe.Category = domain.ProviderOther
	}
	return pe
}
