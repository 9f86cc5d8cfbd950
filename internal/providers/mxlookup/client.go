package mxlookup

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.emailmx.io"

// Client checks whether a domain publishes MX records, via a third-party
// lookup API. The verification service fails open when the lookup itself
// errors, so this client just reports what it saw.
type Client interface {
	HasMX(domain string) (bool, error)
}

type httpClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewHTTP(apiKey string) Client {
	return &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// NewHTTPWithBaseURL is used by tests to point the client at a stub.
func NewHTTPWithBaseURL(apiKey, baseURL string) Client {
	return &httpClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *httpClient) HasMX(domain string) (bool, error) {
	u := fmt.Sprintf("%s/v1/mx?domain=%s", c.baseURL, url.QueryEscape(domain))

	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return false, fmt.Errorf("mx lookup returned %s", resp.Status)
	}

	var out struct {
		HasMX bool `json:"has_mx"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, err
	}
	return out.HasMX, nil
}
