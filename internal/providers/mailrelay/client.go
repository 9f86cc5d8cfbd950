package mailrelay

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client posts transactional-email jobs to the relay webhook. Every send
// in this codebase is best-effort; callers decide whether a failure is
// fatal.
type Client interface {
	SendVerification(msg VerificationEmail) error
	SendBookingConfirmation(msg ConfirmationEmail) error
}

type VerificationEmail struct {
	To        string `json:"to"`
	Name      string `json:"name,omitempty"`
	OTP       string `json:"otp"`
	MagicLink string `json:"magic_link"`
}

type ConfirmationEmail struct {
	To               string `json:"to"`
	Name             string `json:"name,omitempty"`
	BookingReference string `json:"booking_reference"`
	VehicleType      string `json:"vehicle_type"`
	PickupAddress    string `json:"pickup_address"`
	DropoffAddress   string `json:"dropoff_address"`
	ScheduledAt      string `json:"scheduled_at"`
	ReturnAt         string `json:"return_at,omitempty"`
	Amount           string `json:"amount"`
}

type httpClient struct {
	url    string
	secret string
	client *http.Client
}

func NewHTTP(url, secret string) Client {
	return &httpClient{
		url:    url,
		secret: secret,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *httpClient) SendVerification(msg VerificationEmail) error {
	return c.post("verification", msg)
}

func (c *httpClient) SendBookingConfirmation(msg ConfirmationEmail) error {
	return c.post("booking-confirmation", msg)
}

func (c *httpClient) post(template string, msg any) error {
	if c.url == "" {
		return fmt.Errorf("mail relay URL not configured")
	}

	body, err := json.Marshal(map[string]any{
		"template": template,
		"payload":  msg,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.secret != "" {
		req.Header.Set("X-Relay-Secret", c.secret)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("mail relay returned %s", resp.Status)
	}
	return nil
}
