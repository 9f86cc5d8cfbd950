package mailrelay

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSendVerificationPostsTemplateAndSecret(t *testing.T) {
	var got struct {
		Template string            `json:"template"`
		Payload  VerificationEmail `json:"payload"`
	}
	var secret string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		secret = r.Header.Get("X-Relay-Secret")
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("bad body: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	c := NewHTTP(srv.URL, "relay-secret")
	err := c.SendVerification(VerificationEmail{
		To:        "ada@example.com",
		OTP:       "12a345",
		MagicLink: "https://www.transferride.com/api/verification/verify?token=abc",
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if got.Template != "verification" {
		t.Fatalf("template = %q", got.Template)
	}
	if got.Payload.To != "ada@example.com" || got.Payload.OTP != "12a345" {
		t.Fatalf("payload = %+v", got.Payload)
	}
	if secret != "relay-secret" {
		t.Fatalf("secret header = %q", secret)
	}
}

func TestSendConfirmationRelayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewHTTP(srv.URL, "")
	if err := c.SendBookingConfirmation(ConfirmationEmail{To: "ada@example.com"}); err == nil {
		t.Fatal("expected an error for a non-2xx relay response")
	}
}

func TestSendWithoutURL(t *testing.T) {
	c := NewHTTP("", "")
	if err := c.SendVerification(VerificationEmail{To: "ada@example.com"}); err == nil {
		t.Fatal("expected an error when the relay URL is unset")
	}
}
