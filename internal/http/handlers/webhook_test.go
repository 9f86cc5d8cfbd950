package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	intconfig "transfers/internal/config"
	"transfers/internal/http/middleware"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
)

func newWebhookRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestID())
	r.POST("/api/webhooks/payment", PaymentWebhook)
	return r
}

func TestPaymentWebhookMalformedPayloadStill200(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.MatchExpectationsInOrder(false)
	prev := intconfig.DB
	intconfig.DB = db
	defer func() { intconfig.DB = prev }()

	mock.ExpectExec("INSERT INTO webhook_failures").
		WillReturnResult(sqlmock.NewResult(1, 1))

	r := newWebhookRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/payment", strings.NewReader("{broken"))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, a webhook must never fail the delivery", w.Code)
	}
	var body struct {
		Received bool   `json:"received"`
		Error    string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if !body.Received || body.Error == "" {
		t.Fatalf("body = %+v", body)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPaymentWebhookIgnoredEvent200NoError(t *testing.T) {
	r := newWebhookRouter()
	w := httptest.NewRecorder()
	payload := `{"id":"evt_9","type":"invoice.created","data":{"object":{}}}`
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/payment", strings.NewReader(payload))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if _, hasErr := body["error"]; hasErr {
		t.Fatalf("ignored event must not report an error: %v", body)
	}
}
