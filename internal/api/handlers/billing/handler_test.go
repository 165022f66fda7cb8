package billing_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v82"
	"github.com/wb-go/wbf/zlog"

	"github.com/compressyourphoto/phototools/internal/api/handlers/billing"
	"github.com/compressyourphoto/phototools/internal/api/router"
	billingsvc "github.com/compressyourphoto/phototools/internal/service/billing"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	zlog.Init()
	os.Exit(m.Run())
}

// fakeService is the handler-level stand-in for the billing service.
type fakeService struct {
	url        string
	createErr  error
	handleErr  error
	lastReq    billingsvc.CheckoutRequest
	lastEvent  stripe.Event
	handledSet bool
}

func (f *fakeService) CreateCheckoutSession(_ context.Context, req billingsvc.CheckoutRequest) (string, error) {
	f.lastReq = req
	if f.createErr != nil {
		return "", f.createErr
	}
	return f.url, nil
}

func (f *fakeService) HandleEvent(_ context.Context, event stripe.Event) error {
	f.lastEvent = event
	f.handledSet = true
	return f.handleErr
}

func serve(t *testing.T, h *billing.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	router.Setup(h).ServeHTTP(w, req)
	return w
}

func postJSON(t *testing.T, path string, body any) *http.Request {
	t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestCreateCheckoutSession_OK(t *testing.T) {
	svc := &fakeService{url: "https://checkout.example/s_1"}
	h := billing.NewHandler(svc, "")

	w := serve(t, h, postJSON(t, "/api/create-checkout-session", billingsvc.CheckoutRequest{
		PriceID: "price_x",
		Mode:    "subscription",
		UserID:  "user-1",
	}))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp["url"] != "https://checkout.example/s_1" {
		t.Errorf("unexpected url: %q", resp["url"])
	}
	if svc.lastReq.UserID != "user-1" {
		t.Errorf("request not forwarded to the service: %+v", svc.lastReq)
	}
}

func TestCreateCheckoutSession_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"missing fields", billingsvc.ErrMissingFields},
		{"invalid price", billingsvc.ErrInvalidPriceID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := billing.NewHandler(&fakeService{createErr: tt.err}, "")

			w := serve(t, h, postJSON(t, "/api/create-checkout-session", billingsvc.CheckoutRequest{}))

			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}

			var resp map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid response body: %v", err)
			}
			if resp["error"] == "" {
				t.Error("error responses must carry an error message")
			}
		})
	}
}

func TestCreateCheckoutSession_ProviderFailure(t *testing.T) {
	h := billing.NewHandler(&fakeService{createErr: errors.New("stripe unreachable")}, "")

	w := serve(t, h, postJSON(t, "/api/create-checkout-session", billingsvc.CheckoutRequest{}))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestCreateCheckoutSession_MalformedBody(t *testing.T) {
	h := billing.NewHandler(&fakeService{}, "")

	req := httptest.NewRequest(http.MethodPost, "/api/create-checkout-session", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")

	if w := serve(t, h, req); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestWebhook_UnsignedAccepted(t *testing.T) {
	svc := &fakeService{}
	h := billing.NewHandler(svc, "")

	event := map[string]any{
		"type": "checkout.session.completed",
		"data": map[string]any{"object": map[string]any{}},
	}

	w := serve(t, h, postJSON(t, "/api/webhook", event))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]bool
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if !resp["received"] {
		t.Error("expected received acknowledgement")
	}
	if !svc.handledSet {
		t.Fatal("event never reached the service")
	}
	if svc.lastEvent.Type != stripe.EventTypeCheckoutSessionCompleted {
		t.Errorf("unexpected event type: %s", svc.lastEvent.Type)
	}
}

func TestWebhook_BadSignatureRejected(t *testing.T) {
	svc := &fakeService{}
	h := billing.NewHandler(svc, "whsec_testsecret")

	req := postJSON(t, "/api/webhook", map[string]any{"type": "checkout.session.completed"})
	req.Header.Set("Stripe-Signature", "t=1,v1=deadbeef")

	w := serve(t, h, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a bad signature, got %d", w.Code)
	}
	if svc.handledSet {
		t.Error("unverified events must never reach the service")
	}
}

func TestWebhook_MalformedPayload(t *testing.T) {
	h := billing.NewHandler(&fakeService{}, "")

	req := httptest.NewRequest(http.MethodPost, "/api/webhook", bytes.NewReader([]byte("not json")))

	if w := serve(t, h, req); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestWebhook_ServiceFailure(t *testing.T) {
	h := billing.NewHandler(&fakeService{handleErr: errors.New("db down")}, "")

	w := serve(t, h, postJSON(t, "/api/webhook", map[string]any{"type": "customer.subscription.deleted", "data": map[string]any{"object": map[string]any{}}}))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}
