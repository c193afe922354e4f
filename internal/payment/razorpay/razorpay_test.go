package razorpay

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestVerifySignature(t *testing.T) {
	secret := "test_secret"
	orderID := "order_ABC123"
	paymentID := "pay_XYZ789"
	signature := Sign(orderID+"|"+paymentID, secret)

	if err := VerifySignature(orderID, paymentID, signature, secret); err != nil {
		t.Fatalf("expected valid signature, got %v", err)
	}
	if err := VerifySignature(orderID, paymentID, "deadbeef", secret); err == nil {
		t.Fatalf("expected invalid signature error")
	}
	if err := VerifySignature(orderID, "pay_other", signature, secret); err == nil {
		t.Fatalf("expected mismatched payment id to fail")
	}
	if err := VerifySignature("", paymentID, signature, secret); err == nil {
		t.Fatalf("expected empty order id to fail")
	}
}

func TestValidateConfigFailsClosed(t *testing.T) {
	if err := ValidateConfig(&Config{KeyID: "rzp_test_x"}); err == nil {
		t.Fatalf("expected missing secret to be rejected")
	}
	if err := ValidateConfig(&Config{KeySecret: "s"}); err == nil {
		t.Fatalf("expected missing key id to be rejected")
	}
	if _, err := NewClient(Config{}); err == nil {
		t.Fatalf("expected client construction to fail without credentials")
	}
}

func TestCreateOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/orders" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "rzp_test_key" || pass != "secret" {
			t.Errorf("missing or wrong basic auth")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"order_123","amount":49900,"currency":"INR","receipt":"rcpt_1","status":"created"}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{KeyID: "rzp_test_key", KeySecret: "secret", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	order, err := client.CreateOrder(context.Background(), CreateOrderInput{Amount: 49900, Currency: "INR", Receipt: "rcpt_1"})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if order.ID != "order_123" {
		t.Fatalf("unexpected order id %s", order.ID)
	}
	if order.Amount != 49900 {
		t.Fatalf("unexpected amount %d", order.Amount)
	}
}

func TestCreateOrderRetriesOnServerError(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"order_retry","amount":100,"currency":"INR","status":"created"}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{KeyID: "k", KeySecret: "s", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	order, err := client.CreateOrder(context.Background(), CreateOrderInput{Amount: 100})
	if err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if order.ID != "order_retry" {
		t.Fatalf("unexpected order id %s", order.ID)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("expected 2 attempts, got %d", got)
	}
}

func TestCreateOrderGatewayUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client, err := NewClient(Config{KeyID: "k", KeySecret: "s", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	if _, err := client.CreateOrder(context.Background(), CreateOrderInput{Amount: 100}); err == nil {
		t.Fatalf("expected gateway unavailable error")
	}
}

func TestCreateOrderClientErrorNotRetried(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"description":"amount too small"}}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{KeyID: "k", KeySecret: "s", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	if _, err := client.CreateOrder(context.Background(), CreateOrderInput{Amount: 100}); err == nil {
		t.Fatalf("expected request error")
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected single attempt for client error, got %d", got)
	}
}
