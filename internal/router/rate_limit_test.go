package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newJSONRequest(t *testing.T, body string) *gin.Context {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Request.RemoteAddr = "10.20.30.40:9000"
	return c
}

func TestKeyByIPAndJSONField(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c := newJSONRequest(t, `{"email":" Aspirant@Mail.IN ","password":"x"}`)
	key := KeyByIPAndJSONField("email")(c)
	if key != "aspirant@mail.in|10.20.30.40" {
		t.Fatalf("key want aspirant@mail.in|10.20.30.40 got %s", key)
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		t.Fatalf("read body after key extraction failed: %v", err)
	}
	if !strings.Contains(string(body), "Aspirant@Mail.IN") {
		t.Fatalf("request body should be restored after reading field")
	}
}

func TestKeyByIPAndJSONFieldFallsBackToIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c := newJSONRequest(t, `{"password":"x"}`)
	if key := KeyByIPAndJSONField("email")(c); key != "10.20.30.40" {
		t.Fatalf("missing field should fall back to IP, got %s", key)
	}

	c = newJSONRequest(t, `not-json`)
	if key := KeyByIPAndJSONField("email")(c); key != "10.20.30.40" {
		t.Fatalf("malformed body should fall back to IP, got %s", key)
	}
}

func TestRateLimitMiddlewareDisabledWithoutClient(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RateLimitMiddleware(nil, RateLimitRule{WindowSeconds: 300, MaxRequests: 5, BlockSeconds: 900}, KeyByIP))
	r.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"up": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"up":true`) {
		t.Fatalf("expected handler response body, got %s", w.Body.String())
	}
}

func TestToInt64(t *testing.T) {
	cases := []struct {
		name  string
		input interface{}
		want  int64
		ok    bool
	}{
		{name: "int64", input: int64(42), want: 42, ok: true},
		{name: "int", input: int(7), want: 7, ok: true},
		{name: "int32", input: int32(-3), want: -3, ok: true},
		{name: "uint16", input: uint16(90), want: 90, ok: true},
		{name: "float64", input: float64(299.7), want: 299, ok: true},
		{name: "string", input: "15", want: 0, ok: false},
		{name: "nil", input: nil, want: 0, ok: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := toInt64(tc.input)
			if ok != tc.ok {
				t.Fatalf("ok want %v got %v", tc.ok, ok)
			}
			if got != tc.want {
				t.Fatalf("value want %d got %d", tc.want, got)
			}
		})
	}
}
