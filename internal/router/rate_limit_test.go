package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/autoluxe/internal/config"

	"github.com/gin-gonic/gin"
)

func TestKeyByIPAndJSONField(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/users/login", strings.NewReader(`{"email":" Test@Example.com "}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Request.RemoteAddr = "1.2.3.4:5678"

	key := KeyByIPAndJSONField("email")(c)
	if key != "test@example.com|1.2.3.4" {
		t.Fatalf("key want test@example.com|1.2.3.4 got %s", key)
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		t.Fatalf("read body after key extraction failed: %v", err)
	}
	if !strings.Contains(string(body), "Test@Example.com") {
		t.Fatalf("request body should be restored after reading field")
	}
}

func TestRateLimitMiddlewareWithoutClient(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	rule := NewRateLimitRule("rate:contact", config.RateLimitConfig{WindowSeconds: 60, MaxAttempts: 1})
	r.Use(RateLimitMiddleware(nil, rule, KeyByIP))
	r.POST("/api/contact", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/contact", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"ok":true`) {
		t.Fatalf("expected handler response body, got %s", w.Body.String())
	}
}

func TestNewRateLimitRule(t *testing.T) {
	rule := NewRateLimitRule("rate:login", config.RateLimitConfig{WindowSeconds: 300, MaxAttempts: 5})
	if rule.Prefix != "rate:login" || rule.WindowSeconds != 300 || rule.MaxRequests != 5 {
		t.Fatalf("unexpected rule: %+v", rule)
	}
	if rule.MessageKey != "error.rate_limited" {
		t.Fatalf("message key want error.rate_limited got %s", rule.MessageKey)
	}
}

func TestRateLimitRuleRetryAfter(t *testing.T) {
	rule := NewRateLimitRule("rate:login", config.RateLimitConfig{WindowSeconds: 300, MaxAttempts: 5})
	cases := map[int64]int{42: 42, 0: 300, -1: 300, -2: 300}
	for ttl, want := range cases {
		if got := rule.retryAfter(ttl); got != want {
			t.Fatalf("ttl %d want %d got %d", ttl, want, got)
		}
	}
	if got := (RateLimitRule{}).retryAfter(-1); got != 1 {
		t.Fatalf("empty rule want 1 got %d", got)
	}
	if (RateLimitRule{WindowSeconds: 60}).active() {
		t.Fatalf("rule without max requests should be inactive")
	}
}

func TestKeyByIPAndJSONFieldFallsBackToIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for _, body := range []string{``, `not json`, `{"email":42}`, `{"other":"x"}`} {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodPost, "/api/users/login", strings.NewReader(body))
		c.Request.RemoteAddr = "5.6.7.8:1234"
		if key := KeyByIPAndJSONField("email")(c); key != "5.6.7.8" {
			t.Fatalf("body %q want ip key got %s", body, key)
		}
	}
}
