package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/autoluxe/internal/constants"
	"github.com/autoluxe/internal/models"
	"github.com/autoluxe/internal/repository"
	"github.com/autoluxe/internal/service"

	handlershared "github.com/autoluxe/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func TestResolveAllowedOrigin(t *testing.T) {
	got := resolveAllowedOrigin("https://example.com", []string{"*"}, false)
	if got != "*" {
		t.Fatalf("wildcard without credentials should return *, got %s", got)
	}

	got = resolveAllowedOrigin("https://example.com", []string{"*"}, true)
	if got != "https://example.com" {
		t.Fatalf("wildcard with credentials should echo origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://a.example.com", []string{"https://a.example.com", "https://b.example.com"}, false)
	if got != "https://a.example.com" {
		t.Fatalf("allow-list should return matched origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://x.example.com", []string{"https://a.example.com"}, false)
	if got != "" {
		t.Fatalf("unmatched origin should be empty, got %s", got)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": getRequestID(c)})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "req-123")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if w.Header().Get(requestIDHeader) != "req-123" {
		t.Fatalf("response request id want req-123 got %s", w.Header().Get(requestIDHeader))
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp["request_id"] != "req-123" {
		t.Fatalf("context request id want req-123 got %s", resp["request_id"])
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w2, req2)
	generated := w2.Header().Get(requestIDHeader)
	if strings.TrimSpace(generated) == "" {
		t.Fatalf("generated request id should not be blank")
	}
}

func newProtectedEngine(secret string, repo repository.UserRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/cart", UserJWTAuthMiddleware(secret, repo), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":  c.GetString(handlershared.ContextUserID),
			"is_admin": c.GetBool(handlershared.ContextIsAdmin),
		})
	})
	return r
}

func signUserToken(t *testing.T, secret string, claims service.UserJWTClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token failed: %v", err)
	}
	return token
}

func TestUserJWTAuthMiddlewareMissingSecret(t *testing.T) {
	r := newProtectedEngine("", nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/cart", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status want 401 got %d", w.Code)
	}
	var resp struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.Message == "" {
		t.Fatalf("message should not be empty")
	}
}

func TestUserJWTAuthMiddlewareRejectsBadHeaders(t *testing.T) {
	db := openRouterTestDB(t)
	r := newProtectedEngine("secret", repository.NewUserRepository(db))

	cases := []struct {
		name   string
		header string
	}{
		{name: "missing", header: ""},
		{name: "not bearer", header: "Basic abc"},
		{name: "garbage token", header: "Bearer not-a-jwt"},
		{name: "wrong secret", header: "Bearer " + signUserToken(t, "other", service.UserJWTClaims{
			UserID: models.NewObjectID(),
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			r.ServeHTTP(w, req)
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("status want 401 got %d", w.Code)
			}
		})
	}
}

func TestUserJWTAuthMiddlewareChecksUserState(t *testing.T) {
	db := openRouterTestDB(t)
	repo := repository.NewUserRepository(db)
	r := newProtectedEngine("secret", repo)

	user := &models.User{
		Name:         "Ana",
		Email:        "ana@example.com",
		PasswordHash: "x",
		Status:       constants.UserStatusActive,
		IsAdmin:      true,
		TokenVersion: 2,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user failed: %v", err)
	}

	issue := func(version uint64) string {
		now := time.Now()
		return signUserToken(t, "secret", service.UserJWTClaims{
			UserID:       user.ID,
			Email:        user.Email,
			TokenVersion: version,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
				IssuedAt:  jwt.NewNumericDate(now),
			},
		})
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Authorization", "Bearer "+issue(2))
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		UserID  string `json:"user_id"`
		IsAdmin bool   `json:"is_admin"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.UserID != user.ID || !resp.IsAdmin {
		t.Fatalf("context want %s/admin got %+v", user.ID, resp)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Authorization", "Bearer "+issue(1))
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("stale token version want 401 got %d", w.Code)
	}

	if err := db.Model(&models.User{}).Where("id = ?", user.ID).Update("status", constants.UserStatusDisabled).Error; err != nil {
		t.Fatalf("disable user failed: %v", err)
	}
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Authorization", "Bearer "+issue(2))
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("disabled user want 401 got %d", w.Code)
	}
}

func TestAdminMiddlewareRequiresAdminFlag(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/users", func(c *gin.Context) {
		setUserContext(c, models.NewObjectID(), "user@example.com", false)
		c.Next()
	}, AdminMiddleware(nil), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users", nil))
	if w.Code != http.StatusForbidden {
		t.Fatalf("status want 403 got %d", w.Code)
	}
}

func TestIsIssuedAfterInvalidBefore(t *testing.T) {
	now := time.Now()
	before := now.Add(-time.Minute)
	if !isIssuedAfterInvalidBefore(jwt.NewNumericDate(now), nil) {
		t.Fatalf("nil invalid-before should accept")
	}
	if !isIssuedAfterInvalidBefore(jwt.NewNumericDate(now), &before) {
		t.Fatalf("token issued after cutoff should pass")
	}
	if isIssuedAfterInvalidBefore(jwt.NewNumericDate(before.Add(-time.Minute)), &before) {
		t.Fatalf("token issued before cutoff should fail")
	}
	if isIssuedAfterInvalidBefore(nil, &before) {
		t.Fatalf("token without iat should fail when cutoff set")
	}
}
