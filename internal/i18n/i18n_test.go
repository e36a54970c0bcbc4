package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	assert.Equal(t, LocaleZH, Match("zh-CN,zh;q=0.9,en;q=0.8"))
	assert.Equal(t, LocaleZH, Match("zh"))
	assert.Equal(t, LocaleEN, Match("en-GB"))
	assert.Equal(t, LocaleEN, Match("fr-FR"))
	assert.Equal(t, LocaleEN, Match(""))
	assert.Equal(t, LocaleEN, Match(";;;"))
}

func TestTFallsBackToEnglishThenKey(t *testing.T) {
	require.NotEmpty(t, messages[LocaleEN]["error.cart_not_found"])
	assert.Equal(t, messages[LocaleEN]["error.cart_not_found"], T("xx-XX", "error.cart_not_found"))
	assert.Equal(t, "error.no_such_key", T(LocaleZH, "error.no_such_key"))
}

func TestEveryChineseKeyHasEnglish(t *testing.T) {
	for key := range messages[LocaleZH] {
		_, ok := messages[LocaleEN][key]
		assert.Truef(t, ok, "key %s missing english message", key)
	}
}

func TestResolveLocalePrefersQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/cart?lang=zh-CN", nil)
	c.Request.Header.Set("Accept-Language", "en-US")

	assert.Equal(t, LocaleZH, ResolveLocale(c))
}

func TestResolveLocaleFromHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	c.Request.Header.Set("Accept-Language", "zh-CN,zh;q=0.9")

	assert.Equal(t, LocaleZH, ResolveLocale(c))
}
