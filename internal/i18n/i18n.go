package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

const (
	LocaleEN = "en-US"
	LocaleZH = "zh-CN"

	// DefaultLocale 未识别语言时的回退
	DefaultLocale = LocaleEN

	localeContextKey = "locale"
)

var supportedTags = []language.Tag{
	language.AmericanEnglish,
	language.SimplifiedChinese,
}

var matcher = language.NewMatcher(supportedTags)

// ResolveLocale 从请求解析语言（?lang= 优先，其次 Accept-Language）
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return DefaultLocale
	}
	if cached, ok := c.Get(localeContextKey); ok {
		if locale, ok := cached.(string); ok && locale != "" {
			return locale
		}
	}
	locale := Match(c.Query("lang"))
	if strings.TrimSpace(c.Query("lang")) == "" {
		locale = Match(c.GetHeader("Accept-Language"))
	}
	c.Set(localeContextKey, locale)
	return locale
}

// Match 将任意语言描述归一到受支持的 locale
func Match(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultLocale
	}
	tags, _, err := language.ParseAcceptLanguage(raw)
	if err != nil || len(tags) == 0 {
		return DefaultLocale
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return DefaultLocale
	}
	switch supportedTags[index] {
	case language.SimplifiedChinese:
		return LocaleZH
	default:
		return LocaleEN
	}
}

// T 翻译消息 key，缺失时回退英文，再回退 key 本身
func T(locale, key string) string {
	if table, ok := messages[locale]; ok {
		if msg, ok := table[key]; ok {
			return msg
		}
	}
	if msg, ok := messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 翻译并格式化
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}
