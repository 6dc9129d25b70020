package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// LangMiddleware stores the first Accept-Language tag under "lang".
func LangMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := c.GetHeader("Accept-Language")
		if lang == "" {
			lang = "en"
		} else {
			lang = strings.TrimSpace(strings.Split(lang, ",")[0])
			lang, _, _ = strings.Cut(lang, ";")
		}
		c.Set("lang", lang)
		c.Next()
	}
}
