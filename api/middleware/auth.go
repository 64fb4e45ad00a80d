package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/aliadapter/models"
)

// APIKeyContextKey is the gin context key holding the authenticated key.
const APIKeyContextKey = "api_key"

// Auth guards a route group with static API keys, accepted either as
// "X-API-Key: <key>" or "Authorization: Bearer <key>". An empty key list
// leaves the group open.
func Auth(apiKeys []string) gin.HandlerFunc {
	keys := make([][]byte, 0, len(apiKeys))
	for _, k := range apiKeys {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, []byte(k))
		}
	}
	if len(keys) == 0 {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		presented := presentedKey(c.Request)
		switch {
		case presented == "":
			unauthorized(c, "missing API key: send X-API-Key or Authorization: Bearer <key>")
		case !knownKey(keys, presented):
			unauthorized(c, "invalid API key")
		default:
			c.Set(APIKeyContextKey, presented)
			c.Next()
		}
	}
}

// knownKey compares against every key in constant time so the response
// latency does not reveal a matching prefix.
func knownKey(keys [][]byte, presented string) bool {
	p := []byte(presented)
	found := 0
	for _, k := range keys {
		found |= subtle.ConstantTimeCompare(k, p)
	}
	return found == 1
}

func presentedKey(r *http.Request) string {
	if k := strings.TrimSpace(r.Header.Get("X-API-Key")); k != "" {
		return k
	}
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}
	return ""
}

func unauthorized(c *gin.Context, details string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorEnvelope{
		Error:   models.ErrKindUnauthorized,
		Details: details,
	})
}
