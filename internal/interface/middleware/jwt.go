package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-account-service/pkg/helpers"
	"github.com/oksasatya/go-account-service/pkg/response"
)

const CtxUserIDKey = "userID"

// JWTAuth reads the access token from the Authorization header or the access_token
// cookie, validates it, and injects the user ID into context.
func JWTAuth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			token, _ = c.Cookie(helpers.AccessTokenCookie)
		}
		if token == "" {
			response.Abort(c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			// kept on the context for the access log, never sent to the client
			_ = c.Error(err).SetType(gin.ErrorTypePrivate)
			response.Abort(c, http.StatusUnauthorized, "invalid access token", nil)
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Next()
	}
}

// RequireOwner lets the request through only when the :id path param is the authenticated user.
// It must run after JWTAuth.
func RequireOwner(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param(param), 10, 64)
		if err != nil {
			// malformed ids are reported by the handler
			c.Next()
			return
		}
		if c.GetInt64(CtxUserIDKey) != id {
			response.Abort(c, http.StatusForbidden, "not allowed to modify another user", nil)
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
