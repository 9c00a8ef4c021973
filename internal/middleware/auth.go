package middleware

import (
	"strings"

	"intelligence-srv/pkg/response"
	"intelligence-srv/pkg/scope"

	"github.com/gin-gonic/gin"
)

// Auth accepts a token from the Authorization header, then from the cookie.
func (m Middleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
		if token == "" {
			cookie, err := c.Cookie(m.cookieConfig.Name)
			if err != nil || cookie == "" {
				response.Unauthorized(c)
				c.Abort()
				return
			}
			token = cookie
		}

		payload, err := m.verifier.Verify(token)
		if err != nil {
			m.l.Debugf(c.Request.Context(), "middleware.Auth: Verify failed: %v", err)
			response.Unauthorized(c)
			c.Abort()
			return
		}

		ctx := scope.SetScopeToContext(c.Request.Context(), scope.NewScope(payload))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
