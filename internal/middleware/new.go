package middleware

import (
	"intelligence-srv/config"
	"intelligence-srv/pkg/log"
	"intelligence-srv/pkg/scope"
)

// Verifier turns a bearer token into the caller's identity.
type Verifier interface {
	Verify(token string) (scope.Payload, error)
}

type Middleware struct {
	l            log.Logger
	verifier     Verifier
	cookieConfig config.CookieConfig
	limiter      *userLimiter
}

func New(l log.Logger, verifier Verifier, cookieConfig config.CookieConfig, rateLimit config.RateLimitConfig) Middleware {
	return Middleware{
		l:            l,
		verifier:     verifier,
		cookieConfig: cookieConfig,
		limiter:      newUserLimiter(rateLimit.GeneratePerMinute, rateLimit.Burst),
	}
}
