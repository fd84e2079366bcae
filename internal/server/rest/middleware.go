package rest

import (
	"context"
	"time"

	"github.com/dmitrijs2005/polyglot/internal/common"
	"github.com/dmitrijs2005/polyglot/internal/logging"
	"github.com/gin-gonic/gin"
)

// SessionValidator resolves a bearer token to its user.
type SessionValidator interface {
	Validate(ctx context.Context, signed string) (string, error)
}

type ctxKey int

const (
	userIDKey ctxKey = iota
	tokenKey
)

// UserIDFromContext returns the user authenticated by AuthMiddleware.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// TokenFromContext returns the bearer token the request was authenticated
// with.
func TokenFromContext(ctx context.Context) (string, bool) {
	t, ok := ctx.Value(tokenKey).(string)
	return t, ok && t != ""
}

// AuthMiddleware rejects requests without a valid bearer session and
// stores the session's user in the request context otherwise.
func AuthMiddleware(sessions SessionValidator, log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := common.BearerToken(c.GetHeader(common.AuthorizationHeaderName))
		if !ok {
			abortWithError(c, common.ErrNoToken)
			return
		}

		ctx := c.Request.Context()
		userID, err := sessions.Validate(ctx, token)
		if err != nil {
			log.Debug(ctx, "rejected session", "path", c.FullPath())
			abortWithError(c, common.ErrInvalidOrExpiredSession)
			return
		}

		ctx = context.WithValue(ctx, userIDKey, userID)
		ctx = context.WithValue(ctx, tokenKey, token)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequestLogger logs one line per request once it has been served.
func RequestLogger(log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		}
		if len(c.Errors) > 0 {
			args = append(args, "error", c.Errors.String())
		}

		ctx := c.Request.Context()
		switch {
		case c.Writer.Status() >= 500:
			log.Error(ctx, "request", args...)
		default:
			log.Info(ctx, "request", args...)
		}
	}
}
