package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/polyglot/internal/common"
	"github.com/gin-gonic/gin"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorMapping struct {
	err    error
	code   string
	status int
}

var errorMappings = []errorMapping{
	{common.ErrInvalidEmail, "InvalidEmail", http.StatusBadRequest},
	{common.ErrWeakPassword, "WeakPassword", http.StatusBadRequest},
	{common.ErrInvalidInput, "InvalidInput", http.StatusBadRequest},
	{common.ErrInvalidCredentials, "InvalidCredentials", http.StatusUnauthorized},
	{common.ErrNoToken, "NoToken", http.StatusUnauthorized},
	{common.ErrInvalidOrExpiredSession, "InvalidOrExpiredSession", http.StatusUnauthorized},
	{common.ErrDuplicateEmail, "DuplicateEmail", http.StatusConflict},
	{common.ErrUserNotFound, "UserNotFound", http.StatusNotFound},
	{common.ErrBackendUnavailable, "BackendUnavailable", http.StatusServiceUnavailable},
	{common.ErrProviderUnavailable, "ProviderUnavailable", http.StatusServiceUnavailable},
	{common.ErrStorageDisabled, "StorageDisabled", http.StatusServiceUnavailable},
}

// classify maps err to its wire code and HTTP status. Unavailable errors get
// a generic message; their details stay in the server log.
func classify(err error) (int, errorBody) {
	for _, m := range errorMappings {
		if !errors.Is(err, m.err) {
			continue
		}
		msg := m.err.Error()
		if m.status == http.StatusServiceUnavailable {
			msg = "try again later"
		}
		return m.status, errorBody{Code: m.code, Message: msg}
	}
	return http.StatusInternalServerError, errorBody{Code: "Internal", Message: common.ErrorInternal.Error()}
}

func abortWithError(c *gin.Context, err error) {
	status, body := classify(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, errorEnvelope{Error: body})
}
