package httputil

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// RequestHost returns the base URL the client used for the request.
// The scheme defaults to http and only switches to https if the
// x-forwarded-proto header says so.
func RequestHost(c *gin.Context) string {
	scheme := "http"
	if c.Request.Header.Get("x-forwarded-proto") == "https" {
		scheme = "https"
	}

	// A reverse proxy can be reasonably expected to set
	// x-forwarded-host as it is a de-facto standard.
	host := c.Request.Host
	var forwardedPrefix string

	xForwardedHost := c.Request.Header.Get("x-forwarded-host")
	if xForwardedHost != "" {
		host = xForwardedHost
		forwardedPrefix = c.Request.Header.Get("x-forwarded-prefix")
	}

	return scheme + "://" + host + forwardedPrefix
}

// RequestPathV1 returns the URL with the prefix for API v1.
func RequestPathV1(c *gin.Context) string {
	return RequestHost(c) + "/v1"
}

// BindData binds the JSON request body to the struct passed in. On
// failure, the error response has already been written.
func BindData(c *gin.Context, data any) error {
	if err := c.ShouldBindJSON(&data); err != nil {
		if errors.Is(err, io.EOF) {
			NewError(c, http.StatusBadRequest, ErrRequestBodyEmpty)
			return ErrRequestBodyEmpty
		}

		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		NewError(c, http.StatusBadRequest, ErrInvalidBody)
		return ErrInvalidBody
	}

	return nil
}
