// Package client talks to the polyglot REST API.
//
// HTTPClient keeps the bearer token of the current session and attaches it
// to every authenticated call. Server error envelopes are returned as
// *APIError; connection failures and 503 answers match ErrUnavailable, and
// 401 answers match ErrUnauthorized.
package client
