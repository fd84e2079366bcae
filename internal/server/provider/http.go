// Package provider talks to the third-party translation and speech-to-text
// service.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/polyglot/internal/common"
	"github.com/sony/gobreaker"
)

const DefaultTimeout = 15 * time.Second

// maxResponseSize caps what is read from the provider.
const maxResponseSize = 1 << 20

// errRejected marks a 4xx answer. It does not trip the breaker.
var errRejected = errors.New("provider rejected request")

type translateRequest struct {
	Text string `json:"text"`
	From string `json:"from"`
	To   string `json:"to"`
}

type translateResponse struct {
	TranslatedText string `json:"translated_text"`
}

type transcribeResponse struct {
	Text string `json:"text"`
}

// HTTPProvider calls the provider's REST API:
//
//	POST {base}/translate   JSON {text, from, to} -> {translated_text}
//	POST {base}/transcribe  multipart audio (+ language) -> {text}
//
// Each call is bounded by the client timeout and guarded by a circuit
// breaker. There are no retries.
type HTTPProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
	cb      *gobreaker.CircuitBreaker
}

func NewHTTPProvider(baseURL, apiKey string, timeout time.Duration) *HTTPProvider {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "provider",
			MaxRequests: 1,
			Interval:    30 * time.Second,
			Timeout:     10 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, errRejected)
			},
		}),
	}
}

func (p *HTTPProvider) Translate(ctx context.Context, text, from, to string) (string, error) {
	body, err := json.Marshal(translateRequest{Text: text, From: from, To: to})
	if err != nil {
		return "", err
	}

	var resp translateResponse
	if err := p.do(ctx, "/translate", "application/json", body, &resp); err != nil {
		return "", err
	}
	return resp.TranslatedText, nil
}

func (p *HTTPProvider) Transcribe(ctx context.Context, audio io.Reader, filename, lang string) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("audio", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, audio); err != nil {
		return "", fmt.Errorf("%w: read audio: %w", common.ErrInvalidInput, err)
	}
	if lang != "" {
		if err := mw.WriteField("language", lang); err != nil {
			return "", err
		}
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	var resp transcribeResponse
	if err := p.do(ctx, "/transcribe", mw.FormDataContentType(), buf.Bytes(), &resp); err != nil {
		return "", err
	}
	return resp.Text, nil
}

// do posts body to path and decodes the JSON answer into out. Transport
// failures, 5xx answers and an open breaker become
// common.ErrProviderUnavailable; 4xx answers become common.ErrInvalidInput.
func (p *HTTPProvider) do(ctx context.Context, path, contentType string, body []byte, out any) error {
	_, err := p.cb.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Accept", "application/json")
		if p.apiKey != "" {
			req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+p.apiKey)
		}

		resp, err := p.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
		if err != nil {
			return nil, err
		}

		switch {
		case resp.StatusCode >= 500:
			return nil, fmt.Errorf("provider status %d", resp.StatusCode)
		case resp.StatusCode >= 400:
			return nil, fmt.Errorf("%w: status %d", errRejected, resp.StatusCode)
		}

		if err := json.Unmarshal(data, out); err != nil {
			return nil, fmt.Errorf("decode provider response: %w", err)
		}
		return nil, nil
	})

	switch {
	case err == nil:
		return nil
	case errors.Is(err, errRejected):
		return fmt.Errorf("%w: %w", common.ErrInvalidInput, err)
	default:
		return fmt.Errorf("%w: %w", common.ErrProviderUnavailable, err)
	}
}
