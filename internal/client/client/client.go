package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/polyglot/internal/common"
)

// User is the account summary returned by login and register.
type User struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	DefaultFromLang string    `json:"default_from_lang"`
	DefaultToLang   string    `json:"default_to_lang"`
	CreatedAt       time.Time `json:"created_at"`
}

type Session struct {
	User      User      `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Preferences struct {
	FromLang string `json:"from_lang"`
	ToLang   string `json:"to_lang"`
}

type Translation struct {
	ID             string    `json:"id,omitempty"`
	FromLang       string    `json:"from_lang"`
	ToLang         string    `json:"to_lang"`
	OriginalText   string    `json:"original_text"`
	TranslatedText string    `json:"translated_text"`
	Kind           string    `json:"kind"`
	AudioKey       string    `json:"audio_key,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type HTTPClient struct {
	baseURL string
	http    *http.Client
	token   string
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) SetToken(token string) { c.token = token }

func (c *HTTPClient) Token() string { return c.token }

func (c *HTTPClient) Register(ctx context.Context, email, password string) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", false, credentials{email, password}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Login starts a session and remembers its token.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (*Session, error) {
	var s Session
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", false, credentials{email, password}, &s); err != nil {
		return nil, err
	}
	c.token = s.Token
	return &s, nil
}

// Logout revokes the current session. The local token is dropped even if
// the server already considered it invalid.
func (c *HTTPClient) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/auth/logout", true, nil, nil)
	c.token = ""
	if errors.Is(err, ErrUnauthorized) {
		return nil
	}
	return err
}

func (c *HTTPClient) Translate(ctx context.Context, text, from, to string) (string, error) {
	req := map[string]string{"text": text, "from_lang": from, "to_lang": to}
	var resp struct {
		TranslatedText string `json:"translated_text"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/translate", true, req, &resp); err != nil {
		return "", err
	}
	return resp.TranslatedText, nil
}

func (c *HTTPClient) SaveTranslation(ctx context.Context, t Translation) (*Translation, error) {
	var saved Translation
	if err := c.do(ctx, http.MethodPost, "/api/translations", true, t, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (c *HTTPClient) History(ctx context.Context, kind string) ([]Translation, error) {
	var resp struct {
		Translations []Translation `json:"translations"`
	}
	path := "/api/translations?kind=" + url.QueryEscape(kind)
	if err := c.do(ctx, http.MethodGet, path, true, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Translations, nil
}

func (c *HTTPClient) GetPreferences(ctx context.Context) (*Preferences, error) {
	var p Preferences
	if err := c.do(ctx, http.MethodGet, "/api/preferences", true, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) UpdatePreferences(ctx context.Context, p Preferences) error {
	return c.do(ctx, http.MethodPut, "/api/preferences", true, p, nil)
}

// UploadTarget is a presigned location for one voice clip.
type UploadTarget struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

func (c *HTTPClient) UploadURL(ctx context.Context) (*UploadTarget, error) {
	var t UploadTarget
	if err := c.do(ctx, http.MethodPost, "/api/voice/upload-url", true, nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Transcribe sends an audio clip as multipart form data and returns the
// recognised text.
func (c *HTTPClient) Transcribe(ctx context.Context, filename string, audio []byte, lang string) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("audio", filename)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(audio); err != nil {
		return "", err
	}
	if lang != "" {
		if err := mw.WriteField("language", lang); err != nil {
			return "", err
		}
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	var resp struct {
		Text string `json:"text"`
	}
	if err := c.send(ctx, http.MethodPost, "/api/transcribe", true, &buf, mw.FormDataContentType(), &resp); err != nil {
		return "", err
	}
	return resp.Text, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", false, nil, nil)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, authenticated bool, in, out any) error {
	var (
		body        io.Reader
		contentType string
	)
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}
	return c.send(ctx, method, path, authenticated, body, contentType, out)
}

func (c *HTTPClient) send(ctx context.Context, method, path string, authenticated bool, body io.Reader, contentType string, out any) error {
	if authenticated && c.token == "" {
		return ErrNotLoggedIn
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if authenticated {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var env errorEnvelope
		_ = json.NewDecoder(resp.Body).Decode(&env)
		if env.Error.Code == "" {
			env.Error.Code = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Code: env.Error.Code, Message: env.Error.Message}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
