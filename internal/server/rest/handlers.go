package rest

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/polyglot/internal/common"
	"github.com/dmitrijs2005/polyglot/internal/logging"
	"github.com/dmitrijs2005/polyglot/internal/server/models"
	"github.com/dmitrijs2005/polyglot/internal/server/services"
	"github.com/gin-gonic/gin"
)

// MaxAudioSize bounds the multipart body accepted by /api/transcribe.
const MaxAudioSize = 10 << 20

type UserService interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.LoginResult, error)
	Logout(ctx context.Context, signed string) error
	GetPreferences(ctx context.Context, userID string) (*models.Preferences, error)
	UpdatePreferences(ctx context.Context, userID, from, to string) error
}

type TranslationService interface {
	Save(ctx context.Context, userID string, in services.SaveTranslationInput) (*models.Translation, error)
	History(ctx context.Context, userID, kind string) ([]models.Translation, error)
	Translate(ctx context.Context, text, from, to string) (string, error)
	Transcribe(ctx context.Context, audio io.Reader, filename, lang string) (string, error)
	UploadURL(ctx context.Context, userID string) (*services.UploadTarget, error)
}

type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type Handler struct {
	users        UserService
	translations TranslationService
	health       HealthChecker
	log          logging.Logger
}

func NewHandler(users UserService, translations TranslationService, health HealthChecker, log logging.Logger) *Handler {
	return &Handler{users: users, translations: translations, health: health, log: log}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userJSON struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	DefaultFromLang string    `json:"default_from_lang"`
	DefaultToLang   string    `json:"default_to_lang"`
	CreatedAt       time.Time `json:"created_at"`
}

func toUserJSON(u *models.User) userJSON {
	return userJSON{
		ID:              u.ID,
		Email:           u.Email,
		DefaultFromLang: u.DefaultFromLang,
		DefaultToLang:   u.DefaultToLang,
		CreatedAt:       u.CreatedAt,
	}
}

type loginResponse struct {
	User      userJSON  `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type preferencesJSON struct {
	FromLang string `json:"from_lang"`
	ToLang   string `json:"to_lang"`
}

type translationJSON struct {
	ID             string    `json:"id"`
	FromLang       string    `json:"from_lang"`
	ToLang         string    `json:"to_lang"`
	OriginalText   string    `json:"original_text"`
	TranslatedText string    `json:"translated_text"`
	Kind           string    `json:"kind"`
	AudioKey       string    `json:"audio_key,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func toTranslationJSON(t *models.Translation) translationJSON {
	return translationJSON{
		ID:             t.ID,
		FromLang:       t.FromLang,
		ToLang:         t.ToLang,
		OriginalText:   t.OriginalText,
		TranslatedText: t.TranslatedText,
		Kind:           t.Kind,
		AudioKey:       t.AudioKey,
		CreatedAt:      t.CreatedAt,
	}
}

type saveTranslationRequest struct {
	FromLang       string `json:"from_lang" binding:"required"`
	ToLang         string `json:"to_lang" binding:"required"`
	OriginalText   string `json:"original_text" binding:"required"`
	TranslatedText string `json:"translated_text" binding:"required"`
	Kind           string `json:"kind" binding:"required,oneof=text voice"`
	AudioKey       string `json:"audio_key"`
}

type translateRequest struct {
	Text     string `json:"text" binding:"required"`
	FromLang string `json:"from_lang" binding:"required"`
	ToLang   string `json:"to_lang" binding:"required"`
}

func (h *Handler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, common.ErrInvalidInput)
		return
	}

	u, err := h.users.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toUserJSON(u))
}

func (h *Handler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, common.ErrInvalidInput)
		return
	}

	res, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		User:      toUserJSON(res.User),
		Token:     res.SignedSessionID,
		ExpiresAt: res.ExpiresAt,
	})
}

func (h *Handler) Logout(c *gin.Context) {
	token, _ := TokenFromContext(c.Request.Context())
	if err := h.users.Logout(c.Request.Context(), token); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) GetPreferences(c *gin.Context) {
	userID, _ := UserIDFromContext(c.Request.Context())

	prefs, err := h.users.GetPreferences(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, preferencesJSON{FromLang: prefs.FromLang, ToLang: prefs.ToLang})
}

func (h *Handler) UpdatePreferences(c *gin.Context) {
	userID, _ := UserIDFromContext(c.Request.Context())

	var req preferencesJSON
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, common.ErrInvalidInput)
		return
	}

	if err := h.users.UpdatePreferences(c.Request.Context(), userID, req.FromLang, req.ToLang); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, req)
}

func (h *Handler) SaveTranslation(c *gin.Context) {
	userID, _ := UserIDFromContext(c.Request.Context())

	var req saveTranslationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, common.ErrInvalidInput)
		return
	}

	t, err := h.translations.Save(c.Request.Context(), userID, services.SaveTranslationInput{
		FromLang:       req.FromLang,
		ToLang:         req.ToLang,
		OriginalText:   req.OriginalText,
		TranslatedText: req.TranslatedText,
		Kind:           req.Kind,
		AudioKey:       req.AudioKey,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toTranslationJSON(t))
}

func (h *Handler) ListTranslations(c *gin.Context) {
	userID, _ := UserIDFromContext(c.Request.Context())
	kind := c.DefaultQuery("kind", common.KindText)

	list, err := h.translations.History(c.Request.Context(), userID, kind)
	if err != nil {
		abortWithError(c, err)
		return
	}

	out := make([]translationJSON, 0, len(list))
	for i := range list {
		out = append(out, toTranslationJSON(&list[i]))
	}
	c.JSON(http.StatusOK, gin.H{"translations": out})
}

func (h *Handler) Translate(c *gin.Context) {
	var req translateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, common.ErrInvalidInput)
		return
	}

	out, err := h.translations.Translate(c.Request.Context(), req.Text, req.FromLang, req.ToLang)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"translated_text": out})
}

func (h *Handler) Transcribe(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxAudioSize)

	fh, err := c.FormFile("audio")
	if err != nil {
		abortWithError(c, common.ErrInvalidInput)
		return
	}
	f, err := fh.Open()
	if err != nil {
		abortWithError(c, common.ErrInvalidInput)
		return
	}
	defer f.Close()

	text, err := h.translations.Transcribe(c.Request.Context(), f, fh.Filename, c.PostForm("language"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"text": text})
}

func (h *Handler) UploadURL(c *gin.Context) {
	userID, _ := UserIDFromContext(c.Request.Context())

	target, err := h.translations.UploadURL(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"key": target.Key, "url": target.URL})
}

func (h *Handler) Health(c *gin.Context) {
	if err := h.health.HealthCheck(c.Request.Context()); err != nil {
		if !errors.Is(err, common.ErrBackendUnavailable) {
			err = errors.Join(common.ErrBackendUnavailable, err)
		}
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
