package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/polyglot/internal/common"
	"github.com/dmitrijs2005/polyglot/internal/logging"
	"github.com/dmitrijs2005/polyglot/internal/server/auth"
	"github.com/dmitrijs2005/polyglot/internal/server/models"
	"github.com/dmitrijs2005/polyglot/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// Translator is the third-party translation and speech-to-text provider.
type Translator interface {
	Translate(ctx context.Context, text, from, to string) (string, error)
	Transcribe(ctx context.Context, audio io.Reader, filename, lang string) (string, error)
}

// VoiceStorage hands out presigned upload URLs for voice clips.
type VoiceStorage interface {
	PresignPut(ctx context.Context, key string) (string, error)
}

// SaveTranslationInput is a finished translation the client wants kept.
type SaveTranslationInput struct {
	FromLang       string
	ToLang         string
	OriginalText   string
	TranslatedText string
	Kind           string
	AudioKey       string
}

// UploadTarget is where the client PUTs a voice clip.
type UploadTarget struct {
	Key string
	URL string
}

type TranslationService struct {
	repomanager repomanager.RepositoryManager
	translator  Translator
	storage     VoiceStorage
	now         func() time.Time
	log         logging.Logger
}

func NewTranslationService(m repomanager.RepositoryManager, translator Translator, storage VoiceStorage,
	log logging.Logger) *TranslationService {
	return &TranslationService{
		repomanager: m,
		translator:  translator,
		storage:     storage,
		now:         time.Now,
		log:         log.With("component", "translations"),
	}
}

// Save appends a record to userID's history.
func (s *TranslationService) Save(ctx context.Context, userID string, in SaveTranslationInput) (*models.Translation, error) {
	if err := auth.ValidateKind(in.Kind); err != nil {
		return nil, err
	}
	if err := auth.ValidateLang(in.FromLang, false); err != nil {
		return nil, err
	}
	if err := auth.ValidateLang(in.ToLang, false); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.OriginalText) == "" || strings.TrimSpace(in.TranslatedText) == "" {
		return nil, common.ErrInvalidInput
	}
	if in.AudioKey != "" && (in.Kind != common.KindVoice || !strings.HasPrefix(in.AudioKey, voiceKeyPrefix(userID))) {
		return nil, common.ErrInvalidInput
	}

	t, err := s.repomanager.Translations().Create(ctx, &models.Translation{
		ID:             uuid.NewString(),
		UserID:         userID,
		FromLang:       in.FromLang,
		ToLang:         in.ToLang,
		OriginalText:   in.OriginalText,
		TranslatedText: in.TranslatedText,
		Kind:           in.Kind,
		AudioKey:       in.AudioKey,
		CreatedAt:      s.now().UTC(),
	})
	if err != nil {
		s.log.Error(ctx, "saving translation failed", "user_id", userID, "error", err)
		return nil, err
	}
	return t, nil
}

// History lists userID's records of the given kind, newest first.
func (s *TranslationService) History(ctx context.Context, userID, kind string) ([]models.Translation, error) {
	if err := auth.ValidateKind(kind); err != nil {
		return nil, err
	}
	list, err := s.repomanager.Translations().ListByUser(ctx, userID, kind)
	if err != nil {
		s.log.Error(ctx, "listing translations failed", "user_id", userID, "error", err)
		return nil, err
	}
	return list, nil
}

// Translate asks the provider for a translation. Nothing is stored; the
// client decides whether to Save the result.
func (s *TranslationService) Translate(ctx context.Context, text, from, to string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", common.ErrInvalidInput
	}
	if err := auth.ValidateLang(from, false); err != nil {
		return "", err
	}
	if err := auth.ValidateLang(to, false); err != nil {
		return "", err
	}

	out, err := s.translator.Translate(ctx, text, from, to)
	if err != nil {
		s.log.Warn(ctx, "provider translate failed", "error", err)
		return "", err
	}
	return out, nil
}

// Transcribe converts a voice clip to text in lang. An empty lang lets the
// provider detect it.
func (s *TranslationService) Transcribe(ctx context.Context, audio io.Reader, filename, lang string) (string, error) {
	if audio == nil {
		return "", common.ErrInvalidInput
	}
	if err := auth.ValidateLang(lang, true); err != nil {
		return "", err
	}

	out, err := s.translator.Transcribe(ctx, audio, filename, lang)
	if err != nil {
		s.log.Warn(ctx, "provider transcribe failed", "error", err)
		return "", err
	}
	return out, nil
}

// UploadURL reserves a storage key under userID's prefix and presigns a PUT
// for it.
func (s *TranslationService) UploadURL(ctx context.Context, userID string) (*UploadTarget, error) {
	key := s.newVoiceKey(userID)
	url, err := s.storage.PresignPut(ctx, key)
	if err != nil {
		s.log.Warn(ctx, "presign failed", "user_id", userID, "error", err)
		return nil, err
	}
	return &UploadTarget{Key: key, URL: url}, nil
}

func voiceKeyPrefix(userID string) string {
	return fmt.Sprintf("voice/%s/", userID)
}

func (s *TranslationService) newVoiceKey(userID string) string {
	d := s.now().UTC()
	return fmt.Sprintf("%s%d/%02d/%02d/%s", voiceKeyPrefix(userID), d.Year(), d.Month(), d.Day(), uuid.NewString())
}
