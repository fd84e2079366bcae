package models

import "time"

// Translation is an immutable history record, either typed text or a
// transcribed voice clip.
type Translation struct {
	ID             string
	UserID         string
	FromLang       string
	ToLang         string
	OriginalText   string
	TranslatedText string
	// Kind is common.KindText or common.KindVoice.
	Kind string
	// AudioKey is the object storage key of the voice clip, if it was uploaded.
	AudioKey  string
	CreatedAt time.Time
}
