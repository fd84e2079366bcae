package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/polyglot/internal/client/client"
)

// maxClipSize matches the server's upload limit.
const maxClipSize = 10 << 20

// voice uploads a clip to object storage, transcribes it, translates the
// transcript and saves a voice record pointing at the stored clip. When the
// server has no storage configured the record is saved without a clip.
func (a *App) voice(ctx context.Context, args []string) error {
	if len(args) != 3 {
		fmt.Fprintln(a.out, "Usage: voice <file> <from> <to>")
		return ErrUsage
	}
	if err := a.authorize(); err != nil {
		return err
	}

	path, from, to := args[0], args[1], args[2]

	audio, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if len(audio) == 0 || len(audio) > maxClipSize {
		return fmt.Errorf("%s: clip must be between 1 byte and %d MiB", path, maxClipSize>>20)
	}

	audioKey, err := a.storeClip(ctx, audio)
	if err != nil {
		return err
	}

	text, err := a.api.Transcribe(ctx, filepath.Base(path), audio, from)
	if err != nil {
		return err
	}
	translated, err := a.api.Translate(ctx, text, from, to)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s\n%s\n", text, translated)

	_, err = a.api.SaveTranslation(ctx, client.Translation{
		FromLang:       from,
		ToLang:         to,
		OriginalText:   text,
		TranslatedText: translated,
		Kind:           "voice",
		AudioKey:       audioKey,
	})
	if err != nil {
		return fmt.Errorf("save to history: %w", err)
	}
	return nil
}

func (a *App) storeClip(ctx context.Context, audio []byte) (string, error) {
	target, err := a.api.UploadURL(ctx)
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.Code == "StorageDisabled" {
			fmt.Fprintln(a.out, "Voice storage is not configured, the clip will not be kept")
			return "", nil
		}
		return "", err
	}
	if err := a.upload(ctx, target.URL, audio); err != nil {
		return "", fmt.Errorf("upload clip: %w", err)
	}
	return target.Key, nil
}
