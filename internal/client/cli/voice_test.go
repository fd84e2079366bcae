package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/polyglot/internal/client/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeClip(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip.wav")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

func TestVoice_UploadsAndSaves(t *testing.T) {
	api := &fakeAPI{transcript: "good night"}
	a, store, out := newTestApp(t, api)
	require.NoError(t, store.Save("tok"))

	var uploadedTo string
	var uploaded []byte
	a.upload = func(_ context.Context, url string, data []byte) error {
		uploadedTo, uploaded = url, data
		return nil
	}

	require.NoError(t, a.Run(context.Background(), []string{"voice", writeClip(t, "RIFF"), "en", "de"}))

	assert.Equal(t, "http://s3.local/put", uploadedTo)
	assert.Equal(t, []byte("RIFF"), uploaded)
	assert.Equal(t, "good night\n[de] good night\n", out.String())

	require.Len(t, api.saved, 1)
	assert.Equal(t, "voice", api.saved[0].Kind)
	assert.Equal(t, "voice/u1/2025/05/01/k", api.saved[0].AudioKey)
	assert.Equal(t, "good night", api.saved[0].OriginalText)
}

func TestVoice_StorageDisabledSavesWithoutClip(t *testing.T) {
	api := &fakeAPI{uploadErr: &client.APIError{Status: 503, Code: "StorageDisabled", Message: "try again later"}}
	a, store, out := newTestApp(t, api)
	require.NoError(t, store.Save("tok"))
	a.upload = func(context.Context, string, []byte) error {
		t.Fatal("upload must not be attempted")
		return nil
	}

	require.NoError(t, a.Run(context.Background(), []string{"voice", writeClip(t, "RIFF"), "en", "de"}))

	assert.Contains(t, out.String(), "Voice storage is not configured")
	require.Len(t, api.saved, 1)
	assert.Empty(t, api.saved[0].AudioKey)
}

func TestVoice_UploadFailureSavesNothing(t *testing.T) {
	api := &fakeAPI{}
	a, store, _ := newTestApp(t, api)
	require.NoError(t, store.Save("tok"))
	a.upload = func(context.Context, string, []byte) error { return errors.New("403") }

	err := a.Run(context.Background(), []string{"voice", writeClip(t, "RIFF"), "en", "de"})
	require.Error(t, err)
	assert.Empty(t, api.saved)
}

func TestVoice_BadInput(t *testing.T) {
	a, store, _ := newTestApp(t, &fakeAPI{})
	require.NoError(t, store.Save("tok"))
	ctx := context.Background()

	assert.ErrorIs(t, a.Run(ctx, []string{"voice", "clip.wav"}), ErrUsage)
	assert.Error(t, a.Run(ctx, []string{"voice", filepath.Join(t.TempDir(), "missing.wav"), "en", "de"}))
	assert.Error(t, a.Run(ctx, []string{"voice", writeClip(t, ""), "en", "de"}))
}
