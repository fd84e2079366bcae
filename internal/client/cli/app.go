package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/polyglot/internal/client/client"
	"github.com/dmitrijs2005/polyglot/internal/client/config"
	"github.com/dmitrijs2005/polyglot/internal/netx"
)

var ErrUsage = errors.New("usage")

// API is the subset of the REST client the commands rely on.
type API interface {
	Register(ctx context.Context, email, password string) (*client.User, error)
	Login(ctx context.Context, email, password string) (*client.Session, error)
	Logout(ctx context.Context) error
	Translate(ctx context.Context, text, from, to string) (string, error)
	SaveTranslation(ctx context.Context, t client.Translation) (*client.Translation, error)
	History(ctx context.Context, kind string) ([]client.Translation, error)
	GetPreferences(ctx context.Context) (*client.Preferences, error)
	UpdatePreferences(ctx context.Context, p client.Preferences) error
	UploadURL(ctx context.Context) (*client.UploadTarget, error)
	Transcribe(ctx context.Context, filename string, audio []byte, lang string) (string, error)
	Ping(ctx context.Context) error
	SetToken(token string)
}

type App struct {
	api    API
	tokens *TokenStore
	in     *bufio.Reader
	out    io.Writer
	upload func(ctx context.Context, url string, data []byte) error
}

func NewApp(c *config.Config) (*App, error) {
	if c.ServerURL == "" {
		return nil, errors.New("server URL is not set")
	}
	if c.TokenFile == "" {
		return nil, errors.New("token file is not set")
	}
	api := client.NewHTTPClient(c.ServerURL, c.Timeout)
	return newApp(api, NewTokenStore(c.TokenFile), os.Stdin, os.Stdout), nil
}

func newApp(api API, tokens *TokenStore, in io.Reader, out io.Writer) *App {
	return &App{api: api, tokens: tokens, in: bufio.NewReader(in), out: out, upload: netx.PutPresigned}
}

// Run executes the command named by args[0].
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.usage()
		return ErrUsage
	}

	cmd, rest := args[0], args[1:]

	var err error
	switch cmd {
	case "help":
		a.usage()
		return nil
	case "register":
		err = a.register(ctx)
	case "login":
		err = a.login(ctx)
	case "logout":
		err = a.logout(ctx)
	case "translate":
		err = a.translate(ctx, rest)
	case "voice":
		err = a.voice(ctx, rest)
	case "history":
		err = a.history(ctx, rest)
	case "prefs":
		err = a.prefs(ctx, rest)
	case "status":
		err = a.status(ctx)
	default:
		fmt.Fprintln(a.out, "Unknown command:", cmd)
		a.usage()
		return ErrUsage
	}

	if errors.Is(err, client.ErrUnauthorized) && cmd != "login" {
		// the stored token is no longer accepted
		_ = a.tokens.Clear()
		return fmt.Errorf("session expired, please log in again: %w", err)
	}
	return err
}

func (a *App) usage() {
	fmt.Fprintln(a.out, "Available commands: register, login, logout, translate <from> <to> <text>, voice <file> <from> <to>, history [text|voice], prefs [<from> <to>], status")
}

// authorize loads the stored token into the API client.
func (a *App) authorize() error {
	token, err := a.tokens.Load()
	if err != nil {
		return err
	}
	if token == "" {
		return client.ErrNotLoggedIn
	}
	a.api.SetToken(token)
	return nil
}
