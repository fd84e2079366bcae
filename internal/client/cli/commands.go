package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/polyglot/internal/client/client"
)

func (a *App) register(ctx context.Context) error {
	email, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	u, err := a.api.Register(ctx, email, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Registered %s\n", u.Email)
	return nil
}

func (a *App) login(ctx context.Context) error {
	email, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	s, err := a.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if err := a.tokens.Save(s.Token); err != nil {
		return fmt.Errorf("store session token: %w", err)
	}
	fmt.Fprintf(a.out, "Logged in as %s (session valid until %s)\n", s.User.Email, s.ExpiresAt.Local().Format(time.DateTime))
	return nil
}

func (a *App) logout(ctx context.Context) error {
	token, err := a.tokens.Load()
	if err != nil {
		return err
	}
	if token == "" {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}
	a.api.SetToken(token)
	if err := a.api.Logout(ctx); err != nil {
		return err
	}
	if err := a.tokens.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) translate(ctx context.Context, args []string) error {
	if len(args) < 3 {
		fmt.Fprintln(a.out, "Usage: translate <from> <to> <text>")
		return ErrUsage
	}
	if err := a.authorize(); err != nil {
		return err
	}

	from, to := args[0], args[1]
	text := strings.Join(args[2:], " ")

	translated, err := a.api.Translate(ctx, text, from, to)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, translated)

	_, err = a.api.SaveTranslation(ctx, client.Translation{
		FromLang:       from,
		ToLang:         to,
		OriginalText:   text,
		TranslatedText: translated,
		Kind:           "text",
	})
	if err != nil {
		return fmt.Errorf("save to history: %w", err)
	}
	return nil
}

func (a *App) history(ctx context.Context, args []string) error {
	kind := "text"
	if len(args) > 0 {
		kind = args[0]
	}
	if err := a.authorize(); err != nil {
		return err
	}

	items, err := a.api.History(ctx, kind)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No translations yet")
		return nil
	}
	for _, t := range items {
		fmt.Fprintf(a.out, "%s  %s->%s  %s => %s\n",
			t.CreatedAt.Local().Format(time.DateTime), t.FromLang, t.ToLang, t.OriginalText, t.TranslatedText)
	}
	return nil
}

func (a *App) prefs(ctx context.Context, args []string) error {
	if len(args) != 0 && len(args) != 2 {
		fmt.Fprintln(a.out, "Usage: prefs [<from> <to>]")
		return ErrUsage
	}
	if err := a.authorize(); err != nil {
		return err
	}

	if len(args) == 2 {
		if err := a.api.UpdatePreferences(ctx, client.Preferences{FromLang: args[0], ToLang: args[1]}); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Preferences updated")
		return nil
	}

	p, err := a.api.GetPreferences(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "from: %s\nto:   %s\n", orDash(p.FromLang), orDash(p.ToLang))
	return nil
}

func (a *App) status(ctx context.Context) error {
	if err := a.api.Ping(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Server is up")
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
