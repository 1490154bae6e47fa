package widget

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/doyosi/widgeta/transport"
)

// ErrUnknownLocale is returned for a locale outside the allow list.
var ErrUnknownLocale = errors.New("widgeta: unknown locale")

// LocaleSwitchConfig configures the locale switch widget.
type LocaleSwitchConfig struct {
	// URL defaults to the mounted locale endpoint.
	URL string

	// Locales is the allow list; empty accepts anything the server accepts.
	Locales []string

	// OnSwitched runs after a successful switch, typically a page reload
	// hook.
	OnSwitched func(locale string)

	Transport transport.Transport
	Notifier  Notifier
}

// LocaleSwitch posts locale changes to the server endpoint.
type LocaleSwitch struct {
	emitter

	cfg LocaleSwitchConfig
}

func NewLocaleSwitch(cfg LocaleSwitchConfig) (*LocaleSwitch, error) {
	if cfg.Transport == nil {
		return nil, ErrNoTransport
	}
	if cfg.URL == "" {
		cfg.URL = "/widgeta/locale"
	}
	if cfg.Notifier == nil {
		cfg.Notifier = NopNotifier{}
	}
	return &LocaleSwitch{cfg: cfg}, nil
}

// Switch validates the locale locally, then posts it. On success the
// switched event fires and OnSwitched runs.
func (l *LocaleSwitch) Switch(ctx context.Context, locale string) error {
	if len(l.cfg.Locales) > 0 && !contains(l.cfg.Locales, locale) {
		return fmt.Errorf("%w: %q", ErrUnknownLocale, locale)
	}

	body, err := json.Marshal(map[string]string{"locale": locale})
	if err != nil {
		return err
	}

	if _, err := l.cfg.Transport.Do(ctx, http.MethodPost, l.cfg.URL, body); err != nil {
		l.cfg.Notifier.Notify(LevelError, errorMessage(err))
		return err
	}

	l.cfg.Notifier.Notify(LevelSuccess, "Locale switched to "+locale)
	if l.cfg.OnSwitched != nil {
		l.cfg.OnSwitched(locale)
	}
	l.emit(EventSwitched, locale)
	return nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
