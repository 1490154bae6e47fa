package widget

import (
	"context"
	"net/http"
	"sync"

	"github.com/doyosi/widgeta/transport"
)

// ConfirmConfig configures a delete-confirmation flow: a destructive action
// is armed first and only executes on an explicit confirm.
type ConfirmConfig struct {
	// Method defaults to DELETE.
	Method string

	// OnDeleted runs after a successful delete, typically a grid refresh.
	OnDeleted func()

	Transport transport.Transport
	Notifier  Notifier
}

// DeletedPayload accompanies EventDeleted.
type DeletedPayload struct {
	URL   string
	Label string
}

// Confirm is the two-step delete flow. Confirm while unarmed is a no-op.
type Confirm struct {
	emitter

	cfg ConfirmConfig

	mu         sync.Mutex
	armedURL   string
	armedLabel string
}

func NewConfirm(cfg ConfirmConfig) (*Confirm, error) {
	if cfg.Transport == nil {
		return nil, ErrNoTransport
	}
	if cfg.Method == "" {
		cfg.Method = http.MethodDelete
	}
	if cfg.Notifier == nil {
		cfg.Notifier = NopNotifier{}
	}
	return &Confirm{cfg: cfg}, nil
}

// Arm remembers the pending deletion. label is shown in notifications.
func (c *Confirm) Arm(url, label string) {
	c.mu.Lock()
	c.armedURL = url
	c.armedLabel = label
	c.mu.Unlock()
}

// Cancel disarms the flow.
func (c *Confirm) Cancel() {
	c.mu.Lock()
	c.armedURL = ""
	c.armedLabel = ""
	c.mu.Unlock()
}

// Armed reports whether a deletion is pending.
func (c *Confirm) Armed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.armedURL != ""
}

// Confirm executes the armed deletion. Returns false when nothing is armed.
// The flow disarms on either outcome; a failed delete must be re-armed.
func (c *Confirm) Confirm(ctx context.Context) bool {
	c.mu.Lock()
	url, label := c.armedURL, c.armedLabel
	c.armedURL, c.armedLabel = "", ""
	c.mu.Unlock()

	if url == "" {
		return false
	}

	payload, err := c.cfg.Transport.Do(ctx, c.cfg.Method, url, nil)
	if err != nil {
		message := errorMessage(err)
		c.cfg.Notifier.Notify(LevelError, message)
		c.emit(EventError, ErrorPayload{Err: err, Message: message})
		return true
	}

	message := responseMessage(payload)
	if message == "" {
		message = "Deleted " + label
	}
	c.cfg.Notifier.Notify(LevelSuccess, message)

	if c.cfg.OnDeleted != nil {
		c.cfg.OnDeleted()
	}
	c.emit(EventDeleted, DeletedPayload{URL: url, Label: label})
	return true
}
