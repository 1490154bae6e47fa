package widget

import (
	"fmt"
	"html"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/doyosi/widgeta/dom"
)

// Level classifies a toast notice.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
)

// Notifier is the toast capability widgets receive explicitly instead of
// reaching into a page-global helper.
type Notifier interface {
	Notify(level Level, message string)
}

// NopNotifier discards every notice. Used when a caller wires no toast
// region.
type NopNotifier struct{}

func (NopNotifier) Notify(Level, string) {}

// Notice is one queued toast.
type Notice struct {
	ID      string
	Level   Level
	Message string
}

// ToastCenter renders a stack of notices into a page region.
type ToastCenter struct {
	mu      sync.Mutex
	region  *dom.Region
	notices []Notice
}

// NewToastCenter binds a toast stack to the given region. A nil region
// still queues notices, it just renders nowhere.
func NewToastCenter(region *dom.Region) *ToastCenter {
	return &ToastCenter{region: region}
}

func (t *ToastCenter) Notify(level Level, message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.notices = append(t.notices, Notice{
		ID:      uuid.NewString(),
		Level:   level,
		Message: message,
	})
	t.render()
}

// Dismiss drops the notice with the given id. Returns false when unknown.
func (t *ToastCenter) Dismiss(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, n := range t.notices {
		if n.ID == id {
			t.notices = append(t.notices[:i], t.notices[i+1:]...)
			t.render()
			return true
		}
	}
	return false
}

// Clear drops every notice.
func (t *ToastCenter) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.notices = nil
	t.render()
}

// Notices returns a snapshot of the queue, oldest first.
func (t *ToastCenter) Notices() []Notice {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Notice, len(t.notices))
	copy(out, t.notices)
	return out
}

func (t *ToastCenter) render() {
	if t.region == nil {
		return
	}
	if len(t.notices) == 0 {
		t.region.Clear()
		t.region.Hide()
		return
	}

	var sb strings.Builder
	for _, n := range t.notices {
		fmt.Fprintf(&sb,
			`<div class="toast toast-%s" data-id="%s"><span>%s</span><button type="button" class="toast-close" data-id="%s">&times;</button></div>`,
			n.Level, n.ID, html.EscapeString(n.Message), n.ID)
	}
	if err := t.region.SetHTML(sb.String()); err != nil {
		log.Printf("widgeta: failed to render toasts: %v", err)
		return
	}
	t.region.Show()
}
