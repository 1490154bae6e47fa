package widget

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/doyosi/widgeta/dom"
	"github.com/doyosi/widgeta/transport"
)

// ErrFormNotFound is returned when the configured form region is missing.
var ErrFormNotFound = errors.New("widgeta: form element not found")

// FormConfig configures an ajax form submission helper.
type FormConfig struct {
	URL  string
	Form Target

	// Submit optionally points at the submit button, which is disabled while
	// a request is in flight.
	Submit Target

	// Method defaults to POST.
	Method string

	// Extra produces additional payload fields, applied after (and
	// overriding) the scraped form values.
	Extra func() map[string]string

	// ResetOnSuccess clears text controls after a successful submit.
	ResetOnSuccess bool

	Transport transport.Transport
	Notifier  Notifier
}

// Form binds to an existing form region and submits its values as JSON.
// Unlike the grid, submission is single-flight: a submit while one is in
// flight is ignored.
type Form struct {
	emitter

	cfg       FormConfig
	region    *dom.Region
	submitBtn *dom.Region

	mu       sync.Mutex
	inFlight bool
}

func NewForm(doc *dom.Document, cfg FormConfig) (*Form, error) {
	if cfg.Transport == nil {
		return nil, ErrNoTransport
	}
	if cfg.URL == "" {
		return nil, ErrNoURL
	}
	region := cfg.Form.resolve(doc)
	if region == nil {
		return nil, fmt.Errorf("%w: %q", ErrFormNotFound, cfg.Form.Selector)
	}
	if cfg.Method == "" {
		cfg.Method = http.MethodPost
	}
	if cfg.Notifier == nil {
		cfg.Notifier = NopNotifier{}
	}

	f := &Form{cfg: cfg, region: region}
	if !cfg.Submit.empty() {
		f.submitBtn = cfg.Submit.resolve(doc)
	} else {
		f.submitBtn = region.Find("button")
	}
	return f, nil
}

// Values reports the current form values, scraped from the live region.
func (f *Form) Values() map[string]string {
	return f.region.FormValues()
}

// Submit scrapes the form, validates required controls locally and sends
// the values as a JSON object. The outcome is reported through the notifier
// and the success/error events.
func (f *Form) Submit(ctx context.Context) {
	f.mu.Lock()
	if f.inFlight {
		f.mu.Unlock()
		return
	}
	f.inFlight = true
	f.mu.Unlock()
	defer func() {
		f.mu.Lock()
		f.inFlight = false
		f.mu.Unlock()
		if f.submitBtn != nil {
			f.submitBtn.RemoveAttr("disabled")
		}
	}()

	if f.submitBtn != nil {
		f.submitBtn.SetAttr("disabled", "")
	}

	values := f.region.FormValues()
	for _, name := range f.region.RequiredControls() {
		if values[name] == "" {
			message := fmt.Sprintf("Field %q is required", name)
			f.cfg.Notifier.Notify(LevelError, message)
			f.emit(EventError, ErrorPayload{Message: message})
			return
		}
	}

	if f.cfg.Extra != nil {
		for key, value := range f.cfg.Extra() {
			values[key] = value
		}
	}

	body, err := json.Marshal(values)
	if err != nil {
		f.failed(err)
		return
	}

	payload, err := f.cfg.Transport.Do(ctx, f.cfg.Method, f.cfg.URL, body)
	if err != nil {
		f.failed(err)
		return
	}

	message := responseMessage(payload)
	if message == "" {
		message = "Saved."
	}
	f.cfg.Notifier.Notify(LevelSuccess, message)

	if f.cfg.ResetOnSuccess {
		// selects and checkboxes intentionally keep their state
		f.region.ClearTextControls()
	}

	f.emit(EventSuccess, message)
}

func (f *Form) failed(err error) {
	message := errorMessage(err)
	f.cfg.Notifier.Notify(LevelError, message)
	f.emit(EventError, ErrorPayload{Err: err, Message: message})
}

// responseMessage pulls the optional message field out of a success body.
func responseMessage(payload []byte) string {
	var fields struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(payload, &fields); err != nil {
		return ""
	}
	return fields.Message
}
