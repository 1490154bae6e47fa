package widget

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/http"
	"strings"

	"github.com/doyosi/widgeta/dom"
	"github.com/doyosi/widgeta/model"
	"github.com/doyosi/widgeta/transport"
)

// ErrSelectNotFound is returned when the configured select element is missing.
var ErrSelectNotFound = errors.New("widgeta: select element not found")

// DropdownConfig configures a remote-loading dropdown.
type DropdownConfig struct {
	URL    string
	Select Target

	// ValueField / LabelField name the record fields used per option,
	// defaulting to "id" / "name".
	ValueField string
	LabelField string

	DataKey string
	MetaKey string

	Transport transport.Transport
	Notifier  Notifier
}

// Dropdown fills an existing select element from a list endpoint. An
// existing option with an empty value is treated as the placeholder and
// survives every reload.
type Dropdown struct {
	emitter

	cfg         DropdownConfig
	region      *dom.Region
	placeholder string
}

func NewDropdown(doc *dom.Document, cfg DropdownConfig) (*Dropdown, error) {
	if cfg.Transport == nil {
		return nil, ErrNoTransport
	}
	if cfg.URL == "" {
		return nil, ErrNoURL
	}
	region := cfg.Select.resolve(doc)
	if region == nil {
		return nil, fmt.Errorf("%w: %q", ErrSelectNotFound, cfg.Select.Selector)
	}
	if cfg.ValueField == "" {
		cfg.ValueField = "id"
	}
	if cfg.LabelField == "" {
		cfg.LabelField = "name"
	}
	if cfg.Notifier == nil {
		cfg.Notifier = NopNotifier{}
	}

	d := &Dropdown{cfg: cfg, region: region}
	if opt := region.Find("option"); opt != nil {
		if v, _ := opt.Attr("value"); v == "" {
			d.placeholder = strings.TrimSpace(opt.Text())
		}
	}
	return d, nil
}

// Load fetches the option records and rebuilds the select content. On
// failure the existing options stay untouched.
func (d *Dropdown) Load(ctx context.Context) error {
	payload, err := d.cfg.Transport.Do(ctx, http.MethodGet, d.cfg.URL, nil)
	if err != nil {
		d.cfg.Notifier.Notify(LevelError, errorMessage(err))
		return err
	}

	env, err := model.DecodeEnvelope(payload, d.cfg.DataKey, d.cfg.MetaKey)
	if err != nil {
		d.cfg.Notifier.Notify(LevelError, errorMessage(err))
		return err
	}

	var sb strings.Builder
	if d.placeholder != "" {
		fmt.Fprintf(&sb, `<option value="">%s</option>`, html.EscapeString(d.placeholder))
	}
	for _, record := range env.Records {
		value, _ := record.Lookup(d.cfg.ValueField)
		label, ok := record.Lookup(d.cfg.LabelField)
		if !ok {
			label = value
		}
		fmt.Fprintf(&sb, `<option value="%s">%s</option>`,
			html.EscapeString(value), html.EscapeString(label))
	}

	if err := d.region.SetHTML(sb.String()); err != nil {
		return err
	}

	d.emit(EventLoaded, env.Records)
	return nil
}

// Value reports the currently selected option value.
func (d *Dropdown) Value() string {
	name, _ := d.region.Attr("name")
	if name == "" {
		return ""
	}
	return d.region.FormValues()[name]
}
