package model

import (
	"encoding/json"
	"fmt"
)

const (
	DefaultDataKey = "data"
	DefaultMetaKey = "meta"
)

// Record is one item of a fetched result set. Field values are whatever the
// server sent; an optional pre-rendered HTML field short-circuits templating.
type Record map[string]any

// PageLink is one pagination control descriptor, Laravel paginator style.
type PageLink struct {
	Label  string  `json:"label"`
	URL    *string `json:"url"`
	Active bool    `json:"active"`
}

// PageMeta carries the pagination metadata of an envelope.
type PageMeta struct {
	CurrentPage int        `json:"current_page"`
	LastPage    int        `json:"last_page"`
	PerPage     int        `json:"per_page"`
	From        int64      `json:"from"`
	To          int64      `json:"to"`
	Total       int64      `json:"total"`
	Links       []PageLink `json:"links"`
}

// Envelope is the decoded response of a list endpoint: the record sequence,
// the pagination metadata and an optional whole-batch pre-rendered HTML
// override.
type Envelope struct {
	Records []Record
	Meta    *PageMeta
	HTML    string
	Message string
}

// DecodeEnvelope reads an envelope with configurable record/meta field names.
// Missing fields degrade to empty defaults; only malformed JSON is an error.
func DecodeEnvelope(raw []byte, dataKey, metaKey string) (*Envelope, error) {
	if dataKey == "" {
		dataKey = DefaultDataKey
	}
	if metaKey == "" {
		metaKey = DefaultMetaKey
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("malformed envelope: %w", err)
	}

	env := &Envelope{}

	if rawData, ok := fields[dataKey]; ok {
		if err := json.Unmarshal(rawData, &env.Records); err != nil {
			return nil, fmt.Errorf("malformed envelope field %q: %w", dataKey, err)
		}
	}

	if rawMeta, ok := fields[metaKey]; ok {
		var meta PageMeta
		if err := json.Unmarshal(rawMeta, &meta); err != nil {
			return nil, fmt.Errorf("malformed envelope field %q: %w", metaKey, err)
		}
		env.Meta = &meta
	}

	if rawHTML, ok := fields["html"]; ok {
		// tolerate non-string values silently, per the degrade-to-default rule
		_ = json.Unmarshal(rawHTML, &env.HTML)
	}

	if rawMsg, ok := fields["message"]; ok {
		_ = json.Unmarshal(rawMsg, &env.Message)
	}

	return env, nil
}

// Lookup resolves a dotted path like "name" or "user.name" against the
// record. Missing fields and unresolved intermediate segments yield ("", false).
func (r Record) Lookup(path string) (string, bool) {
	var current any = map[string]any(r)
	start := 0
	for i := 0; i <= len(path); i++ {
		if i != len(path) && path[i] != '.' {
			continue
		}
		segment := path[start:i]
		start = i + 1

		node, ok := current.(map[string]any)
		if !ok {
			return "", false
		}
		current, ok = node[segment]
		if !ok || current == nil {
			return "", false
		}
	}
	return Scalar(current), true
}

// Scalar formats a decoded JSON value for display. Whole numbers decoded as
// float64 keep their integer form.
func Scalar(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%v", t)
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", t)
	}
}
