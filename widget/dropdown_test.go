package widget

import (
	"context"
	"strings"
	"testing"

	"github.com/doyosi/widgeta/dom"
	"github.com/doyosi/widgeta/transport"
)

const dropdownPage = `
<select id="author" name="author">
  <option value="">Pick an author</option>
  <option value="stale">Stale</option>
</select>`

func TestDropdownLoadRebuildsOptions(t *testing.T) {
	tr := &recordingTransport{respond: func(method, url string, body []byte) ([]byte, error) {
		return []byte(`{"data":[{"id":1,"name":"Donovan"},{"id":2,"name":"Bodner & Co"}]}`), nil
	}}
	doc, _ := dom.Parse(dropdownPage)
	dd, err := NewDropdown(doc, DropdownConfig{
		URL: "/widgeta/authors", Select: Sel("#author"), Transport: tr,
	})
	if err != nil {
		t.Fatalf("NewDropdown failed: %v", err)
	}

	var loaded int
	dd.On(EventLoaded, func(any) { loaded++ })

	if err := dd.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	markup := doc.Find("#author").InnerHTML()
	if !strings.Contains(markup, `<option value="">Pick an author</option>`) {
		t.Errorf("placeholder should survive reload: %s", markup)
	}
	if !strings.Contains(markup, `<option value="1">Donovan</option>`) {
		t.Errorf("missing loaded option: %s", markup)
	}
	if !strings.Contains(markup, "Bodner &amp; Co") {
		t.Errorf("labels should be escaped: %s", markup)
	}
	if strings.Contains(markup, "Stale") {
		t.Errorf("old options should be replaced: %s", markup)
	}
	if loaded != 1 {
		t.Errorf("loaded events = %d", loaded)
	}
}

func TestDropdownLoadFailureKeepsOptions(t *testing.T) {
	tr := &recordingTransport{respond: func(string, string, []byte) ([]byte, error) {
		return nil, &transport.Error{Status: 500, Message: "boom"}
	}}
	doc, _ := dom.Parse(dropdownPage)
	notifier := &memoryNotifier{}
	dd, _ := NewDropdown(doc, DropdownConfig{
		URL: "/widgeta/authors", Select: Sel("#author"), Transport: tr, Notifier: notifier,
	})

	if err := dd.Load(context.Background()); err == nil {
		t.Fatal("Load should surface the transport error")
	}

	if !strings.Contains(doc.Find("#author").InnerHTML(), "Stale") {
		t.Error("options must stay untouched on failure")
	}
	if len(notifier.notices) != 1 || notifier.notices[0].Level != LevelError {
		t.Errorf("notices = %+v", notifier.notices)
	}
}

func TestDropdownCustomFields(t *testing.T) {
	tr := &recordingTransport{respond: func(string, string, []byte) ([]byte, error) {
		return []byte(`{"data":[{"code":"de","title":"German"}]}`), nil
	}}
	doc, _ := dom.Parse(`<select id="lang" name="lang"></select>`)
	dd, _ := NewDropdown(doc, DropdownConfig{
		URL: "/widgeta/languages", Select: Sel("#lang"),
		ValueField: "code", LabelField: "title",
		Transport: tr,
	})

	if err := dd.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := doc.Find("#lang").InnerHTML(); got != `<option value="de">German</option>` {
		t.Errorf("options = %s", got)
	}
}
