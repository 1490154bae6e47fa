package widget

import (
	"testing"

	"github.com/doyosi/widgeta/dom"
)

func TestStateSwitcherMutualExclusion(t *testing.T) {
	doc, _ := dom.Parse(`
		<div id="loading">Loading...</div>
		<div id="content"></div>
		<div id="empty"></div>
		<div id="error"><span class="error-message"></span></div>`)

	s := stateSwitcher{
		loading:    doc.Find("#loading"),
		content:    doc.Find("#content"),
		empty:      doc.Find("#empty"),
		errBlock:   doc.Find("#error"),
		errMessage: doc.Find("#error").Find(".error-message"),
	}

	visible := func() []string {
		var out []string
		for _, id := range []string{"#loading", "#content", "#empty", "#error"} {
			if doc.Find(id).Visible() {
				out = append(out, id)
			}
		}
		return out
	}

	for _, state := range []ViewState{StateLoading, StateContent, StateEmpty, StateError, StateContent} {
		s.set(state, "boom")
		if got := visible(); len(got) != 1 {
			t.Fatalf("state %q: visible regions = %v, want exactly one", state, got)
		}
		if s.current() != state {
			t.Errorf("current = %q, want %q", s.current(), state)
		}
	}

	s.set(StateError, "boom")
	if got := doc.Find("#error").Find(".error-message").Text(); got != "boom" {
		t.Errorf("error message = %q", got)
	}
}

func TestStateSwitcherAbsentRegions(t *testing.T) {
	var s stateSwitcher
	// every region nil, must not panic
	s.set(StateLoading, "")
	s.set(StateError, "oops")
	if s.current() != StateError {
		t.Errorf("current = %q", s.current())
	}
}
