package widget

import "github.com/doyosi/widgeta/dom"

// ViewState is one of the four mutually exclusive visual modes of a widget.
type ViewState string

const (
	StateLoading ViewState = "loading"
	StateContent ViewState = "content"
	StateEmpty   ViewState = "empty"
	StateError   ViewState = "error"
)

// stateSwitcher is the single authority over the four state regions. No other
// code path toggles their visibility. Absent regions no-op.
type stateSwitcher struct {
	loading      *dom.Region
	content      *dom.Region
	empty        *dom.Region
	errBlock     *dom.Region
	errMessage   *dom.Region
	currentState ViewState
}

func (s *stateSwitcher) set(state ViewState, message string) {
	hide(s.loading)
	hide(s.content)
	hide(s.empty)
	hide(s.errBlock)

	switch state {
	case StateLoading:
		show(s.loading)
	case StateContent:
		show(s.content)
	case StateEmpty:
		show(s.empty)
	case StateError:
		if s.errMessage != nil {
			s.errMessage.SetText(message)
		}
		show(s.errBlock)
	}
	s.currentState = state
}

func (s *stateSwitcher) current() ViewState { return s.currentState }

func hide(r *dom.Region) {
	if r != nil {
		r.Hide()
	}
}

func show(r *dom.Region) {
	if r != nil {
		r.Show()
	}
}
