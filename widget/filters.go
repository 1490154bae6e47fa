package widget

import (
	"sync"
	"time"

	"github.com/doyosi/widgeta/dom"
)

// DefaultDebounce is the quiet period for text-like filter inputs.
const DefaultDebounce = 300 * time.Millisecond

// filterTracker projects the filter region's named controls into a key-value
// mapping. The mapping is rebuilt in full on every read from the live region,
// never patched incrementally, so controls added or removed after binding are
// picked up naturally.
type filterTracker struct {
	mu       sync.Mutex
	region   *dom.Region
	debounce time.Duration
	timer    *time.Timer
	trigger  func()
}

func newFilterTracker(region *dom.Region, debounce time.Duration, trigger func()) *filterTracker {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &filterTracker{region: region, debounce: debounce, trigger: trigger}
}

// values rescrapes the filter region, dropping empty entries.
func (f *filterTracker) values() map[string]string {
	if f == nil || f.region == nil {
		return nil
	}
	scraped := f.region.FormValues()
	filtered := make(map[string]string, len(scraped))
	for name, value := range scraped {
		if value == "" {
			continue
		}
		filtered[name] = value
	}
	return filtered
}

// Input records a text-like change: the value is written into the live
// control and the trigger fires after the debounce window. A change within
// the window restarts the timer, so a rapid sequence collapses into a single
// trigger.
func (f *filterTracker) Input(name, value string) {
	if f == nil || f.region == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	f.region.SetInputValue(name, value)
	if f.timer != nil {
		f.timer.Stop()
	}
	f.timer = time.AfterFunc(f.debounce, f.trigger)
}

// Select records a selection change, which triggers immediately.
func (f *filterTracker) Select(name, value string) {
	if f == nil || f.region == nil {
		return
	}
	f.mu.Lock()
	f.region.SetInputValue(name, value)
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
	f.mu.Unlock()

	f.trigger()
}

// Flush fires a pending debounced trigger immediately. Mainly for tests.
func (f *filterTracker) Flush() {
	if f == nil {
		return
	}
	f.mu.Lock()
	pending := f.timer != nil && f.timer.Stop()
	f.timer = nil
	f.mu.Unlock()

	if pending {
		f.trigger()
	}
}
