package widget

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"unicode"

	"github.com/doyosi/widgeta/dom"
)

// Code input errors.
var (
	ErrSlotOutOfRange = errors.New("widgeta: code slot out of range")
	ErrNotADigit      = errors.New("widgeta: code slot accepts digits only")
)

// CodeInputConfig configures a fixed-length one-rune-per-slot code input,
// the kind used for confirmation codes.
type CodeInputConfig struct {
	// Length defaults to 6 slots.
	Length int

	// DigitsOnly rejects non-digit runes.
	DigitsOnly bool

	// Region optionally renders the slot boxes; the widget works headless
	// without it.
	Region Target
}

// CodeInput assembles a code from individual slots. The complete event
// fires once per completion, with the assembled code as payload.
type CodeInput struct {
	emitter

	cfg      CodeInputConfig
	region   *dom.Region
	slots    []rune
	complete bool
}

func NewCodeInput(doc *dom.Document, cfg CodeInputConfig) *CodeInput {
	if cfg.Length <= 0 {
		cfg.Length = 6
	}
	c := &CodeInput{
		cfg:    cfg,
		region: cfg.Region.resolve(doc),
		slots:  make([]rune, cfg.Length),
	}
	c.render()
	return c
}

// Length reports the number of slots.
func (c *CodeInput) Length() int { return c.cfg.Length }

// SetSlot writes one rune into slot i.
func (c *CodeInput) SetSlot(i int, r rune) error {
	if i < 0 || i >= len(c.slots) {
		return fmt.Errorf("%w: %d", ErrSlotOutOfRange, i)
	}
	if c.cfg.DigitsOnly && !unicode.IsDigit(r) {
		return ErrNotADigit
	}
	c.slots[i] = r
	c.render()
	c.checkComplete()
	return nil
}

// Fill distributes a pasted string across the slots from the first one,
// skipping runes the configuration rejects. This mirrors pasting a whole
// code into the first box.
func (c *CodeInput) Fill(s string) {
	i := 0
	for _, r := range s {
		if i >= len(c.slots) {
			break
		}
		if c.cfg.DigitsOnly && !unicode.IsDigit(r) {
			continue
		}
		if unicode.IsSpace(r) {
			continue
		}
		c.slots[i] = r
		i++
	}
	c.render()
	c.checkComplete()
}

// Clear empties every slot.
func (c *CodeInput) Clear() {
	c.slots = make([]rune, c.cfg.Length)
	c.complete = false
	c.render()
}

// Value returns the runes assembled so far.
func (c *CodeInput) Value() string {
	var sb strings.Builder
	for _, r := range c.slots {
		if r != 0 {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// Complete reports whether every slot holds a value.
func (c *CodeInput) Complete() bool {
	for _, r := range c.slots {
		if r == 0 {
			return false
		}
	}
	return true
}

func (c *CodeInput) checkComplete() {
	if !c.Complete() {
		c.complete = false
		return
	}
	if c.complete {
		return
	}
	c.complete = true
	c.emit(EventComplete, c.Value())
}

func (c *CodeInput) render() {
	if c.region == nil {
		return
	}
	var sb strings.Builder
	for i, r := range c.slots {
		value := ""
		if r != 0 {
			value = string(r)
		}
		fmt.Fprintf(&sb,
			`<input type="text" class="code-slot" name="code_%d" maxlength="1" value="%s">`,
			i, value)
	}
	if err := c.region.SetHTML(sb.String()); err != nil {
		log.Printf("widgeta: failed to render code input: %v", err)
	}
}
