package widget

import "github.com/doyosi/widgeta/dom"

// Target designates a page element either by selector string or by an
// already resolved region handle. Targets are resolved exactly once, at
// widget construction; widgets never re-query the document afterwards.
type Target struct {
	Selector string
	Region   *dom.Region
}

// Sel is shorthand for a selector target.
func Sel(selector string) Target {
	return Target{Selector: selector}
}

// Reg is shorthand for an already resolved target.
func Reg(region *dom.Region) Target {
	return Target{Region: region}
}

func (t Target) empty() bool {
	return t.Selector == "" && t.Region == nil
}

// resolve returns the region the target points at, or nil for an empty or
// unmatched target.
func (t Target) resolve(doc *dom.Document) *dom.Region {
	if t.Region != nil {
		return t.Region
	}
	if t.Selector == "" || doc == nil {
		return nil
	}
	return doc.Find(t.Selector)
}
