package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// FormValues scrapes every named input, select and textarea inside the
// region into a name -> value map. The walk always reads the live tree, so a
// region mutated after binding still reports current state. Unchecked
// checkboxes and radios are skipped; selects report the selected option or,
// failing that, the first one.
func (r *Region) FormValues() map[string]string {
	values := make(map[string]string)
	walkControls(r.node, func(n *html.Node) {
		name := attrValue(n, "name")
		if name == "" {
			return
		}
		switch n.Data {
		case "input":
			typ := strings.ToLower(attrValue(n, "type"))
			if typ == "checkbox" || typ == "radio" {
				if !hasAttr(n, "checked") {
					return
				}
				if v := attrValue(n, "value"); v != "" {
					values[name] = v
				} else {
					values[name] = "on"
				}
				return
			}
			values[name] = attrValue(n, "value")
		case "select":
			values[name] = selectedOptionValue(n)
		case "textarea":
			var sb strings.Builder
			collectText(n, &sb)
			values[name] = sb.String()
		}
	})
	return values
}

// SetInputValue writes a value into the named control inside the region.
// Returns false when no control with that name exists.
func (r *Region) SetInputValue(name, value string) bool {
	var target *html.Node
	walkControls(r.node, func(n *html.Node) {
		if target == nil && attrValue(n, "name") == name {
			target = n
		}
	})
	if target == nil {
		return false
	}

	switch target.Data {
	case "input":
		(&Region{node: target}).SetAttr("value", value)
	case "textarea":
		(&Region{node: target}).SetText(value)
	case "select":
		for opt := target.FirstChild; opt != nil; opt = opt.NextSibling {
			if opt.Type != html.ElementNode || opt.Data != "option" {
				continue
			}
			region := &Region{node: opt}
			if optionValue(opt) == value {
				region.SetAttr("selected", "")
			} else {
				region.RemoveAttr("selected")
			}
		}
	}
	return true
}

// ClearTextControls blanks every text-like input and textarea inside the
// region. Selects, checkboxes and radios keep their state.
func (r *Region) ClearTextControls() {
	walkControls(r.node, func(n *html.Node) {
		switch n.Data {
		case "input":
			typ := strings.ToLower(attrValue(n, "type"))
			if typ == "checkbox" || typ == "radio" || typ == "hidden" {
				return
			}
			(&Region{node: n}).SetAttr("value", "")
		case "textarea":
			(&Region{node: n}).Clear()
		}
	})
}

// RequiredControls lists the names of controls carrying the required
// attribute, in document order.
func (r *Region) RequiredControls() []string {
	var names []string
	walkControls(r.node, func(n *html.Node) {
		if hasAttr(n, "required") {
			if name := attrValue(n, "name"); name != "" {
				names = append(names, name)
			}
		}
	})
	return names
}

func walkControls(n *html.Node, visit func(*html.Node)) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "input", "select", "textarea":
			visit(n)
		}
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		walkControls(child, visit)
	}
}

func selectedOptionValue(sel *html.Node) string {
	var first *html.Node
	for opt := sel.FirstChild; opt != nil; opt = opt.NextSibling {
		if opt.Type != html.ElementNode || opt.Data != "option" {
			continue
		}
		if first == nil {
			first = opt
		}
		if hasAttr(opt, "selected") {
			return optionValue(opt)
		}
	}
	if first == nil {
		return ""
	}
	return optionValue(first)
}

func optionValue(opt *html.Node) string {
	if v := attrValue(opt, "value"); v != "" || hasAttr(opt, "value") {
		return v
	}
	var sb strings.Builder
	collectText(opt, &sb)
	return strings.TrimSpace(sb.String())
}
