package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Region is a live handle to one element of a Document. Mutations apply to
// the underlying tree immediately.
type Region struct {
	node *html.Node
}

// Find returns the first descendant matching selector, or nil.
func (r *Region) Find(sel string) *Region {
	parsed := parseSelector(sel)
	for child := r.node.FirstChild; child != nil; child = child.NextSibling {
		if found := findNode(child, parsed); found != nil {
			return &Region{node: found}
		}
	}
	return nil
}

// InnerHTML serializes the region's content.
func (r *Region) InnerHTML() string {
	var sb strings.Builder
	for child := r.node.FirstChild; child != nil; child = child.NextSibling {
		html.Render(&sb, child)
	}
	return sb.String()
}

// SetHTML replaces the region's entire content with the given markup.
func (r *Region) SetHTML(markup string) error {
	fragments, err := html.ParseFragment(strings.NewReader(markup), r.node)
	if err != nil {
		return err
	}
	r.removeChildren()
	for _, f := range fragments {
		r.node.AppendChild(f)
	}
	return nil
}

// SetText replaces the region's content with escaped text.
func (r *Region) SetText(s string) {
	r.removeChildren()
	r.node.AppendChild(&html.Node{Type: html.TextNode, Data: s})
}

// Text returns the concatenated text content of the region.
func (r *Region) Text() string {
	var sb strings.Builder
	collectText(r.node, &sb)
	return sb.String()
}

// Clear drops the region's content.
func (r *Region) Clear() {
	r.removeChildren()
}

// Visibility is modeled with the standard hidden attribute.

func (r *Region) Show()         { r.RemoveAttr("hidden") }
func (r *Region) Hide()         { r.SetAttr("hidden", "") }
func (r *Region) Visible() bool { return !hasAttr(r.node, "hidden") }

func (r *Region) Attr(name string) (string, bool) {
	for _, a := range r.node.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func (r *Region) SetAttr(name, value string) {
	for i, a := range r.node.Attr {
		if a.Key == name {
			r.node.Attr[i].Val = value
			return
		}
	}
	r.node.Attr = append(r.node.Attr, html.Attribute{Key: name, Val: value})
}

func (r *Region) RemoveAttr(name string) {
	for i, a := range r.node.Attr {
		if a.Key == name {
			r.node.Attr = append(r.node.Attr[:i], r.node.Attr[i+1:]...)
			return
		}
	}
}

// Tag returns the element name of the region.
func (r *Region) Tag() string {
	return r.node.Data
}

func (r *Region) removeChildren() {
	for r.node.FirstChild != nil {
		r.node.RemoveChild(r.node.FirstChild)
	}
}

func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		collectText(child, sb)
	}
}
