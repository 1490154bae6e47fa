// Package dom is a headless stand-in for the browser document. Widgets bind
// to regions of parsed markup, mutate them, and the result serializes back to
// HTML, which keeps all rendering logic testable without a live page.
package dom

import (
	"strings"

	"golang.org/x/net/html"
)

type Document struct {
	root *html.Node
}

// Parse builds a Document from server-rendered markup.
func Parse(src string) (*Document, error) {
	root, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return nil, err
	}
	return &Document{root: root}, nil
}

// Find returns the first element matching selector, depth first, or nil.
// Supported selector forms: "#id", ".class", "tag" and "tag.class".
func (d *Document) Find(selector string) *Region {
	node := findNode(d.root, parseSelector(selector))
	if node == nil {
		return nil
	}
	return &Region{node: node}
}

// Render serializes the whole page.
func (d *Document) Render() string {
	var sb strings.Builder
	html.Render(&sb, d.root)
	return sb.String()
}

// HTML serializes the page body content.
func (d *Document) HTML() string {
	body := findNode(d.root, selector{tag: "body"})
	if body == nil {
		return ""
	}
	var sb strings.Builder
	for child := body.FirstChild; child != nil; child = child.NextSibling {
		html.Render(&sb, child)
	}
	return sb.String()
}

type selector struct {
	tag   string
	id    string
	class string
}

func parseSelector(s string) selector {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "#"):
		return selector{id: s[1:]}
	case strings.HasPrefix(s, "."):
		return selector{class: s[1:]}
	}
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return selector{tag: s[:i], class: s[i+1:]}
	}
	return selector{tag: s}
}

func (sel selector) matches(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	if sel.tag != "" && n.Data != sel.tag {
		return false
	}
	if sel.id != "" && attrValue(n, "id") != sel.id {
		return false
	}
	if sel.class != "" && !hasClass(n, sel.class) {
		return false
	}
	return sel.tag != "" || sel.id != "" || sel.class != ""
}

func findNode(n *html.Node, sel selector) *html.Node {
	if sel.matches(n) {
		return n
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := findNode(child, sel); found != nil {
			return found
		}
	}
	return nil
}

func attrValue(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, name string) bool {
	for _, a := range n.Attr {
		if a.Key == name {
			return true
		}
	}
	return false
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attrValue(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}
