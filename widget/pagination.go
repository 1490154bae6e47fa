package widget

import (
	"context"
	"fmt"
	"html"
	"log"
	"net/url"
	"strconv"
	"strings"

	"github.com/doyosi/widgeta/model"
	"github.com/doyosi/widgeta/utils"
)

// renderPagination rebuilds the pagination region from the server-supplied
// link descriptors. Called with g.mu held.
func (g *Grid) renderPagination(meta *model.PageMeta) {
	if meta == nil || meta.LastPage <= 1 || len(meta.Links) == 0 {
		g.pageLinks = nil
		if g.pager != nil {
			g.pager.Clear()
			g.pager.Hide()
		}
		return
	}

	g.pageLinks = meta.Links
	if g.pager == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(`<ul class="pagination">`)
	for _, link := range meta.Links {
		label := utils.DecodeLabel(link.Label)

		if label == "..." {
			sb.WriteString(`<li class="page-item disabled"><span class="page-link">...</span></li>`)
			continue
		}

		disabled := link.URL == nil || link.Active
		itemClass := "page-item"
		if link.Active {
			itemClass += " active"
		}
		if disabled {
			itemClass += " disabled"
		}

		page := 0
		if link.URL != nil {
			page = pageFromURL(*link.URL)
		}

		fmt.Fprintf(&sb, `<li class="%s"><button type="button" class="page-link" data-page="%d"`, itemClass, page)
		if disabled {
			sb.WriteString(" disabled")
		}
		fmt.Fprintf(&sb, ">%s</button></li>", html.EscapeString(label))
	}
	sb.WriteString("</ul>")

	if err := g.pager.SetHTML(sb.String()); err != nil {
		log.Printf("widgeta: failed to render pagination: %v", err)
		return
	}
	g.pager.Show()
}

// ClickPage simulates a click on the pagination control with the given
// label (decoded or raw). It emits pageChange with the page number parsed
// from the link target, then fetches that page. Returns false when no
// clickable link carries the label.
func (g *Grid) ClickPage(ctx context.Context, label string) bool {
	g.mu.Lock()
	var target *model.PageLink
	for i := range g.pageLinks {
		link := &g.pageLinks[i]
		if link.Label == label || utils.DecodeLabel(link.Label) == label {
			target = link
			break
		}
	}
	g.mu.Unlock()

	if target == nil || target.URL == nil || target.Active {
		return false
	}

	page := pageFromURL(*target.URL)
	g.emit(EventPageChange, PageChangePayload{Page: page, Label: utils.DecodeLabel(target.Label)})
	g.Fetch(ctx, page)
	return true
}

// pageFromURL extracts the page query parameter of a link target,
// defaulting to 1.
func pageFromURL(raw string) int {
	parsed, err := url.Parse(raw)
	if err != nil {
		return 1
	}
	page, err := strconv.Atoi(parsed.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
