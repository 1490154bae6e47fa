package service

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/doyosi/widgeta/model"
	"github.com/doyosi/widgeta/utils"
)

// pageWindow is how many numbered links appear on each side of the current
// page before an ellipsis takes over.
const pageWindow = 2

// List serves GET /widgeta/:source — one page of records plus pagination
// metadata, in the envelope shape the grid widget consumes.
func (s *Service) List(ctx *gin.Context) {
	source := ctx.Param("source")

	if !s.Config.AccessCheckFunc(ctx, source, "read", "") {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	cfg := s.loadSourceConfig(ctx, source)
	if cfg == nil {
		return
	}

	page, err := strconv.Atoi(ctx.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}

	// fresh chain per statement, gorm chains are not reusable after a finisher
	baseQuery := func() *gorm.DB {
		q := s.DB.Table(cfg.DbTable)
		if cfg.SqlWhere != "" {
			q = q.Where(cfg.SqlWhere)
		}
		return applyFilters(q, cfg, ctx)
	}

	var total int64
	if err := baseQuery().Count(&total).Error; err != nil {
		s.SomethingWentWrong(ctx, fmt.Sprintf("Count failed for source %s: %v", source, err))
		return
	}

	lastPage := int((total + int64(cfg.PerPage) - 1) / int64(cfg.PerPage))
	if lastPage < 1 {
		lastPage = 1
	}
	if page > lastPage {
		page = lastPage
	}
	offset := (page - 1) * cfg.PerPage

	query := baseQuery()
	if len(cfg.Fields) > 0 {
		query = query.Select(cfg.Fields)
	}
	if cfg.OrderBy != "" {
		query = query.Order(cfg.OrderBy)
	}

	var records []map[string]any
	if err := query.Limit(cfg.PerPage).Offset(offset).Find(&records).Error; err != nil {
		s.SomethingWentWrong(ctx, fmt.Sprintf("Select failed for source %s: %v", source, err))
		return
	}

	for i := range records {
		records[i] = normalizeRecord(records[i])
		if cfg.RowTemplate != "" {
			records[i]["html"] = renderRowTemplate(cfg.RowTemplate, records[i])
		}
	}
	if records == nil {
		records = []map[string]any{}
	}

	from, to := int64(0), int64(0)
	if total > 0 {
		from = int64(offset) + 1
		to = int64(offset + len(records))
	}

	meta := model.PageMeta{
		CurrentPage: page,
		LastPage:    lastPage,
		PerPage:     cfg.PerPage,
		From:        from,
		To:          to,
		Total:       total,
		Links:       buildPageLinks(ctx.Request.URL, page, lastPage),
	}

	ctx.JSON(http.StatusOK, gin.H{
		cfg.DataKey: records,
		cfg.MetaKey: meta,
	})
}

// applyFilters narrows the query by the declared filterable fields only;
// unknown query parameters are ignored.
func applyFilters(query *gorm.DB, cfg *model.SourceConfig, ctx *gin.Context) *gorm.DB {
	for field, mode := range cfg.Filterable {
		value, ok := ctx.GetQuery(field)
		if !ok || value == "" {
			continue
		}
		column := utils.CamelToSnake(field)
		if strings.EqualFold(mode, "like") {
			query = query.Where(fmt.Sprintf("%s LIKE ?", column), "%"+value+"%")
		} else {
			query = query.Where(fmt.Sprintf("%s = ?", column), value)
		}
	}
	return query
}

// buildPageLinks produces the Laravel-style link sequence: Previous, a
// window of page numbers with ellipsis gaps, Next. Every link keeps the
// request's other query parameters.
func buildPageLinks(requestURL *url.URL, current, last int) []model.PageLink {
	links := make([]model.PageLink, 0, last+2)

	prev := model.PageLink{Label: "&laquo; Previous"}
	if current > 1 {
		prev.URL = pageURL(requestURL, current-1)
	}
	links = append(links, prev)

	gap := false
	for p := 1; p <= last; p++ {
		if !inWindow(p, current, last) {
			if !gap {
				links = append(links, model.PageLink{Label: "..."})
				gap = true
			}
			continue
		}
		gap = false
		links = append(links, model.PageLink{
			Label:  strconv.Itoa(p),
			URL:    pageURL(requestURL, p),
			Active: p == current,
		})
	}

	next := model.PageLink{Label: "Next &raquo;"}
	if current < last {
		next.URL = pageURL(requestURL, current+1)
	}
	links = append(links, next)

	return links
}

func inWindow(p, current, last int) bool {
	if p == 1 || p == last {
		return true
	}
	if p >= current-pageWindow && p <= current+pageWindow {
		return true
	}
	return false
}

func pageURL(requestURL *url.URL, page int) *string {
	values := requestURL.Query()
	values.Set("page", strconv.Itoa(page))
	u := requestURL.Path + "?" + values.Encode()
	return &u
}

// renderRowTemplate substitutes $field$ placeholders with record values,
// producing the pre-rendered per-record html the renderer uses verbatim.
func renderRowTemplate(tpl string, record map[string]any) string {
	for key, value := range record {
		placeholder := fmt.Sprintf("$%s$", key)
		tpl = strings.ReplaceAll(tpl, placeholder, fmt.Sprintf("%v", value))
	}
	return tpl
}

// normalizeRecord makes driver-specific values JSON friendly.
func normalizeRecord(record map[string]any) map[string]any {
	for key, value := range record {
		if b, ok := value.([]byte); ok {
			record[key] = string(b)
		}
	}
	return record
}
