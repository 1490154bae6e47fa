package widget

import (
	"log"
	"regexp"
	"strings"

	"github.com/doyosi/widgeta/model"
)

var placeholderRe = regexp.MustCompile(`data\.([A-Za-z0-9_]+(?:\.[A-Za-z0-9_]+)*)`)

// Substitute replaces every data.<field> and data.<parent>.<child>
// placeholder in tpl with the record's corresponding scalar value. Missing
// fields and unresolved intermediate segments substitute to the empty string.
func Substitute(tpl string, record model.Record) string {
	return placeholderRe.ReplaceAllStringFunc(tpl, func(match string) string {
		path := strings.TrimPrefix(match, "data.")
		value, _ := record.Lookup(path)
		return value
	})
}

// renderRecords turns an envelope into container markup. Resolution order
// per record: pre-rendered HTML field, then the OnRow function, then the
// named template region. A whole-batch html override on the envelope wins
// over everything. The second return value reports the empty state: zero
// records with no usable pre-rendered HTML.
func (g *Grid) renderRecords(env *model.Envelope) (markup string, empty bool) {
	if whole := strings.TrimSpace(env.HTML); whole != "" {
		return env.HTML, false
	}
	if len(env.Records) == 0 {
		return "", true
	}

	var sb strings.Builder
	for _, record := range env.Records {
		sb.WriteString(g.renderRecord(record))
	}
	return sb.String(), false
}

func (g *Grid) renderRecord(record model.Record) string {
	if raw, ok := record[g.cfg.HTMLField]; ok {
		if markup, isString := raw.(string); isString && markup != "" {
			return markup
		}
	}

	if g.cfg.OnRow != nil {
		return g.cfg.OnRow(record)
	}

	if g.template == nil {
		if !g.templateWarned {
			log.Printf("widgeta: template region %q not found, rendering nothing", g.cfg.TemplateID)
			g.templateWarned = true
		}
		return ""
	}

	return Substitute(g.template.InnerHTML(), record)
}
