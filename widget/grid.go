package widget

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/doyosi/widgeta/dom"
	"github.com/doyosi/widgeta/model"
	"github.com/doyosi/widgeta/transport"
)

// Configuration errors, surfaced at construction and fatal to instantiation.
var (
	ErrContainerNotFound = errors.New("widgeta: container element not found")
	ErrNoTransport       = errors.New("widgeta: no transport configured")
	ErrNoURL             = errors.New("widgeta: no url configured")
)

const genericErrorMessage = "Something went wrong, please try again."

// GridConfig is the per-instance configuration of a list/table widget.
// Optional function slots and optional targets no-op when absent.
type GridConfig struct {
	// URL is the base endpoint; the query string is appended per fetch.
	URL string

	// Container is the required render target.
	Container Target

	// TemplateID selects the template region used when neither a per-record
	// HTML field nor OnRow is available.
	TemplateID string

	// Envelope field names, defaulting to "data" / "meta".
	DataKey string
	MetaKey string

	// HTMLField is the per-record pre-rendered markup field, default "html".
	HTMLField string

	// OnRow renders one record to markup, overriding the template.
	OnRow func(record model.Record) string

	// Optional regions.
	Pagination   Target
	Filter       Target
	Loading      Target
	NothingFound Target
	ErrorBlock   Target
	// ErrorMessage is resolved inside ErrorBlock; default selector ".error-message".
	ErrorMessage string

	// AdditionalParams produces extra query parameters, applied after (and
	// overriding) filter values.
	AdditionalParams func() map[string]string

	// DebounceTime is the text-filter coalescing window, default 300ms.
	DebounceTime time.Duration

	Transport transport.Transport
}

// Grid is the fetch-render-paginate engine behind the grid and table
// widgets. One instance owns one container region, one filter mapping and
// the last known pagination metadata.
type Grid struct {
	emitter

	cfg       GridConfig
	container *dom.Region
	template  *dom.Region
	pager     *dom.Region
	filters   *filterTracker
	states    stateSwitcher

	templateWarned bool

	mu        sync.Mutex
	gen       uint64
	lastMeta  *model.PageMeta
	lastPage  int
	pageLinks []model.PageLink
}

// NewGrid resolves all configured targets against doc exactly once and
// returns a ready widget. The container is required; everything else is
// optional.
func NewGrid(doc *dom.Document, cfg GridConfig) (*Grid, error) {
	if cfg.Transport == nil {
		return nil, ErrNoTransport
	}
	if cfg.URL == "" {
		return nil, ErrNoURL
	}

	container := cfg.Container.resolve(doc)
	if container == nil {
		return nil, fmt.Errorf("%w: %q", ErrContainerNotFound, cfg.Container.Selector)
	}

	if cfg.HTMLField == "" {
		cfg.HTMLField = "html"
	}

	g := &Grid{
		cfg:       cfg,
		container: container,
		pager:     cfg.Pagination.resolve(doc),
	}

	if cfg.TemplateID != "" {
		g.template = doc.Find(cfg.TemplateID)
	}

	errBlock := cfg.ErrorBlock.resolve(doc)
	var errMessage *dom.Region
	if errBlock != nil {
		msgSel := cfg.ErrorMessage
		if msgSel == "" {
			msgSel = ".error-message"
		}
		errMessage = errBlock.Find(msgSel)
	}
	g.states = stateSwitcher{
		loading:    cfg.Loading.resolve(doc),
		content:    container,
		empty:      cfg.NothingFound.resolve(doc),
		errBlock:   errBlock,
		errMessage: errMessage,
	}

	g.filters = newFilterTracker(cfg.Filter.resolve(doc), cfg.DebounceTime, func() {
		// filter changes always reset pagination
		g.Fetch(context.Background(), 1)
	})

	return g, nil
}

// Filters reports the current filter mapping, rebuilt from the live filter
// region. Empty values are never present.
func (g *Grid) Filters() map[string]string {
	return g.filters.values()
}

// Input records a text filter change, debounced.
func (g *Grid) Input(name, value string) { g.filters.Input(name, value) }

// Select records a selection filter change, effective immediately.
func (g *Grid) Select(name, value string) { g.filters.Select(name, value) }

// FlushFilters fires a pending debounced filter change without waiting out
// the quiet period.
func (g *Grid) FlushFilters() { g.filters.Flush() }

// State reports the current view-state.
func (g *Grid) State() ViewState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.states.current()
}

// Fetch runs one full cycle for the given page. It never returns an error:
// the outcome is observable through the emitted events and the view-state.
// A fetch started later invalidates the response of any fetch still in
// flight; stale responses are discarded without touching the page.
func (g *Grid) Fetch(ctx context.Context, page int) {
	if page < 1 {
		page = 1
	}
	gen := atomic.AddUint64(&g.gen, 1)

	g.emit(EventStart, page)

	g.mu.Lock()
	g.states.set(StateLoading, "")
	g.mu.Unlock()

	query := BuildQuery(g.filters.values(), page, g.cfg.AdditionalParams)
	url := g.cfg.URL
	if strings.Contains(url, "?") {
		url += "&" + query
	} else {
		url += "?" + query
	}

	payload, err := g.cfg.Transport.Do(ctx, http.MethodGet, url, nil)

	if atomic.LoadUint64(&g.gen) != gen {
		log.Printf("widgeta: discarding stale response for page %d", page)
		return
	}

	if err != nil {
		g.fail(err)
		return
	}

	env, err := model.DecodeEnvelope(payload, g.cfg.DataKey, g.cfg.MetaKey)
	if err != nil {
		g.fail(err)
		return
	}

	g.apply(env, page)
}

// Refresh repeats the last fetched page, or page 1 when nothing has been
// fetched yet.
func (g *Grid) Refresh(ctx context.Context) {
	g.mu.Lock()
	page := g.lastPage
	g.mu.Unlock()
	if page < 1 {
		page = 1
	}
	g.Fetch(ctx, page)
}

// LastMeta returns the pagination metadata of the last successful fetch.
func (g *Grid) LastMeta() *model.PageMeta {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastMeta
}

func (g *Grid) apply(env *model.Envelope, page int) {
	g.mu.Lock()

	g.lastMeta = env.Meta
	g.lastPage = page

	markup, empty := g.renderRecords(env)
	if empty {
		g.container.Clear()
		g.states.set(StateEmpty, "")
	} else {
		if err := g.container.SetHTML(markup); err != nil {
			log.Printf("widgeta: failed to render container content: %v", err)
		}
		g.states.set(StateContent, "")
	}

	g.renderPagination(env.Meta)
	g.mu.Unlock()

	g.emit(EventRendered, RenderedPayload{
		Records: env.Records,
		HTML:    markup,
		Meta:    env.Meta,
		Page:    page,
	})
}

func (g *Grid) fail(err error) {
	message := errorMessage(err)

	g.mu.Lock()
	g.states.set(StateError, message)
	g.mu.Unlock()

	g.emit(EventError, ErrorPayload{Err: err, Message: message})
}

// errorMessage prefers a server-supplied message, then the transport-level
// message, then a generic fallback.
func errorMessage(err error) string {
	var terr *transport.Error
	if errors.As(err, &terr) && terr.Message != "" {
		return terr.Message
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return genericErrorMessage
}
