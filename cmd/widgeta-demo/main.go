// Command widgeta-demo serves a self-contained demo: an in-memory SQLite
// database, the widgeta endpoints and a page whose grid is rendered
// server-side through the same engine the widgets use.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/doyosi/widgeta"
	"github.com/doyosi/widgeta/dom"
	"github.com/doyosi/widgeta/model"
	"github.com/doyosi/widgeta/transport"
	"github.com/doyosi/widgeta/widget"
)

const demoPage = `<!DOCTYPE html>
<html>
<head><title>widgeta demo</title></head>
<body>
  <div id="toasts" hidden></div>
  <div id="filters">
    <input type="text" name="title" value="">
  </div>
  <div id="loading" hidden>Loading...</div>
  <div id="grid"></div>
  <div id="empty" hidden>Nothing found.</div>
  <div id="error" hidden><span class="error-message"></span></div>
  <nav id="pager" hidden></nav>
  <template id="book-row"><div class="book">data.title by data.author</div></template>
</body>
</html>`

const booksConfig = `{
  "dbTable": "books",
  "fields": ["id", "title", "author"],
  "orderBy": "id ASC",
  "perPage": 5,
  "filterable": {"title": "like", "author": "exact"}
}`

func main() {
	root := &cobra.Command{
		Use:   "widgeta-demo",
		Short: "Serve the widgeta demo application",
		RunE:  run,
	}
	root.Flags().String("addr", "", "listen address (overrides WIDGETA_ADDR)")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	// optional .env, same lookup the other services use
	_ = godotenv.Load()

	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = os.Getenv("WIDGETA_ADDR")
	}
	if addr == "" {
		addr = ":8080"
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if err := seed(db); err != nil {
		return fmt.Errorf("seed database: %w", err)
	}

	configDir, err := writeConfigs()
	if err != nil {
		return fmt.Errorf("write source configs: %w", err)
	}

	engine := gin.Default()
	widgeta.New(engine, db, &model.Config{
		ConfigDir: configDir,
		Locales:   []string{"en", "de", "tr"},
	})

	engine.GET("/", func(ctx *gin.Context) {
		page, err := renderDemoPage(engine, ctx.Request.URL.Query().Get("page"))
		if err != nil {
			ctx.String(http.StatusInternalServerError, "render failed: %v", err)
			return
		}
		ctx.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
	})

	log.Printf("widgeta: demo listening on %s", addr)
	return engine.Run(addr)
}

func seed(db *gorm.DB) error {
	if err := db.Exec(`CREATE TABLE books (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		author TEXT NOT NULL
	)`).Error; err != nil {
		return err
	}

	books := []map[string]any{
		{"title": "The Go Programming Language", "author": "Donovan"},
		{"title": "Learning Go", "author": "Bodner"},
		{"title": "Go in Action", "author": "Kennedy"},
		{"title": "Concurrency in Go", "author": "Cox-Buday"},
		{"title": "Go Web Programming", "author": "Chang"},
		{"title": "Black Hat Go", "author": "Steele"},
		{"title": "Writing an Interpreter in Go", "author": "Ball"},
		{"title": "Writing a Compiler in Go", "author": "Ball"},
	}
	for _, book := range books {
		if err := db.Table("books").Create(book).Error; err != nil {
			return err
		}
	}
	return nil
}

func writeConfigs() (string, error) {
	dir, err := os.MkdirTemp("", "widgeta-demo")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(dir, "books.json"), []byte(booksConfig), 0o644); err != nil {
		return "", err
	}
	return dir, nil
}

// renderDemoPage runs the grid widget server-side against the same engine
// and returns the mutated page.
func renderDemoPage(engine *gin.Engine, pageParam string) (string, error) {
	doc, err := dom.Parse(demoPage)
	if err != nil {
		return "", err
	}

	grid, err := widget.NewGrid(doc, widget.GridConfig{
		URL:          "/widgeta/books",
		Container:    widget.Sel("#grid"),
		TemplateID:   "#book-row",
		Pagination:   widget.Sel("#pager"),
		Filter:       widget.Sel("#filters"),
		Loading:      widget.Sel("#loading"),
		NothingFound: widget.Sel("#empty"),
		ErrorBlock:   widget.Sel("#error"),
		Transport:    transport.NewEngineTransport(engine),
	})
	if err != nil {
		return "", err
	}

	page := 1
	if pageParam != "" {
		fmt.Sscanf(pageParam, "%d", &page)
	}
	grid.Fetch(context.Background(), page)

	return "<!DOCTYPE html>\n" + doc.Render(), nil
}
