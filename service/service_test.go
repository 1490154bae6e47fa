package service

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/doyosi/widgeta/model"
)

const booksSourceConfig = `{
  "dbTable": "books",
  "fields": ["id", "title", "author", "pages"],
  "orderBy": "id ASC",
  "perPage": 5,
  "filterable": {"title": "like", "author": "exact"},
  "addableFields": ["title", "author", "pages"],
  "requiredFields": ["title"],
  "noZeroValueFields": ["pages"],
  "editableFields": ["title", "pages"]
}`

var testBooks = []struct {
	title  string
	author string
	pages  int
}{
	{"The Go Programming Language", "Donovan", 380},
	{"Learning Go", "Bodner", 375},
	{"Go in Action", "Kennedy", 300},
	{"Concurrency in Go", "Cox-Buday", 238},
	{"Go Web Programming", "Chang", 312},
	{"Black Hat Go", "Steele", 368},
	{"Writing an Interpreter in Go", "Ball", 200},
	{"Writing a Compiler in Go", "Ball", 300},
	{"Network Programming with Go", "Woodbeck", 392},
	{"Powerful Command-Line Applications in Go", "Gerardi", 500},
	{"Go Brain Teasers", "Miki", 110},
	{"Distributed Services with Go", "Jeffery", 260},
}

// newTestService builds a service over an in-memory database seeded with the
// book fixtures, with the given source configs written to a temp ConfigDir.
func newTestService(t *testing.T, configs map[string]string, mutate func(*model.Config)) (*Service, *gin.Engine) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}

	if err := db.Exec(`CREATE TABLE books (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		author TEXT NOT NULL,
		pages INTEGER NOT NULL DEFAULT 0
	)`).Error; err != nil {
		t.Fatalf("failed to create books table: %v", err)
	}
	for _, b := range testBooks {
		row := map[string]any{"title": b.title, "author": b.author, "pages": b.pages}
		if err := db.Table("books").Create(row).Error; err != nil {
			t.Fatalf("failed to seed books: %v", err)
		}
	}

	dir := t.TempDir()
	for name, content := range configs {
		path := filepath.Join(dir, name+".json")
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write source config %s: %v", name, err)
		}
	}

	cfg := &model.Config{ConfigDir: dir, Locales: []string{"en", "de", "tr"}}
	if mutate != nil {
		mutate(cfg)
	}
	svc := NewService(db, cfg)
	return svc, newRouter(svc)
}

// newRouter mounts the handlers the way the controller does.
func newRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/widgeta/locale", svc.SwitchLocale)
	r.POST("/widgeta/records/create", svc.Create)
	r.POST("/widgeta/records/update", svc.Update)
	r.GET("/widgeta/:source", svc.List)
	r.DELETE("/widgeta/:source/:id", svc.Delete)
	return r
}

func doRequest(t *testing.T, r *gin.Engine, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(method, target, bytes.NewReader(body))
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
