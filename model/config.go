package model

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Config is the module-wide configuration passed to widgeta.New.
// Zero values are replaced with defaults at construction.
type Config struct {
	// ConfigDir holds one JSON file per data source, <ConfigDir>/<source>.json.
	ConfigDir string

	// PerPage is the fallback page size for sources that do not set their own.
	PerPage int

	// AccessCheckFunc gates every handler. action is one of
	// "read", "create", "update", "delete". fieldName is empty for
	// source-level checks.
	AccessCheckFunc func(ctx *gin.Context, source, action, fieldName string) bool

	// VariableResolver resolves {{variable}} placeholders inside sqlWhere.
	VariableResolver func(ctx *gin.Context, source, variable string) string

	// AfterUpdate is called once per changed field after a successful update.
	AfterUpdate func(ctx *gin.Context, db *gorm.DB, table string, recordID int64, field, oldValue, newValue string)

	// Locales accepted by the locale switch endpoint.
	Locales []string

	// LocaleCookieName defaults to "locale".
	LocaleCookieName string

	DebugSQL bool
}

// SourceConfig describes one queryable data source, loaded from
// <ConfigDir>/<source>.json.
type SourceConfig struct {
	Source            string
	DbTable           string            `json:"dbTable"`
	SqlWhereOriginal  string            `json:"sqlWhere"`
	Fields            []string          `json:"fields"`
	OrderBy           string            `json:"orderBy"`
	PerPage           int               `json:"perPage"`
	Filterable        map[string]string `json:"filterable"` // field -> "exact" | "like"
	RowTemplate       string            `json:"rowTemplate"`
	DataKey           string            `json:"dataKey"`
	MetaKey           string            `json:"metaKey"`
	AddableFields     []string          `json:"addableFields"`
	RequiredFields    []string          `json:"requiredFields"`
	EditableFields    []string          `json:"editableFields"`
	NoZeroValueFields []string          `json:"noZeroValueFields"`

	// SqlWhere is SqlWhereOriginal with {{variables}} resolved per request.
	SqlWhere string
}

type CachedSourceConfig struct {
	Config  *SourceConfig
	ModTime time.Time
}
