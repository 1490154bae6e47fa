package sqlutils

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"gorm.io/gorm"
)

type ColumnSchema struct {
	Name         string
	Type         string
	IsPrimaryKey bool
	IsNullable   bool
}

var (
	schemaCacheMu    sync.Mutex
	tableSchemaCache = make(map[string][]ColumnSchema)
)

func getTableSchema(db *gorm.DB, tableName string) ([]ColumnSchema, error) {
	schemaCacheMu.Lock()
	cached, ok := tableSchemaCache[tableName]
	schemaCacheMu.Unlock()
	if ok {
		return cached, nil
	}

	var schema []ColumnSchema
	dialector := db.Dialector.Name()

	switch dialector {
	case "mysql":
		query := `
			SELECT COLUMN_NAME, DATA_TYPE, COLUMN_KEY, IS_NULLABLE
			FROM INFORMATION_SCHEMA.COLUMNS
			WHERE TABLE_SCHEMA = DATABASE()
			  AND TABLE_NAME = ?
		`
		type mysqlCol struct {
			ColumnName string `gorm:"column:COLUMN_NAME"`
			DataType   string `gorm:"column:DATA_TYPE"`
			ColumnKey  string `gorm:"column:COLUMN_KEY"`
			IsNullable string `gorm:"column:IS_NULLABLE"`
		}
		var results []mysqlCol
		if err := db.Raw(query, tableName).Scan(&results).Error; err != nil {
			return nil, err
		}
		for _, col := range results {
			schema = append(schema, ColumnSchema{
				Name:         col.ColumnName,
				Type:         strings.ToLower(col.DataType),
				IsPrimaryKey: col.ColumnKey == "PRI",
				IsNullable:   col.IsNullable == "YES",
			})
		}

	case "postgres":
		query := `
			SELECT
				a.attname AS column_name,
				format_type(a.atttypid, a.atttypmod) AS data_type,
				(i.indisprimary IS TRUE) AS is_primary_key,
				(a.attnotnull IS FALSE) AS is_nullable
			FROM pg_attribute a
			LEFT JOIN pg_index i ON a.attrelid = i.indrelid AND a.attnum = ANY(i.indkey) AND i.indisprimary
			JOIN pg_class c ON a.attrelid = c.oid
			WHERE c.relname = $1 AND a.attnum > 0 AND NOT a.attisdropped
		`
		type pgCol struct {
			ColumnName   string
			DataType     string
			IsPrimaryKey bool
			IsNullable   bool
		}
		var results []pgCol
		if err := db.Raw(query, tableName).Scan(&results).Error; err != nil {
			return nil, err
		}
		for _, col := range results {
			schema = append(schema, ColumnSchema{
				Name:         col.ColumnName,
				Type:         strings.ToLower(col.DataType),
				IsPrimaryKey: col.IsPrimaryKey,
				IsNullable:   col.IsNullable,
			})
		}

	case "sqlite", "sqlite3":
		type pragmaInfo struct {
			Name         string         `gorm:"column:name"`
			Type         string         `gorm:"column:type"`
			NotNull      int            `gorm:"column:notnull"`
			DefaultValue sql.NullString `gorm:"column:dflt_value"`
			PK           int            `gorm:"column:pk"`
		}
		var results []pragmaInfo
		query := fmt.Sprintf("PRAGMA table_info(`%s`);", tableName)
		if err := db.Raw(query).Scan(&results).Error; err != nil {
			return nil, err
		}
		for _, col := range results {
			schema = append(schema, ColumnSchema{
				Name:         col.Name,
				Type:         strings.ToLower(col.Type),
				IsPrimaryKey: col.PK > 0,
				IsNullable:   col.NotNull == 0,
			})
		}

	default:
		return nil, fmt.Errorf("unsupported database driver: %s", dialector)
	}

	schemaCacheMu.Lock()
	tableSchemaCache[tableName] = schema
	schemaCacheMu.Unlock()
	return schema, nil
}

// GetPrimaryKeyFieldName returns the primary key column of tableName,
// discovered once per table and cached.
func GetPrimaryKeyFieldName(db *gorm.DB, tableName string) (string, error) {
	schema, err := getTableSchema(db, tableName)
	if err != nil {
		return "", err
	}
	for _, col := range schema {
		if col.IsPrimaryKey {
			return col.Name, nil
		}
	}
	return "", fmt.Errorf("primary key not found for table %s", tableName)
}

// GetTableColumns returns the column names of tableName in schema order.
func GetTableColumns(db *gorm.DB, tableName string) ([]string, error) {
	schema, err := getTableSchema(db, tableName)
	if err != nil {
		return nil, err
	}
	columns := make([]string, 0, len(schema))
	for _, col := range schema {
		columns = append(columns, col.Name)
	}
	return columns, nil
}
