package service

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/doyosi/widgeta/utils"
	"github.com/doyosi/widgeta/utils/sqlutils"
)

// Create inserts one record built from the addable field whitelist.
func (s *Service) Create(ctx *gin.Context) {
	var payload map[string]any
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	source, ok := payload["source"].(string)
	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Source is required"})
		return
	}

	if !s.Config.AccessCheckFunc(ctx, source, "create", "") {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	cfg := s.loadSourceConfig(ctx, source)
	if cfg == nil {
		return
	}

	insertData := make(map[string]any)
	for _, field := range cfg.AddableFields {
		if !s.Config.AccessCheckFunc(ctx, source, "create", field) {
			continue
		}
		if value, exists := payload[field]; exists {
			insertData[utils.CamelToSnake(field)] = value
		}
	}

	// check RequiredFields
	for _, requiredField := range cfg.RequiredFields {
		if value, exists := payload[requiredField]; !exists || value == "" {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Field '%s' is required", requiredField)})
			return
		}
	}

	// check NoZeroValueFields
	for _, noZeroField := range cfg.NoZeroValueFields {
		if value, exists := payload[noZeroField]; exists {
			if number, ok := value.(float64); ok && number == 0 {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Field '%s' cannot be zero", noZeroField)})
				return
			}
		}
	}

	if len(insertData) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No data to insert"})
		return
	}

	if err := s.DB.Table(cfg.DbTable).Create(insertData).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to insert data"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Record created"})
}

// Update writes the editable field whitelist of one record and fires the
// AfterUpdate hook once per changed field.
func (s *Service) Update(ctx *gin.Context) {
	var payload map[string]any
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	source, ok := payload["source"].(string)
	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Source is required"})
		return
	}

	if !s.Config.AccessCheckFunc(ctx, source, "update", "") {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	cfg := s.loadSourceConfig(ctx, source)
	if cfg == nil {
		return
	}

	id, ok := extractID(payload["id"])
	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "ID is required"})
		return
	}

	updateData := make(map[string]any)
	var touched []string
	for _, field := range cfg.EditableFields {
		fieldSnaked := utils.CamelToSnake(field)
		if value, exists := payload[fieldSnaked]; exists {
			updateData[fieldSnaked] = value
			touched = append(touched, fieldSnaked)
		} else if value, exists := payload[field]; exists {
			updateData[fieldSnaked] = value
			touched = append(touched, fieldSnaked)
		}
	}

	if len(updateData) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}

	pkField, err := sqlutils.GetPrimaryKeyFieldName(s.DB, cfg.DbTable)
	if err != nil {
		s.SomethingWentWrong(ctx, fmt.Sprintf("can't determine primary key for table %s: %v", cfg.DbTable, err))
		return
	}

	originalData := make(map[string]any)
	if err := s.DB.Table(cfg.DbTable).Where(fmt.Sprintf("%s = ?", pkField), id).Select(touched).Take(&originalData).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve original data"})
		return
	}

	if err := s.DB.Table(cfg.DbTable).Where(fmt.Sprintf("%s = ?", pkField), id).Updates(updateData).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update record"})
		return
	}

	if s.Config.AfterUpdate != nil {
		for field, newValue := range updateData {
			originalValue, exists := originalData[field]
			if exists && fmt.Sprint(originalValue) != fmt.Sprint(newValue) {
				go s.Config.AfterUpdate(ctx, s.DB, cfg.DbTable, id, field, fmt.Sprint(originalValue), fmt.Sprint(newValue))
			}
		}
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Record updated"})
}

// Delete removes one record, DELETE /widgeta/:source/:id. This is the
// endpoint the delete-confirmation widget talks to.
func (s *Service) Delete(ctx *gin.Context) {
	source := ctx.Param("source")

	if !s.Config.AccessCheckFunc(ctx, source, "delete", "") {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	cfg := s.loadSourceConfig(ctx, source)
	if cfg == nil {
		return
	}

	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid record id"})
		return
	}

	pkField, err := sqlutils.GetPrimaryKeyFieldName(s.DB, cfg.DbTable)
	if err != nil {
		s.SomethingWentWrong(ctx, fmt.Sprintf("can't determine primary key for table %s: %v", cfg.DbTable, err))
		return
	}

	result := s.DB.Exec(fmt.Sprintf("DELETE FROM %s WHERE %s = ?", cfg.DbTable, pkField), id)
	if result.Error != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete record"})
		return
	}
	if result.RowsAffected == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Record deleted"})
}

// extractID accepts the JSON number and string forms of a record id.
func extractID(raw any) (int64, bool) {
	switch v := raw.(type) {
	case float64:
		return int64(v), true
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, false
		}
		return id, true
	default:
		return 0, false
	}
}
