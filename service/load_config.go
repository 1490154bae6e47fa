package service

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/doyosi/widgeta/model"
	"github.com/doyosi/widgeta/utils"
)

// loadSourceConfig reads <ConfigDir>/<source>.json, cached by file mtime so
// edited configs are picked up without a restart. Returns nil after
// answering the request when the config cannot be served.
func (s *Service) loadSourceConfig(ctx *gin.Context, source string) *model.SourceConfig {
	if !sourceNameRe.MatchString(source) {
		s.SomethingWentWrong(ctx, "Invalid source name: "+source)
		return nil
	}

	configPath := s.Config.ConfigDir + "/" + source + ".json"

	stat, err := os.Stat(configPath)
	if err != nil {
		s.SomethingWentWrong(ctx, fmt.Sprintf("Cannot stat config file for source %s: %v", source, err))
		return nil
	}

	s.cacheMu.Lock()
	cached, found := s.sourceCache[source]
	s.cacheMu.Unlock()
	if found && cached.ModTime.Equal(stat.ModTime()) {
		return s.resolvedCopy(ctx, cached.Config)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		s.SomethingWentWrong(ctx, fmt.Sprintf("No configuration found for source: %s, err: %v", source, err))
		return nil
	}

	var cfg model.SourceConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		s.SomethingWentWrong(ctx, fmt.Sprintf("Failed to parse config JSON of source: %s, err: %v", source, err))
		return nil
	}

	cfg.Source = source
	s.loadSourceConfigDefaults(&cfg)

	s.cacheMu.Lock()
	s.sourceCache[source] = model.CachedSourceConfig{
		Config:  &cfg,
		ModTime: stat.ModTime(),
	}
	s.cacheMu.Unlock()

	return s.resolvedCopy(ctx, &cfg)
}

var sourceNameRe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

func (s *Service) loadSourceConfigDefaults(cfg *model.SourceConfig) {
	if cfg.DbTable == "" {
		cfg.DbTable = utils.CamelToSnake(cfg.Source)
	}
	if cfg.PerPage == 0 {
		cfg.PerPage = s.Config.PerPage
	}
	if cfg.DataKey == "" {
		cfg.DataKey = model.DefaultDataKey
	}
	if cfg.MetaKey == "" {
		cfg.MetaKey = model.DefaultMetaKey
	}
}

// resolvedCopy returns a per-request copy with {{variables}} in sqlWhere
// resolved; the cached config stays untouched.
func (s *Service) resolvedCopy(ctx *gin.Context, cfg *model.SourceConfig) *model.SourceConfig {
	if s.Config.VariableResolver == nil && strings.Contains(cfg.SqlWhereOriginal, "{{") {
		s.SomethingWentWrong(ctx, "Trying to use variables without Config.VariableResolver source="+cfg.Source)
		return nil
	}

	resolved := *cfg
	resolved.SqlWhere = s.resolveVariables(ctx, cfg.Source, cfg.SqlWhereOriginal)
	return &resolved
}

var variableRe = regexp.MustCompile(`{{(.*?)}}`)

func (s *Service) resolveVariables(ctx *gin.Context, source, str string) string {
	if !strings.Contains(str, "{{") {
		return str
	}

	for _, match := range variableRe.FindAllStringSubmatch(str, -1) {
		if len(match) < 2 {
			continue
		}
		variable := match[1]

		value := ""
		if s.Config.VariableResolver != nil {
			value = s.Config.VariableResolver(ctx, source, variable)
		}

		if value != "" {
			str = strings.ReplaceAll(str, "{{"+variable+"}}", value)
		} else {
			logf("can`t resolve variable='%s' for source=%s", variable, source)
		}
	}
	return str
}
