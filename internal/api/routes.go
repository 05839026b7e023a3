package api

import (
	"errors"
	"fmt"

	"github.com/lukaszkurczab/food-scanner-ai-backend/internal/apiversion"
	"github.com/lukaszkurczab/food-scanner-ai-backend/internal/router"
)

// Route tags.
const (
	TagHealth = "health"
	TagMeta   = "meta"
)

// V1Routes builds the current API surface. Paths, response shapes and status
// codes here are frozen for existing clients.
func V1Routes(h *Handlers) (*router.Table, error) {
	if h == nil || h.Health == nil || h.Version == nil {
		return nil, errors.New("api: handlers are required")
	}

	table := router.NewTable(apiversion.CurrentVersion)
	if err := table.GET("/health", "health", h.Health.Get, TagHealth); err != nil {
		return nil, fmt.Errorf("register health route: %w", err)
	}
	if err := table.GET("/version", "version", h.Version.Get, TagMeta); err != nil {
		return nil, fmt.Errorf("register version route: %w", err)
	}
	return table, nil
}

// V2Routes derives the next API surface from v1. Breaking changes go here via
// Override, Remove or Handle on the derived table; v1 itself is never edited.
func V2Routes(v1 *router.Table) (*router.Table, error) {
	if v1 == nil {
		return nil, errors.New("api: v1 table is required")
	}
	return v1.Derive(apiversion.NextVersion), nil
}
