package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"verba.fyi/verba/internal/history"
)

const (
	defaultPageSize = 25
	maxPageSize     = 200
)

func (s *Server) handleHistoryList(c echo.Context) error {
	if s.history == nil {
		return fail(c, http.StatusServiceUnavailable, "History persistence is not configured", nil)
	}

	page := queryInt(c, "page", 1)
	pageSize := queryInt(c, "page_size", defaultPageSize)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	records, total, err := s.history.ListTranslations(c.Request().Context(), page, pageSize)
	if err != nil {
		s.logger.Error().Err(err).Msg("list translation history failed")
		return internalError(c, "Failed to load history")
	}

	return success(c, map[string]any{
		"items":     records,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

func (s *Server) handleHistoryDetail(c echo.Context) error {
	if s.history == nil {
		return fail(c, http.StatusServiceUnavailable, "History persistence is not configured", nil)
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return failValidation(c, map[string]string{"id": "must be a positive integer"})
	}

	record, err := s.history.GetTranslation(c.Request().Context(), uint(id))
	if errors.Is(err, history.ErrNotFound) {
		return fail(c, http.StatusNotFound, "History record not found", nil)
	}
	if err != nil {
		s.logger.Error().Err(err).Uint64("id", id).Msg("load translation history failed")
		return internalError(c, "Failed to load history record")
	}

	return success(c, map[string]any{"item": record})
}

func (s *Server) handleComparisonList(c echo.Context) error {
	if s.history == nil {
		return fail(c, http.StatusServiceUnavailable, "History persistence is not configured", nil)
	}

	page := queryInt(c, "page", 1)
	pageSize := queryInt(c, "page_size", defaultPageSize)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	records, total, err := s.history.ListComparisons(c.Request().Context(), page, pageSize)
	if err != nil {
		s.logger.Error().Err(err).Msg("list comparison history failed")
		return internalError(c, "Failed to load history")
	}

	return success(c, map[string]any{
		"items":     records,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

func (s *Server) handleComparisonDetail(c echo.Context) error {
	if s.history == nil {
		return fail(c, http.StatusServiceUnavailable, "History persistence is not configured", nil)
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return failValidation(c, map[string]string{"id": "must be a positive integer"})
	}

	record, err := s.history.GetComparison(c.Request().Context(), uint(id))
	if errors.Is(err, history.ErrNotFound) {
		return fail(c, http.StatusNotFound, "History record not found", nil)
	}
	if err != nil {
		s.logger.Error().Err(err).Uint64("id", id).Msg("load comparison history failed")
		return internalError(c, "Failed to load history record")
	}

	return success(c, map[string]any{"item": record})
}

func queryInt(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
