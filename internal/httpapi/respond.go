package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

type envelope struct {
	Status  string         `json:"status"`
	Data    any            `json:"data,omitempty"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

func success(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, envelope{Status: "ok", Data: data})
}

func fail(c echo.Context, status int, message string, details map[string]any) error {
	return c.JSON(status, envelope{Status: "error", Message: message, Details: details})
}

func failValidation(c echo.Context, fields map[string]string) error {
	details := make(map[string]any, len(fields))
	for field, reason := range fields {
		details[field] = reason
	}
	return fail(c, http.StatusBadRequest, "Validation failed", details)
}

func internalError(c echo.Context, message string) error {
	return fail(c, http.StatusInternalServerError, message, nil)
}

func decodeJSONBody(c echo.Context, dest any) error {
	decoder := json.NewDecoder(c.Request().Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("request body is not valid JSON: %w", err)
	}
	return nil
}
