package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"verba.fyi/verba/internal/translation"
)

// statusClientClosedRequest mirrors the nginx convention for caller-initiated
// cancellation; no standard status fits.
const statusClientClosedRequest = 499

type translateRequest struct {
	Text          string `json:"text"`
	SourceLang    string `json:"source_language"`
	TargetLang    string `json:"target_language"`
	Engine        string `json:"engine"`
	Model         string `json:"model"`
	Style         string `json:"style"`
	SaveToHistory *bool  `json:"save_to_history"`
}

type compareRequest struct {
	Text          string   `json:"text"`
	SourceLang    string   `json:"source_language"`
	TargetLang    string   `json:"target_language"`
	Engines       []string `json:"engines"`
	SaveToHistory *bool    `json:"save_to_history"`
}

type detectRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleDetect(c echo.Context) error {
	var payload detectRequest
	if err := decodeJSONBody(c, &payload); err != nil {
		return failValidation(c, map[string]string{"body": err.Error()})
	}
	if strings.TrimSpace(payload.Text) == "" {
		return failValidation(c, map[string]string{"text": "text is required"})
	}
	if s.detector == nil {
		return fail(c, http.StatusServiceUnavailable, "Language detection is not configured", nil)
	}

	code, confidence, err := s.detector.Detect(c.Request().Context(), payload.Text)
	if err != nil {
		return fail(c, http.StatusUnprocessableEntity, translation.ErrLanguageDetection.Error()+": "+err.Error(), nil)
	}

	return success(c, map[string]any{
		"detected_language": code,
		"language_name":     translation.LanguageName(code),
		"confidence":        confidence,
	})
}

func (s *Server) handleTranslate(c echo.Context) error {
	var payload translateRequest
	if err := decodeJSONBody(c, &payload); err != nil {
		return failValidation(c, map[string]string{"body": err.Error()})
	}

	result, err := s.svc.Translate(c.Request().Context(), translation.Request{
		SourceText: payload.Text,
		SourceLang: payload.SourceLang,
		TargetLang: payload.TargetLang,
		EngineID:   payload.Engine,
		Model:      payload.Model,
		Style:      translation.Style(payload.Style),
	})
	if err != nil {
		return s.translationError(c, err)
	}

	response := map[string]any{"translation": result}
	if s.history != nil && saveRequested(payload.SaveToHistory) {
		record, saveErr := s.history.SaveTranslation(c.Request().Context(), result)
		if saveErr != nil {
			s.logger.Error().Err(saveErr).Msg("save translation history failed")
		} else {
			response["history_id"] = record.ID
		}
	}
	return success(c, response)
}

func (s *Server) handleCompare(c echo.Context) error {
	var payload compareRequest
	if err := decodeJSONBody(c, &payload); err != nil {
		return failValidation(c, map[string]string{"body": err.Error()})
	}

	result, err := s.svc.Compare(c.Request().Context(), translation.CompareRequest{
		SourceText: payload.Text,
		SourceLang: payload.SourceLang,
		TargetLang: payload.TargetLang,
		EngineIDs:  payload.Engines,
	})
	if err != nil {
		return s.translationError(c, err)
	}

	response := map[string]any{"comparison": result}
	if s.history != nil && saveRequested(payload.SaveToHistory) {
		record, saveErr := s.history.SaveComparison(c.Request().Context(), result)
		if saveErr != nil {
			s.logger.Error().Err(saveErr).Msg("save comparison history failed")
		} else {
			response["history_id"] = record.ID
		}
	}
	return success(c, response)
}

// translationError maps the core's error taxonomy onto HTTP statuses.
func (s *Server) translationError(c echo.Context, err error) error {
	var validationErr *translation.ValidationError
	if errors.As(err, &validationErr) {
		return failValidation(c, map[string]string{validationErr.Field: validationErr.Reason})
	}

	var unknownEngine *translation.UnknownEngineError
	if errors.As(err, &unknownEngine) {
		return fail(c, http.StatusBadRequest, unknownEngine.Error(), nil)
	}

	switch {
	case errors.Is(err, translation.ErrLanguageDetection):
		return fail(c, http.StatusUnprocessableEntity, err.Error(), nil)
	case errors.Is(err, translation.ErrRequestCancelled):
		return fail(c, statusClientClosedRequest, "Request cancelled", nil)
	case errors.Is(err, translation.ErrAllEnginesFailed):
		return fail(c, http.StatusBadGateway, err.Error(), nil)
	}

	var engineErr *translation.EngineError
	if errors.As(err, &engineErr) {
		status := http.StatusBadGateway
		if engineErr.Timeout() {
			status = http.StatusGatewayTimeout
		}
		return fail(c, status, engineErr.Error(), nil)
	}

	s.logger.Error().Err(err).Msg("translation failed")
	return internalError(c, "Translation failed")
}

// saveRequested defaults to true; the original API saved history unless the
// caller opted out.
func saveRequested(flag *bool) bool {
	return flag == nil || *flag
}
