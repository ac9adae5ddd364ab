package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"verba.fyi/verba/internal/translation"
)

// stubService scripts the orchestration core for handler tests.
type stubService struct {
	result     *translation.Result
	compare    *translation.CompareResult
	err        error
	lastReq    translation.Request
	lastCmpReq translation.CompareRequest
}

func (s *stubService) Translate(_ context.Context, req translation.Request) (*translation.Result, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func (s *stubService) Compare(_ context.Context, req translation.CompareRequest) (*translation.CompareResult, error) {
	s.lastCmpReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.compare, nil
}

// stubDetector scripts language detection for handler tests.
type stubDetector struct {
	code       string
	confidence float64
	err        error
}

func (d *stubDetector) Detect(_ context.Context, _ string) (string, float64, error) {
	if d.err != nil {
		return "", 0, d.err
	}
	return d.code, d.confidence, nil
}

func newTestServer(svc TranslationService) *Server {
	return NewServer(svc, nil, nil, nil, zerolog.Nop(), Options{})
}

func invoke(t *testing.T, handler echo.HandlerFunc, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	if err := handler(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("response is not an envelope: %v\n%s", err, rec.Body.String())
	}
	return rec, env
}

func scorePtr(v float64) *float64 { return &v }

func TestHandleTranslateSuccess(t *testing.T) {
	svc := &stubService{result: &translation.Result{
		SourceText:     "Hello",
		TranslatedText: "Bonjour",
		SourceLang:     "en",
		TargetLang:     "fr",
		EngineID:       "openai",
		QualityScore:   scorePtr(8.2),
	}}
	server := newTestServer(svc)

	rec, env := invoke(t, server.handleTranslate, http.MethodPost, "/api/v1/translate",
		`{"text":"Hello","source_language":"en","target_language":"fr","engine":"openai","style":"formal"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if env.Status != "ok" {
		t.Fatalf("envelope status = %q", env.Status)
	}
	if svc.lastReq.SourceText != "Hello" || svc.lastReq.EngineID != "openai" {
		t.Fatalf("request not forwarded: %+v", svc.lastReq)
	}
	if svc.lastReq.Style != translation.StyleFormal {
		t.Fatalf("style not forwarded: %q", svc.lastReq.Style)
	}

	data, ok := env.Data.(map[string]any)
	if !ok {
		t.Fatalf("unexpected data shape %T", env.Data)
	}
	result, ok := data["translation"].(map[string]any)
	if !ok {
		t.Fatalf("missing translation payload: %v", data)
	}
	if result["translated_text"] != "Bonjour" {
		t.Fatalf("unexpected translated_text %v", result["translated_text"])
	}
	if result["resolved_source_language"] != "en" {
		t.Fatalf("unexpected resolved_source_language %v", result["resolved_source_language"])
	}
}

func TestHandleTranslateMalformedBody(t *testing.T) {
	server := newTestServer(&stubService{})

	rec, env := invoke(t, server.handleTranslate, http.MethodPost, "/api/v1/translate", `{not json`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if env.Status != "error" || env.Message != "Validation failed" {
		t.Fatalf("unexpected envelope %+v", env)
	}
}

func TestTranslationErrorStatuses(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", &translation.ValidationError{Field: "source_text", Reason: "text is required"}, http.StatusBadRequest},
		{"unknown engine", &translation.UnknownEngineError{EngineID: "ghost"}, http.StatusBadRequest},
		{"detection", translation.ErrLanguageDetection, http.StatusUnprocessableEntity},
		{"cancelled", translation.ErrRequestCancelled, statusClientClosedRequest},
		{"all failed", translation.ErrAllEnginesFailed, http.StatusBadGateway},
		{"engine timeout", &translation.EngineError{EngineID: "openai", Kind: translation.ErrorKindTimeout}, http.StatusGatewayTimeout},
		{"engine auth", &translation.EngineError{EngineID: "openai", Kind: translation.ErrorKindAuth}, http.StatusBadGateway},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := newTestServer(&stubService{err: tc.err})

			rec, env := invoke(t, server.handleTranslate, http.MethodPost, "/api/v1/translate",
				`{"text":"Hello","source_language":"en","target_language":"fr"}`)

			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d", rec.Code, tc.status)
			}
			if env.Status != "error" {
				t.Fatalf("envelope status = %q", env.Status)
			}
		})
	}
}

func TestHandleCompareSuccess(t *testing.T) {
	best := &translation.Result{TranslatedText: "Hallo", EngineID: "openai", QualityScore: scorePtr(8.0)}
	svc := &stubService{compare: &translation.CompareResult{
		SourceText: "Hello",
		SourceLang: "en",
		TargetLang: "de",
		Results:    map[string]*translation.Result{"openai": best},
		Errors:     map[string]string{"baidu": "engine baidu: timeout: deadline exceeded"},
		Best:       best,
	}}
	server := newTestServer(svc)

	rec, env := invoke(t, server.handleCompare, http.MethodPost, "/api/v1/translate/compare",
		`{"text":"Hello","source_language":"en","target_language":"de","engines":["openai","baidu"]}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if env.Status != "ok" {
		t.Fatalf("envelope status = %q", env.Status)
	}
	if len(svc.lastCmpReq.EngineIDs) != 2 {
		t.Fatalf("engines not forwarded: %v", svc.lastCmpReq.EngineIDs)
	}

	data := env.Data.(map[string]any)
	comparison, ok := data["comparison"].(map[string]any)
	if !ok {
		t.Fatalf("missing comparison payload: %v", data)
	}
	if _, ok := comparison["best_translation"]; !ok {
		t.Fatalf("missing best_translation: %v", comparison)
	}
	errs, ok := comparison["errors"].(map[string]any)
	if !ok || errs["baidu"] == nil {
		t.Fatalf("per-engine errors should survive serialization: %v", comparison["errors"])
	}
}

func TestHandleDetectSuccess(t *testing.T) {
	detector := &stubDetector{code: "fr", confidence: 0.92}
	server := NewServer(&stubService{}, nil, detector, nil, zerolog.Nop(), Options{})

	rec, env := invoke(t, server.handleDetect, http.MethodPost, "/api/v1/detect",
		`{"text":"Bonjour tout le monde"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	data := env.Data.(map[string]any)
	if data["detected_language"] != "fr" {
		t.Fatalf("unexpected detected_language %v", data["detected_language"])
	}
	if data["language_name"] != "French" {
		t.Fatalf("unexpected language_name %v", data["language_name"])
	}
	if data["confidence"] != 0.92 {
		t.Fatalf("unexpected confidence %v", data["confidence"])
	}
}

func TestHandleDetectEmptyText(t *testing.T) {
	server := NewServer(&stubService{}, nil, &stubDetector{code: "en"}, nil, zerolog.Nop(), Options{})

	rec, env := invoke(t, server.handleDetect, http.MethodPost, "/api/v1/detect", `{"text":"   "}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if env.Status != "error" {
		t.Fatalf("envelope status = %q", env.Status)
	}
}

func TestHandleDetectFailure(t *testing.T) {
	detector := &stubDetector{err: errors.New("text too short to detect a language")}
	server := NewServer(&stubService{}, nil, detector, nil, zerolog.Nop(), Options{})

	rec, env := invoke(t, server.handleDetect, http.MethodPost, "/api/v1/detect", `{"text":"???"}`)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	if env.Status != "error" {
		t.Fatalf("envelope status = %q", env.Status)
	}
}

func TestHandleDetectUnavailableWithoutDetector(t *testing.T) {
	server := newTestServer(&stubService{})

	rec, _ := invoke(t, server.handleDetect, http.MethodPost, "/api/v1/detect", `{"text":"Hello"}`)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	server := newTestServer(&stubService{})

	rec, env := invoke(t, server.handleHealth, http.MethodGet, "/api/v1/health", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	data := env.Data.(map[string]any)
	if data["service"] != "verba" {
		t.Fatalf("unexpected service name %v", data["service"])
	}
}

func TestHandleEngines(t *testing.T) {
	engines := []translation.EngineDescriptor{
		{ID: "openai", DisplayName: "OpenAI", Enabled: true},
		{ID: "baidu", DisplayName: "Baidu Translate", Enabled: true},
	}
	server := NewServer(&stubService{}, engines, nil, nil, zerolog.Nop(), Options{})

	rec, env := invoke(t, server.handleEngines, http.MethodGet, "/api/v1/engines", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	data := env.Data.(map[string]any)
	list, ok := data["engines"].([]any)
	if !ok || len(list) != 2 {
		t.Fatalf("unexpected engines payload %v", data["engines"])
	}
}

func TestHandleLanguagesIncludesAutoFirst(t *testing.T) {
	server := newTestServer(&stubService{})

	_, env := invoke(t, server.handleLanguages, http.MethodGet, "/api/v1/languages", "")

	data := env.Data.(map[string]any)
	list, ok := data["languages"].([]any)
	if !ok || len(list) == 0 {
		t.Fatalf("unexpected languages payload %v", data["languages"])
	}
	first, ok := list[0].(map[string]any)
	if !ok || first["code"] != "auto" {
		t.Fatalf("auto should lead the language list, got %v", list[0])
	}
}

func TestHistoryEndpointsUnavailableWithoutStore(t *testing.T) {
	server := newTestServer(&stubService{})

	rec, env := invoke(t, server.handleHistoryList, http.MethodGet, "/api/v1/history", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("list status = %d, want 503", rec.Code)
	}
	if env.Status != "error" {
		t.Fatalf("envelope status = %q", env.Status)
	}

	rec, _ = invoke(t, server.handleComparisonList, http.MethodGet, "/api/v1/history/comparisons", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("comparison list status = %d, want 503", rec.Code)
	}

	for name, handler := range map[string]echo.HandlerFunc{
		"translation detail": server.handleHistoryDetail,
		"comparison detail":  server.handleComparisonDetail,
	} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/history/1", nil)
		rec := httptest.NewRecorder()
		c := echo.New().NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("1")
		if err := handler(c); err != nil {
			t.Fatalf("%s handler returned error: %v", name, err)
		}
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("%s status = %d, want 503", name, rec.Code)
		}
	}
}
