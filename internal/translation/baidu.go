package translation

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultBaiduEndpoint is the Baidu Fanyi general translation endpoint.
	DefaultBaiduEndpoint = "https://fanyi-api.baidu.com/api/trans/vip/translate"
	// BaiduModelName is the fixed model identifier reported for Baidu results.
	BaiduModelName = "baidu-translate"
)

const baiduConfidence = 0.82

// Baidu uses its own codes for some languages.
var baiduLangCodes = map[string]string{
	"ja": "jp",
	"ko": "kor",
	"fr": "fra",
	"es": "spa",
	"vi": "vie",
	"ar": "ara",
	"sv": "swe",
}

// BaiduEngine translates text through the Baidu Fanyi API. Classical MT: the
// style preset is ignored. Requests are signed with MD5 per the provider's
// app-id scheme.
type BaiduEngine struct {
	appID     string
	secretKey string
	endpoint  string
	client    *http.Client
	salt      func() string
}

func NewBaiduEngine(appID, secretKey, endpoint string) *BaiduEngine {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		trimmed = DefaultBaiduEndpoint
	}
	return &BaiduEngine{
		appID:     strings.TrimSpace(appID),
		secretKey: strings.TrimSpace(secretKey),
		endpoint:  trimmed,
		client:    engineHTTPClient(),
		salt: func() string {
			return strconv.Itoa(32768 + rand.Intn(32768))
		},
	}
}

func (e *BaiduEngine) Name() string {
	return "baidu"
}

func (e *BaiduEngine) Models() []string {
	return []string{BaiduModelName}
}

func (e *BaiduEngine) Translate(ctx context.Context, req EngineRequest) (*EngineResponse, error) {
	salt := e.salt()
	form := url.Values{}
	form.Set("q", req.Text)
	form.Set("from", baiduLangCode(req.SourceLang))
	form.Set("to", baiduLangCode(req.TargetLang))
	form.Set("appid", e.appID)
	form.Set("salt", salt)
	form.Set("sign", baiduSign(e.appID, req.Text, salt, e.secretKey))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build translation request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return nil, newEngineError(e.Name(), classifyTransportError(err), err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read translation response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newEngineError(e.Name(), classifyStatus(resp.StatusCode),
			fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody))))
	}

	var parsed baiduResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("decode translation response: %w", err)
	}
	if parsed.ErrorCode != "" && parsed.ErrorCode != "52000" {
		return nil, newEngineError(e.Name(), classifyBaiduError(parsed.ErrorCode),
			fmt.Errorf("error %s: %s", parsed.ErrorCode, parsed.ErrorMsg))
	}
	if len(parsed.TransResult) == 0 {
		return nil, newEngineError(e.Name(), ErrorKindProvider, fmt.Errorf("response missing trans_result"))
	}

	segments := make([]string, 0, len(parsed.TransResult))
	for _, segment := range parsed.TransResult {
		segments = append(segments, segment.Dst)
	}

	return &EngineResponse{
		Text:       strings.Join(segments, "\n"),
		Model:      BaiduModelName,
		Confidence: floatPtr(baiduConfidence),
	}, nil
}

func baiduSign(appID, text, salt, secretKey string) string {
	sum := md5.Sum([]byte(appID + text + salt + secretKey))
	return hex.EncodeToString(sum[:])
}

func baiduLangCode(code string) string {
	if mapped, ok := baiduLangCodes[code]; ok {
		return mapped
	}
	return code
}

func classifyBaiduError(code string) ErrorKind {
	switch code {
	case "52001":
		return ErrorKindTimeout
	case "52003", "58002":
		return ErrorKindAuth
	case "54003", "54004", "54005":
		return ErrorKindRateLimit
	case "58001":
		return ErrorKindUnsupportedPair
	default:
		return ErrorKindProvider
	}
}

type baiduResponse struct {
	ErrorCode   string `json:"error_code"`
	ErrorMsg    string `json:"error_msg"`
	TransResult []struct {
		Src string `json:"src"`
		Dst string `json:"dst"`
	} `json:"trans_result"`
}
