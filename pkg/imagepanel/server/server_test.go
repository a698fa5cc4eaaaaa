package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/ukaji3/imagepanel-go/pkg/imagepanel"
	"github.com/ukaji3/imagepanel-go/pkg/imagepanel/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func pngPayload(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 3, 2))); err != nil {
		t.Fatal(err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func staticLoader(data models.PanelData) Loader {
	return func(context.Context) (models.PanelData, error) { return data, nil }
}

func testServer(t *testing.T, load Loader) *Server {
	t.Helper()
	return New(imagepanel.DefaultOptions(), load, models.Dimensions{Width: 640, Height: 480}, "test", nil)
}

func testData(t *testing.T) models.PanelData {
	payload := pngPayload(t)
	return models.PanelData{
		State: models.LoadingStateDone,
		Series: []models.Frame{{Fields: []models.Field{
			{Name: "image", Type: models.FieldTypeString, Values: []any{payload, payload}},
			{Name: "label", Type: models.FieldTypeString, Values: []any{"cam-1", "cam-2"}},
			{Name: "imagetype", Type: models.FieldTypeString, Values: []any{"png", "png"}},
		}}},
	}
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func do(t *testing.T, h http.Handler, method, target string, body string, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("Failed to decode response %q: %v", w.Body.String(), err)
	}
	return env
}

func TestHealth(t *testing.T) {
	r := testServer(t, staticLoader(models.PanelData{})).Router()
	w := do(t, r, http.MethodGet, "/health", "", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "ok") {
		t.Errorf("GET /health = %d %q", w.Code, w.Body.String())
	}
}

func TestGetPanel(t *testing.T) {
	r := testServer(t, staticLoader(testData(t))).Router()

	w := do(t, r, http.MethodGet, "/?width=300&height=200", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET / = %d: %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	for _, want := range []string{
		"<!DOCTYPE html>",
		"data:image/png;base64,",
		"cam-2",
		"width: 300px",
		"height: 200px",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected panel page to contain %q", want)
		}
	}
}

func TestGetPanelLoaderError(t *testing.T) {
	failing := func(context.Context) (models.PanelData, error) {
		return models.PanelData{}, errors.New("boom")
	}
	r := testServer(t, failing).Router()

	w := do(t, r, http.MethodGet, "/", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET / = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "There is no data for this panel") {
		t.Errorf("Expected the no-data placeholder, got %s", w.Body.String())
	}

	w = do(t, r, http.MethodGet, "/api/rows", "", "")
	if w.Code != http.StatusBadGateway {
		t.Errorf("GET /api/rows = %d, expected %d", w.Code, http.StatusBadGateway)
	}
}

func TestGetPanelSingleVariantRowError(t *testing.T) {
	data := models.PanelData{
		State: models.LoadingStateDone,
		Series: []models.Frame{{Fields: []models.Field{
			{Name: "image", Type: models.FieldTypeString, Values: []any{"AAAA"}},
			{Name: "value", Type: models.FieldTypeNumber, Values: []any{"not a number"}},
		}}},
	}
	s := testServer(t, staticLoader(data))
	opts := imagepanel.DefaultOptions()
	opts.Variant = models.VariantSingle
	if err := s.ReplaceOptions(opts); err != nil {
		t.Fatal(err)
	}
	r := s.Router()

	if w := do(t, r, http.MethodGet, "/", "", ""); w.Code != http.StatusInternalServerError {
		t.Errorf("GET / = %d, expected %d", w.Code, http.StatusInternalServerError)
	}
	if w := do(t, r, http.MethodGet, "/api/rows", "", ""); w.Code != http.StatusUnprocessableEntity {
		t.Errorf("GET /api/rows = %d, expected %d", w.Code, http.StatusUnprocessableEntity)
	}
}

func TestOptionsAPI(t *testing.T) {
	s := testServer(t, staticLoader(models.PanelData{}))
	r := s.Router()

	w := do(t, r, http.MethodGet, "/api/options", "", "")
	var got models.Options
	if err := json.Unmarshal(decode(t, w).Data, &got); err != nil {
		t.Fatal(err)
	}
	if got.ImageSize != 80 || got.Variant != models.VariantDual {
		t.Errorf("GET /api/options = %+v", got)
	}

	body := `{"imageSize": 120, "variant": "single", "useThreshold": true,
		"thresholds": {"mode": "absolute", "steps": [{"value": null, "color": "green"}, {"value": 50, "color": "red"}]}}`
	w = do(t, r, http.MethodPut, "/api/options", body, "application/json")
	if w.Code != http.StatusOK {
		t.Fatalf("PUT /api/options = %d: %s", w.Code, w.Body.String())
	}
	opts := s.Options()
	if opts.ImageSize != 120 || opts.Variant != models.VariantSingle || !opts.UseThreshold {
		t.Errorf("Options after PUT = %+v", opts)
	}
	if opts.TextFontSize != 14 {
		t.Errorf("Omitted keys should take defaults, got textFontSize %v", opts.TextFontSize)
	}
	if len(opts.Thresholds.Steps) != 2 || opts.Thresholds.Steps[1].Color != "red" {
		t.Errorf("Unexpected thresholds %+v", opts.Thresholds)
	}
}

func TestPutOptionsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed", `{"imageSize": `},
		{"zero size", `{"imageSize": 0}`},
		{"unknown variant", `{"variant": "triple"}`},
	}

	for _, tt := range tests {
		s := testServer(t, staticLoader(models.PanelData{}))
		w := do(t, s.Router(), http.MethodPut, "/api/options", tt.body, "application/json")
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: PUT /api/options = %d, expected %d", tt.name, w.Code, http.StatusBadRequest)
		}
		if s.Options().ImageSize != 80 {
			t.Errorf("%s: options changed after a rejected PUT", tt.name)
		}
	}
}

func TestEditorForm(t *testing.T) {
	s := testServer(t, staticLoader(models.PanelData{}))
	r := s.Router()

	w := do(t, r, http.MethodGet, "/editor", "", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `name="imageSize"`) {
		t.Fatalf("GET /editor = %d: %s", w.Code, w.Body.String())
	}

	form := url.Values{
		"imageSize":          {"120"},
		"textFontSize":       {"16"},
		"overlayStrokeSize":  {"3"},
		"textColor":          {"red"},
		"borderColor":        {"blue"},
		"overlayBorderColor": {"yellow"},
		"useThreshold":       {"true"},
	}
	w = do(t, r, http.MethodPost, "/editor", form.Encode(), "application/x-www-form-urlencoded")
	if w.Code != http.StatusSeeOther {
		t.Fatalf("POST /editor = %d: %s", w.Code, w.Body.String())
	}

	opts := s.Options()
	if opts.ImageSize != 120 || opts.TextFontSize != 16 || opts.OverlayStrokeSize != 3 {
		t.Errorf("Sizes not applied: %+v", opts)
	}
	if opts.TextColor != "red" || opts.BorderColor != "blue" || opts.OverlayBorderColor != "yellow" {
		t.Errorf("Colors not applied: %+v", opts)
	}
	if !opts.UseThreshold || opts.UseOverlayThreshold {
		t.Errorf("Switches = %v/%v, expected true/false", opts.UseThreshold, opts.UseOverlayThreshold)
	}
}

func TestEditorFormRejected(t *testing.T) {
	s := testServer(t, staticLoader(models.PanelData{}))
	form := url.Values{"imageSize": {"120"}, "textFontSize": {"99"}}

	w := do(t, s.Router(), http.MethodPost, "/editor", form.Encode(), "application/x-www-form-urlencoded")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("POST /editor = %d, expected %d", w.Code, http.StatusBadRequest)
	}
	if !strings.Contains(w.Body.String(), "textFontSize") {
		t.Errorf("Expected the error to name the control: %s", w.Body.String())
	}
	if s.Options().ImageSize != 80 {
		t.Errorf("Options changed after a rejected form")
	}
}

func TestRowsAPI(t *testing.T) {
	r := testServer(t, staticLoader(testData(t))).Router()

	w := do(t, r, http.MethodGet, "/api/rows", "", "")
	var got struct {
		Count int                `json:"count"`
		Rows  []models.RowRecord `json:"rows"`
	}
	if err := json.Unmarshal(decode(t, w).Data, &got); err != nil {
		t.Fatal(err)
	}
	if got.Count != 2 || len(got.Rows) != 2 || got.Rows[1].Label != "cam-2" {
		t.Errorf("GET /api/rows = %+v", got)
	}

	w = do(t, r, http.MethodGet, "/api/images", "", "")
	var infos []struct {
		Width  int  `json:"width"`
		Height int  `json:"height"`
		Match  bool `json:"match"`
	}
	if err := json.Unmarshal(decode(t, w).Data, &infos); err != nil {
		t.Fatal(err)
	}
	if len(infos) != 2 || infos[0].Width != 3 || infos[0].Height != 2 || !infos[0].Match {
		t.Errorf("GET /api/images = %+v", infos)
	}
}

func TestRowImage(t *testing.T) {
	r := testServer(t, staticLoader(testData(t))).Router()

	tests := []struct {
		target string
		status int
	}{
		{"/api/rows/0/image", http.StatusOK},
		{"/api/rows/1/image", http.StatusOK},
		{"/api/rows/2/image", http.StatusNotFound},
		{"/api/rows/-1/image", http.StatusBadRequest},
		{"/api/rows/abc/image", http.StatusBadRequest},
	}

	for _, tt := range tests {
		w := do(t, r, http.MethodGet, tt.target, "", "")
		if w.Code != tt.status {
			t.Errorf("GET %s = %d, expected %d", tt.target, w.Code, tt.status)
			continue
		}
		if tt.status == http.StatusOK && w.Header().Get("Content-Type") != "image/png" {
			t.Errorf("GET %s content type = %q", tt.target, w.Header().Get("Content-Type"))
		}
	}
}
