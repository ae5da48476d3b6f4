package controllerImp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agricopilot/entities"
	"agricopilot/pkg/scan/service"
	"agricopilot/pkg/weather"
)

type fakeScanService struct {
	result *service.AnalyzeResult
	err    error
	in     service.AnalyzeInput
	recent []entities.ScanRecord
}

func (f *fakeScanService) Analyze(ctx context.Context, in service.AnalyzeInput) (*service.AnalyzeResult, error) {
	f.in = in
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeScanService) Recent(limit int) ([]entities.ScanRecord, error) { return f.recent, nil }

func (f *fakeScanService) Get(id uint) (*entities.ScanRecord, error) {
	return nil, errors.New("not found")
}

func multipartRequest(t *testing.T, fields map[string]string, imageName string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if imageName != "" {
		fw, err := w.CreateFormFile("image", imageName)
		require.NoError(t, err)
		fw.Write([]byte("fake-jpeg-bytes"))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/analyze", &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func TestAnalyzeMissingImageReturns400(t *testing.T) {
	svc := &fakeScanService{err: service.ErrNoImage}
	h := New(svc)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(multipartRequest(t, map[string]string{"mode": "field"}, ""), rec)

	require.NoError(t, h.Analyze(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "No image file provided.", body["error"])
	assert.Equal(t, "validation_error", body["type"])
}

func TestAnalyzeSuccessEnvelope(t *testing.T) {
	svc := &fakeScanService{result: &service.AnalyzeResult{
		ScanID:        9,
		Weather:       weather.Unknown("No GPS location provided."),
		ExecutionPlan: "DIAGNOSIS: ...",
		DemoMode:      true,
	}}
	h := New(svc)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(multipartRequest(t, map[string]string{"lat": "12.97", "lon": "77.59"}, "leaf.jpg"), rec)

	require.NoError(t, h.Analyze(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(9), body["scan_id"])
	assert.Equal(t, true, body["demo_mode"])

	// the controller passed the parsed coordinates down
	require.NotNil(t, svc.in.Lat)
	assert.Equal(t, 12.97, *svc.in.Lat)
	assert.Equal(t, "leaf.jpg", svc.in.Filename)
	assert.Equal(t, []byte("fake-jpeg-bytes"), svc.in.Image)
}

func TestAnalyzeMalformedCoordinatesAreDropped(t *testing.T) {
	svc := &fakeScanService{result: &service.AnalyzeResult{Weather: weather.Unknown("No GPS location provided.")}}
	h := New(svc)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(multipartRequest(t, map[string]string{"lat": "north", "lon": "77.59"}, "leaf.jpg"), rec)

	require.NoError(t, h.Analyze(c))
	assert.Nil(t, svc.in.Lat)
	require.NotNil(t, svc.in.Lon)
}

func TestAnalyzeServiceFailureReturns500Envelope(t *testing.T) {
	svc := &fakeScanService{err: errors.New("db closed")}
	h := New(svc)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(multipartRequest(t, nil, "leaf.jpg"), rec)

	require.NoError(t, h.Analyze(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Server error.", body["error"])
	assert.Equal(t, "server_error", body["type"])
}

func TestListReturnsDicts(t *testing.T) {
	svc := &fakeScanService{recent: []entities.ScanRecord{
		{ID: 2, Timestamp: time.Now().UTC(), DiseaseName: "Rust", SprayStatus: "red"},
		{ID: 1, Timestamp: time.Now().UTC().Add(-time.Hour), DiseaseName: "Blight", SprayStatus: "green"},
	}}
	h := New(svc)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/scans", nil), rec)

	require.NoError(t, h.List(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Count int              `json:"count"`
		Scans []map[string]any `json:"scans"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Count)
	require.Len(t, body.Scans, 2)
	assert.Equal(t, "Rust", body.Scans[0]["disease_name"])
}
