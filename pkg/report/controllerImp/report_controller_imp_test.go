package controllerImp

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agricopilot/entities"
	"agricopilot/pkg/scan/service"
)

type fakeScanService struct {
	record *entities.ScanRecord
	recent []entities.ScanRecord
}

func (f *fakeScanService) Analyze(ctx context.Context, in service.AnalyzeInput) (*service.AnalyzeResult, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeScanService) Recent(limit int) ([]entities.ScanRecord, error) { return f.recent, nil }

func (f *fakeScanService) Get(id uint) (*entities.ScanRecord, error) {
	if f.record != nil && f.record.ID == id {
		return f.record, nil
	}
	return nil, errors.New("record not found")
}

func TestDownloadPDF(t *testing.T) {
	h := New(&fakeScanService{record: &entities.ScanRecord{
		ID:          3,
		Timestamp:   time.Now().UTC(),
		DiseaseName: "Late Blight",
		SprayStatus: "green",
	}})

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/report/3", nil), rec)
	c.SetParamNames("scan_id")
	c.SetParamValues("3")

	require.NoError(t, h.DownloadPDF(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get(echo.HeaderContentType))
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "FarmHealthPassport_3.pdf")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))
}

func TestDownloadPDFNotFound(t *testing.T) {
	h := New(&fakeScanService{})
	e := echo.New()

	for _, id := range []string{"99", "abc", "-1", ""} {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/report/x", nil), rec)
		c.SetParamNames("scan_id")
		c.SetParamValues(id)

		require.NoError(t, h.DownloadPDF(c))
		assert.Equal(t, http.StatusNotFound, rec.Code, "scan_id=%q", id)
	}
}

func TestExportXLSX(t *testing.T) {
	h := New(&fakeScanService{recent: []entities.ScanRecord{
		{ID: 1, Timestamp: time.Now().UTC(), DiseaseName: "Rust"},
	}})

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/scans/export", nil), rec)

	require.NoError(t, h.ExportXLSX(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "agricopilot_scans.xlsx")
	assert.NotEmpty(t, rec.Body.Bytes())
}
