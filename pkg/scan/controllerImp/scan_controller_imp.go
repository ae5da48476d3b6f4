package controllerImp

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"agricopilot/pkg/logger"
	"agricopilot/pkg/scan/controller"
	"agricopilot/pkg/scan/service"
)

const historyLimit = 500

type ScanCtrl struct{ svc service.ScanService }

func New(svc service.ScanService) controller.ScanController { return &ScanCtrl{svc: svc} }

// Analyze handles POST /analyze: multipart image (required), optional lat/lon
// decimal strings, optional mode (default field).
func (h *ScanCtrl) Analyze(c echo.Context) error {
	in := service.AnalyzeInput{Mode: c.FormValue("mode")}

	fh, err := c.FormFile("image")
	if err == nil {
		f, openErr := fh.Open()
		if openErr != nil {
			return serverError(c, openErr)
		}
		defer f.Close()
		in.Image, err = io.ReadAll(f)
		if err != nil {
			return serverError(c, err)
		}
		in.MimeType = fh.Header.Get("Content-Type")
		in.Filename = fh.Filename
	}

	if v := c.FormValue("lat"); v != "" {
		if lat, err := strconv.ParseFloat(v, 64); err == nil {
			in.Lat = &lat
		}
	}
	if v := c.FormValue("lon"); v != "" {
		if lon, err := strconv.ParseFloat(v, 64); err == nil {
			in.Lon = &lon
		}
	}

	result, err := h.svc.Analyze(c.Request().Context(), in)
	if err != nil {
		if errors.Is(err, service.ErrNoImage) {
			return c.JSON(http.StatusBadRequest, map[string]any{
				"error": err.Error(),
				"type":  "validation_error",
			})
		}
		return serverError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success":        true,
		"scan_id":        result.ScanID,
		"diagnosis":      result.Diagnosis,
		"weather":        result.Weather,
		"execution_plan": result.ExecutionPlan,
		"demo_mode":      result.DemoMode,
	})
}

// List handles GET /api/scans: up to 500 most recent scans, newest first.
func (h *ScanCtrl) List(c echo.Context) error {
	records, err := h.svc.Recent(historyLimit)
	if err != nil {
		return serverError(c, err)
	}
	scans := make([]map[string]any, 0, len(records))
	for i := range records {
		scans = append(scans, records[i].ToDict())
	}
	return c.JSON(http.StatusOK, map[string]any{"count": len(scans), "scans": scans})
}

func serverError(c echo.Context, err error) error {
	logger.Log.Errorf("scan: %v", err)
	return c.JSON(http.StatusInternalServerError, map[string]any{
		"error": "Server error.",
		"type":  "server_error",
	})
}
