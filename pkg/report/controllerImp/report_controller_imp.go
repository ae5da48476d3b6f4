package controllerImp

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"agricopilot/pkg/logger"
	"agricopilot/pkg/report"
	"agricopilot/pkg/report/controller"
	"agricopilot/pkg/scan/service"
)

const exportLimit = 500

type ReportCtrl struct{ scans service.ScanService }

func New(scans service.ScanService) controller.ReportController { return &ReportCtrl{scans: scans} }

// DownloadPDF handles GET /report/:scan_id.
func (h *ReportCtrl) DownloadPDF(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("scan_id"))
	if err != nil || id <= 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	}
	rec, err := h.scans.Get(uint(id))
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	}

	pdfBytes, err := report.BuildPassport(rec)
	if err != nil {
		logger.Log.Errorf("passport pdf: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]any{
			"error": "Server error.",
			"type":  "server_error",
		})
	}

	filename := fmt.Sprintf("FarmHealthPassport_%d.pdf", id)
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+filename)
	return c.Blob(http.StatusOK, "application/pdf", pdfBytes)
}

// ExportXLSX handles GET /api/scans/export.
func (h *ReportCtrl) ExportXLSX(c echo.Context) error {
	records, err := h.scans.Recent(exportLimit)
	if err != nil {
		logger.Log.Errorf("scan export: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]any{
			"error": "Server error.",
			"type":  "server_error",
		})
	}
	xlsxBytes, err := report.BuildHistoryXLSX(records)
	if err != nil {
		logger.Log.Errorf("scan export: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]any{
			"error": "Server error.",
			"type":  "server_error",
		})
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=agricopilot_scans.xlsx")
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", xlsxBytes)
}
