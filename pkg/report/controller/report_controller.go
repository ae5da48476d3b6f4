package controller

import "github.com/labstack/echo/v4"

type ReportController interface {
	DownloadPDF(c echo.Context) error
	ExportXLSX(c echo.Context) error
}
