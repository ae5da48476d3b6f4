package controller

import "github.com/labstack/echo/v4"

type ScanController interface {
	Analyze(c echo.Context) error
	List(c echo.Context) error
}
