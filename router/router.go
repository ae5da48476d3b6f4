package router

import (
	"github.com/labstack/echo/v4"

	authCtrl "agricopilot/pkg/auth/controller"
	chatCtrl "agricopilot/pkg/chat/controller"
	kbCtrl "agricopilot/pkg/kb/controller"
	"agricopilot/pkg/middleware"
	reportCtrl "agricopilot/pkg/report/controller"
	scanCtrl "agricopilot/pkg/scan/controller"
)

func New(
	e *echo.Echo,
	scan scanCtrl.ScanController,
	report reportCtrl.ReportController,
	chat chatCtrl.ChatController,
	auth authCtrl.AuthController,
	kb kbCtrl.KBController,
	healthCtrl interface{ Health(echo.Context) error },
	jwtSecret string,
	staticDir string,
) *echo.Echo {
	e.Use(middleware.Session(jwtSecret))

	e.Static("/static", staticDir)
	e.File("/", staticDir+"/index.html")

	e.GET("/health", healthCtrl.Health)

	e.POST("/analyze", scan.Analyze)
	e.GET("/api/scans", scan.List)
	e.GET("/api/scans/export", report.ExportXLSX)
	e.GET("/report/:scan_id", report.DownloadPDF)

	e.POST("/api/chat", chat.Chat)

	e.POST("/api/auth/register", auth.Register)
	e.POST("/api/auth/login", auth.Login)
	e.POST("/api/auth/logout", auth.Logout)
	e.GET("/api/auth/me", auth.Me)

	account := e.Group("", middleware.RequireLogin())
	account.PUT("/api/auth/profile", auth.UpdateProfile)
	account.POST("/api/auth/recommend", auth.Recommend)

	e.POST("/kb/ingest", kb.IngestText)
	e.POST("/kb/ingest/url", kb.IngestURL)
	e.GET("/kb/search", kb.Search)

	return e
}
