package main

import (
	"os"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"agricopilot/config"
	"agricopilot/database"
	"agricopilot/pkg/ai"
	"agricopilot/pkg/logger"
	"agricopilot/pkg/weather"
	"agricopilot/router"

	authCtrlImp "agricopilot/pkg/auth/controllerImp"
	authRepoImp "agricopilot/pkg/auth/repositoryImp"

	scanCtrlImp "agricopilot/pkg/scan/controllerImp"
	scanRepoImp "agricopilot/pkg/scan/repositoryImp"
	scanSvcImp "agricopilot/pkg/scan/serviceImp"

	reportCtrlImp "agricopilot/pkg/report/controllerImp"

	chatCtrlImp "agricopilot/pkg/chat/controllerImp"

	kbCtrlImp "agricopilot/pkg/kb/controllerImp"
	kbRepoImp "agricopilot/pkg/kb/repositoryImp"
	kbSvcImp "agricopilot/pkg/kb/serviceImp"

	healthCtrlImp "agricopilot/pkg/health/controllerImp"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel)

	db := database.OpenSQLite(cfg.DBPath)

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		logger.Log.Warnf("upload dir %s: %v", cfg.UploadDir, err)
	}

	var aiClient ai.Client
	if cfg.GeminiAPIKey != "" {
		aiClient = ai.NewGemini(cfg.GeminiAPIKey, cfg.GeminiModel)
		logger.Log.Info("AI: Gemini client enabled")
	} else {
		aiClient = ai.NewMock()
		logger.Log.Warn("AI: no GEMINI_API_KEY, running in demo mode")
	}

	forecaster := weather.NewService(cfg.OpenWeatherKey)

	scanRepo := scanRepoImp.New(db)
	scanSvc := scanSvcImp.New(aiClient, forecaster, scanRepo, cfg.UploadDir)
	scanCtrl := scanCtrlImp.New(scanSvc)

	reportCtrl := reportCtrlImp.New(scanSvc)

	kbRepo := kbRepoImp.New(db)
	kbSvc := kbSvcImp.New(kbRepo)
	kbCtrl := kbCtrlImp.New(kbSvc)

	chatCtrl := chatCtrlImp.New(aiClient, kbSvc)

	userRepo := authRepoImp.New(db)
	authCtrl := authCtrlImp.New(userRepo, aiClient, cfg.JWTSecret)

	hCtrl := healthCtrlImp.NewHealthCtrl(db)

	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.Logger())

	r := router.New(e, scanCtrl, reportCtrl, chatCtrl, authCtrl, kbCtrl, hCtrl, cfg.JWTSecret, cfg.StaticDir)

	logger.Log.Infof("listening on :%s", cfg.Port)
	if err := r.Start(":" + cfg.Port); err != nil {
		logger.Log.Fatal(err)
	}
}
