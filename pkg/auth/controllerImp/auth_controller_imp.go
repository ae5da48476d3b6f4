package controllerImp

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"agricopilot/entities"
	"agricopilot/pkg/ai"
	"agricopilot/pkg/auth"
	"agricopilot/pkg/auth/controller"
	"agricopilot/pkg/auth/repository"
	"agricopilot/pkg/logger"
	"agricopilot/pkg/middleware"
)

type AuthCtrl struct {
	repo      repository.UserRepository
	aiClient  ai.Client
	jwtSecret string
}

func New(repo repository.UserRepository, aiClient ai.Client, jwtSecret string) controller.AuthController {
	return &AuthCtrl{repo: repo, aiClient: aiClient, jwtSecret: jwtSecret}
}

type credentialsReq struct {
	Email    string  `json:"email"`
	Phone    *string `json:"phone"`
	Password string  `json:"password"`
}

func (h *AuthCtrl) Register(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Email and password are required."})
	}
	if len(req.Password) < 6 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Password must be at least 6 characters."})
	}
	if _, err := h.repo.FindByEmail(email); err == nil {
		return c.JSON(http.StatusConflict, map[string]string{"error": "An account with this email already exists."})
	}

	user := &entities.User{Email: email, Phone: normalizePhone(req.Phone), Role: "farmer"}
	if err := user.SetPassword(req.Password); err != nil {
		return serverError(c, err)
	}
	// Empty profile created immediately so the frontend can populate it
	if err := h.repo.CreateWithProfile(user, &entities.FarmerProfile{}); err != nil {
		return serverError(c, err)
	}

	if err := h.setSession(c, user.ID); err != nil {
		return serverError(c, err)
	}
	logger.Log.Infof("new user registered: %s", email)
	return c.JSON(http.StatusCreated, map[string]any{"success": true, "user": user.ToDict()})
}

func (h *AuthCtrl) Login(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := h.repo.FindByEmail(email)
	if err != nil || !user.CheckPassword(req.Password) {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid email or password."})
	}

	if err := h.setSession(c, user.ID); err != nil {
		return serverError(c, err)
	}
	logger.Log.Infof("user logged in: %s", email)
	return c.JSON(http.StatusOK, map[string]any{"success": true, "user": user.ToDict()})
}

func (h *AuthCtrl) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return c.JSON(http.StatusOK, map[string]any{"success": true})
}

func (h *AuthCtrl) Me(c echo.Context) error {
	uid := middleware.UserID(c)
	if uid == 0 {
		return c.JSON(http.StatusOK, map[string]any{"logged_in": false})
	}
	user, err := h.repo.FindByID(uid)
	if err != nil {
		return c.JSON(http.StatusOK, map[string]any{"logged_in": false})
	}
	profileDict := map[string]any{}
	if profile, err := h.repo.ProfileByUserID(uid); err == nil {
		profileDict = profile.ToDict()
	}
	return c.JSON(http.StatusOK, map[string]any{
		"logged_in": true,
		"user":      user.ToDict(),
		"profile":   profileDict,
	})
}

type profileReq struct {
	FullName         string   `json:"full_name"`
	Age              *int     `json:"age"`
	Location         string   `json:"location"`
	FieldSizeAcres   *float64 `json:"field_size_acres"`
	SoilType         string   `json:"soil_type"`
	SoilPH           *float64 `json:"soil_ph"`
	SoilQualityNotes string   `json:"soil_quality_notes"`
	BudgetINR        *int     `json:"budget_inr"`
	PreviousCrops    []string `json:"previous_crops"`
	PlannedCrops     []string `json:"planned_crops"`
	Irrigation       string   `json:"irrigation"`
	OtherNotes       string   `json:"other_notes"`
}

func (h *AuthCtrl) UpdateProfile(c echo.Context) error {
	uid := middleware.UserID(c)
	var req profileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}

	profile, err := h.repo.ProfileByUserID(uid)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return serverError(c, err)
		}
		profile = &entities.FarmerProfile{UserID: uid}
	}

	prevJSON, _ := json.Marshal(orEmpty(req.PreviousCrops))
	planJSON, _ := json.Marshal(orEmpty(req.PlannedCrops))

	profile.FullName = strings.TrimSpace(req.FullName)
	profile.Age = req.Age
	profile.Location = strings.TrimSpace(req.Location)
	profile.FieldSizeAcres = req.FieldSizeAcres
	profile.SoilType = strings.TrimSpace(req.SoilType)
	profile.SoilPH = req.SoilPH
	profile.SoilQualityNotes = strings.TrimSpace(req.SoilQualityNotes)
	profile.BudgetINR = req.BudgetINR
	profile.PreviousCrops = string(prevJSON)
	profile.PlannedCrops = string(planJSON)
	profile.Irrigation = strings.TrimSpace(req.Irrigation)
	profile.OtherNotes = strings.TrimSpace(req.OtherNotes)
	profile.UpdatedAt = time.Now().UTC()

	if err := h.repo.SaveProfile(profile); err != nil {
		return serverError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "profile": profile.ToDict()})
}

// Recommend asks the AI for crop recommendations from the stored farmer
// profile, degrading to fixed demo data when the model is unavailable.
func (h *AuthCtrl) Recommend(c echo.Context) error {
	uid := middleware.UserID(c)
	profile, err := h.repo.ProfileByUserID(uid)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Profile not found."})
	}

	var req struct {
		Location string `json:"location"`
	}
	_ = c.Bind(&req)

	ctx := buildRecommendContext(profile, req.Location)

	if !h.aiClient.Available() {
		return c.JSON(http.StatusOK, map[string]any{
			"success":        true,
			"recommendation": ai.DemoRecommendation(ctx),
			"demo":           true,
		})
	}

	recommendation, err := h.aiClient.RecommendCrops(c.Request().Context(), ctx)
	if err != nil {
		logger.Log.Warnf("AI recommendation failed: %v. Using demo.", err)
		return c.JSON(http.StatusOK, map[string]any{
			"success":        true,
			"recommendation": ai.DemoRecommendation(ctx),
			"demo":           true,
		})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success":        true,
		"recommendation": recommendation,
		"demo":           false,
	})
}

func buildRecommendContext(p *entities.FarmerProfile, fallbackLocation string) ai.RecommendContext {
	ctx := ai.RecommendContext{
		Location:       p.Location,
		SoilType:       p.SoilType,
		SoilPH:         6.5,
		FieldSizeAcres: 2,
		BudgetINR:      10000,
		Irrigation:     p.Irrigation,
		PlannedCrops:   p.PlannedCropList(),
		PreviousCrops:  p.PreviousCropList(),
	}
	if ctx.Location == "" {
		ctx.Location = fallbackLocation
	}
	if ctx.Location == "" {
		ctx.Location = "Unknown"
	}
	if ctx.SoilType == "" {
		ctx.SoilType = "Loamy"
	}
	if ctx.Irrigation == "" {
		ctx.Irrigation = "Rain-fed"
	}
	if p.SoilPH != nil {
		ctx.SoilPH = *p.SoilPH
	}
	if p.FieldSizeAcres != nil {
		ctx.FieldSizeAcres = *p.FieldSizeAcres
	}
	if p.BudgetINR != nil {
		ctx.BudgetINR = *p.BudgetINR
	}
	return ctx
}

func (h *AuthCtrl) setSession(c echo.Context, userID uint) error {
	token, err := auth.IssueToken(h.jwtSecret, userID)
	if err != nil {
		return err
	}
	c.SetCookie(&http.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int((7 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func normalizePhone(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}

func orEmpty(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

func serverError(c echo.Context, err error) error {
	logger.Log.Errorf("auth: %v", err)
	return c.JSON(http.StatusInternalServerError, map[string]any{
		"error": "Server error.",
		"type":  "server_error",
	})
}
