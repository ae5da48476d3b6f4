package entities

import (
	"encoding/json"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"size:180;uniqueIndex;not null" json:"email"`
	Phone        *string   `gorm:"size:20" json:"phone"`
	PasswordHash string    `gorm:"size:256;not null" json:"-"`
	Role         string    `gorm:"size:20;default:farmer" json:"role"` // farmer | admin
	CreatedAt    time.Time `json:"created_at"`

	Profile *FarmerProfile `json:"-"`
}

func (u *User) SetPassword(raw string) error {
	h, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(h)
	return nil
}

func (u *User) CheckPassword(raw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(raw)) == nil
}

func (u *User) ToDict() map[string]any {
	return map[string]any{
		"id":    u.ID,
		"email": u.Email,
		"phone": u.Phone,
		"role":  u.Role,
	}
}

// FarmerProfile holds the farm context used for AI crop recommendations.
type FarmerProfile struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	FullName         string    `gorm:"size:120" json:"full_name"`
	Age              *int      `json:"age"`
	Location         string    `gorm:"size:200" json:"location"`
	FieldSizeAcres   *float64  `json:"field_size_acres"`
	SoilType         string    `gorm:"size:80" json:"soil_type"` // Sandy / Clay / Loamy / Silty
	SoilPH           *float64  `json:"soil_ph"`
	SoilQualityNotes string    `json:"soil_quality_notes"`
	BudgetINR        *int      `json:"budget_inr"`
	PreviousCrops    string    `json:"-"` // JSON list
	PlannedCrops     string    `json:"-"` // JSON list
	Irrigation       string    `gorm:"size:80" json:"irrigation"` // Drip / Flood / Rain-fed / None
	OtherNotes       string    `json:"other_notes"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (p *FarmerProfile) ToDict() map[string]any {
	return map[string]any{
		"full_name":          p.FullName,
		"age":                p.Age,
		"location":           p.Location,
		"field_size_acres":   p.FieldSizeAcres,
		"soil_type":          p.SoilType,
		"soil_ph":            p.SoilPH,
		"soil_quality_notes": p.SoilQualityNotes,
		"budget_inr":         p.BudgetINR,
		"previous_crops":     decodeList(p.PreviousCrops),
		"planned_crops":      decodeList(p.PlannedCrops),
		"irrigation":         p.Irrigation,
		"other_notes":        p.OtherNotes,
	}
}

// PreviousCropList decodes the stored previous_crops JSON list.
func (p *FarmerProfile) PreviousCropList() []string { return decodeList(p.PreviousCrops) }

// PlannedCropList decodes the stored planned_crops JSON list.
func (p *FarmerProfile) PlannedCropList() []string { return decodeList(p.PlannedCrops) }

func decodeList(v string) []string {
	out := []string{}
	if v == "" {
		return out
	}
	if err := json.Unmarshal([]byte(v), &out); err != nil {
		return []string{}
	}
	return out
}
