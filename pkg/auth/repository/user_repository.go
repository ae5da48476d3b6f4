package repository

import "agricopilot/entities"

type UserRepository interface {
	CreateWithProfile(u *entities.User, p *entities.FarmerProfile) error
	FindByEmail(email string) (*entities.User, error)
	FindByID(id uint) (*entities.User, error)
	ProfileByUserID(userID uint) (*entities.FarmerProfile, error)
	SaveProfile(p *entities.FarmerProfile) error
}
