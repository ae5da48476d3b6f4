package repository

import "agricopilot/entities"

type ScanRepository interface {
	Create(r *entities.ScanRecord) error
	Recent(limit int) ([]entities.ScanRecord, error)
	FindByID(id uint) (*entities.ScanRecord, error)
}
