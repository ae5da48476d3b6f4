package repositoryImp

import (
	"gorm.io/gorm"

	"agricopilot/entities"
	"agricopilot/pkg/scan/repository"
)

type scanRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.ScanRepository { return &scanRepo{db} }

func (r *scanRepo) Create(rec *entities.ScanRecord) error { return r.db.Create(rec).Error }

func (r *scanRepo) Recent(limit int) ([]entities.ScanRecord, error) {
	var recs []entities.ScanRecord
	if err := r.db.Order("timestamp DESC").Limit(limit).Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *scanRepo) FindByID(id uint) (*entities.ScanRecord, error) {
	var rec entities.ScanRecord
	if err := r.db.First(&rec, id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}
