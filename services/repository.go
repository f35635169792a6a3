package services

import (
	"errors"
	"time"

	"scholarship-portal-api/config"
	"scholarship-portal-api/models"

	"gorm.io/gorm"
)

// ApplicationRepository is the persistence boundary for applications. The
// production implementation is GORM-backed; tests substitute fakes.
type ApplicationRepository interface {
	Create(app *models.Application) error
	FindByTrackingID(trackingID string) (*models.Application, error)
	UpdateFields(trackingID string, fields map[string]interface{}) error
	ListAll() ([]models.Application, error)
	AppendStatusHistory(entry *models.ApplicationStatusHistory) error
}

type gormApplicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository returns the GORM-backed repository. A nil db
// falls back to the shared config.DB handle.
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &gormApplicationRepository{db: db}
}

func (r *gormApplicationRepository) conn() *gorm.DB {
	if r.db != nil {
		return r.db
	}
	return config.DB
}

func (r *gormApplicationRepository) Create(app *models.Application) error {
	return r.conn().Create(app).Error
}

func (r *gormApplicationRepository) FindByTrackingID(trackingID string) (*models.Application, error) {
	var app models.Application
	if err := r.conn().Where("tracking_id = ?", trackingID).First(&app).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *gormApplicationRepository) UpdateFields(trackingID string, fields map[string]interface{}) error {
	if _, ok := fields["update_at"]; !ok {
		fields["update_at"] = time.Now()
	}

	result := r.conn().Model(&models.Application{}).
		Where("tracking_id = ?", trackingID).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (r *gormApplicationRepository) ListAll() ([]models.Application, error) {
	var apps []models.Application
	err := r.conn().Order("create_at DESC").Find(&apps).Error
	return apps, err
}

func (r *gormApplicationRepository) AppendStatusHistory(entry *models.ApplicationStatusHistory) error {
	return r.conn().Create(entry).Error
}
