package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Avinash-pradhan/Pradhan-Chemistry-Classes/models"
	"gorm.io/gorm"
)

var (
	ErrFeePlanNotFound = errors.New("fee plan not found")
	ErrBatchNotFound   = errors.New("batch not found")
)

type CatalogRepository interface {
	FeePlanFor(ctx context.Context, class models.ClassLevel, medium models.Medium) (*models.FeePlan, error)
	BatchesFor(ctx context.Context, class models.ClassLevel, medium models.Medium) ([]models.Batch, error)
	BatchByID(ctx context.Context, id uint) (*models.Batch, error)
	ActiveNotices(ctx context.Context, today time.Time) ([]models.Notice, error)
}

type gormCatalogRepo struct {
	db *gorm.DB
}

func NewGormCatalogRepo(db *gorm.DB) CatalogRepository {
	return &gormCatalogRepo{db: db}
}

func (r *gormCatalogRepo) FeePlanFor(ctx context.Context, class models.ClassLevel, medium models.Medium) (*models.FeePlan, error) {
	var plan models.FeePlan
	err := r.db.WithContext(ctx).
		Where("student_class = ? AND medium = ?", class, medium).
		First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeePlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (r *gormCatalogRepo) BatchesFor(ctx context.Context, class models.ClassLevel, medium models.Medium) ([]models.Batch, error) {
	var batches []models.Batch
	err := r.db.WithContext(ctx).
		Where("student_class = ? AND medium = ?", class, medium).
		Order("name").
		Find(&batches).Error
	if err != nil {
		return nil, err
	}
	return batches, nil
}

func (r *gormCatalogRepo) BatchByID(ctx context.Context, id uint) (*models.Batch, error) {
	var batch models.Batch
	err := r.db.WithContext(ctx).First(&batch, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBatchNotFound
		}
		return nil, err
	}
	return &batch, nil
}

func (r *gormCatalogRepo) ActiveNotices(ctx context.Context, today time.Time) ([]models.Notice, error) {
	var notices []models.Notice
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("start_date <= ?", today).
		Where("end_date IS NULL OR end_date >= ?", today).
		Order("created_at DESC").
		Find(&notices).Error
	if err != nil {
		return nil, err
	}
	return notices, nil
}
