package repository

import (
	"context"
	"errors"

	"github.com/Avinash-pradhan/Pradhan-Chemistry-Classes/models"
	"gorm.io/gorm"
)

type AdmissionRepository interface {
	AdmissionByID(ctx context.Context, id uint) (*models.Admission, error)
	AdmissionByIDAndMobile(ctx context.Context, id uint, mobile string) (*models.Admission, error)
	CreateIntake(ctx context.Context, student *models.Student, admission *models.Admission, payment *models.Payment) error
}

type gormAdmissionRepo struct {
	db *gorm.DB
}

func NewGormAdmissionRepo(db *gorm.DB) AdmissionRepository {
	return &gormAdmissionRepo{db: db}
}

func (r *gormAdmissionRepo) AdmissionByID(ctx context.Context, id uint) (*models.Admission, error) {
	var admission models.Admission
	err := r.db.WithContext(ctx).Preload("Student").Preload("Batch").First(&admission, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdmissionNotFound
		}
		return nil, err
	}
	return &admission, nil
}

func (r *gormAdmissionRepo) AdmissionByIDAndMobile(ctx context.Context, id uint, mobile string) (*models.Admission, error) {
	var admission models.Admission
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Batch").
		Joins("JOIN students ON students.id = admissions.student_id").
		Where("admissions.id = ? AND students.mobile = ?", id, mobile).
		First(&admission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdmissionNotFound
		}
		return nil, err
	}
	return &admission, nil
}

// CreateIntake persists a new student, admission and pending payment in one
// transaction, claiming a batch seat when a batch was chosen.
func (r *gormAdmissionRepo) CreateIntake(ctx context.Context, student *models.Student, admission *models.Admission, payment *models.Payment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(student).Error; err != nil {
			return err
		}

		admission.StudentID = student.ID
		if err := tx.Omit("Student", "Batch").Create(admission).Error; err != nil {
			return err
		}

		payment.AdmissionID = admission.ID
		if err := tx.Create(payment).Error; err != nil {
			return err
		}

		if admission.BatchID != nil {
			return tx.Model(&models.Batch{}).
				Where("id = ?", *admission.BatchID).
				UpdateColumn("filled_seats", gorm.Expr("filled_seats + 1")).Error
		}
		return nil
	})
}
