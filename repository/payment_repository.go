package repository

import (
	"context"
	"errors"

	"github.com/Avinash-pradhan/Pradhan-Chemistry-Classes/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrPaymentNotFound   = errors.New("payment not found")
	ErrAdmissionNotFound = errors.New("admission not found")
)

type PaymentRepository interface {
	CreatePayment(ctx context.Context, payment *models.Payment) error
	PaymentByAdmissionID(ctx context.Context, admissionID uint) (*models.Payment, error)
	PaymentByOrderID(ctx context.Context, orderID string) (*models.Payment, error)
	SavePayment(ctx context.Context, payment *models.Payment) error
	ReconcileByOrderID(ctx context.Context, orderID string, fn func(payment *models.Payment, admission *models.Admission) error) error
}

type gormPaymentRepo struct {
	db *gorm.DB
}

func NewGormPaymentRepo(db *gorm.DB) PaymentRepository {
	return &gormPaymentRepo{db: db}
}

func (r *gormPaymentRepo) CreatePayment(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *gormPaymentRepo) PaymentByAdmissionID(ctx context.Context, admissionID uint) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).Where("admission_id = ?", admissionID).First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *gormPaymentRepo) PaymentByOrderID(ctx context.Context, orderID string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *gormPaymentRepo) SavePayment(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Save(payment).Error
}

// ReconcileByOrderID runs fn inside a transaction with the payment row and
// its admission row locked, then persists both. Concurrent deliveries for the
// same order id serialize here; a lookup miss performs zero writes.
func (r *gormPaymentRepo) ReconcileByOrderID(ctx context.Context, orderID string, fn func(payment *models.Payment, admission *models.Admission) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var payment models.Payment
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("order_id = ?", orderID).
			First(&payment).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentNotFound
			}
			return err
		}

		var admission models.Admission
		err = tx.Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: "admissions"}}).
			Preload("Student").
			First(&admission, payment.AdmissionID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAdmissionNotFound
			}
			return err
		}

		if err := fn(&payment, &admission); err != nil {
			return err
		}

		if err := tx.Save(&payment).Error; err != nil {
			return err
		}
		return tx.Omit("Student").Save(&admission).Error
	})
}
