package services

import (
	"context"
	"errors"
	"time"

	"github.com/Avinash-pradhan/Pradhan-Chemistry-Classes/models"
	"github.com/Avinash-pradhan/Pradhan-Chemistry-Classes/repository"
	"go.uber.org/zap"
)

var (
	ErrBatchFull     = errors.New("selected batch is full")
	ErrBatchMismatch = errors.New("selected batch does not match class and medium")
)

type IntakeRequest struct {
	Name         string
	Mobile       string
	WhatsApp     string
	Address      string
	StudentClass models.ClassLevel
	Board        models.Board
	Medium       models.Medium
	BatchID      *uint
}

// IntakeResult carries the created admission plus fee-plan context for the
// confirmation response.
type IntakeResult struct {
	Admission    *models.Admission
	OfferApplied bool
	PlanMissing  bool
}

type AdmissionService struct {
	admissions repository.AdmissionRepository
	catalog    repository.CatalogRepository
	logger     *zap.Logger
}

func NewAdmissionService(admissions repository.AdmissionRepository, catalog repository.CatalogRepository, logger *zap.Logger) *AdmissionService {
	return &AdmissionService{admissions: admissions, catalog: catalog, logger: logger}
}

// Register creates the student, admission and pending payment records for a
// submitted form. A missing fee plan is not fatal: the admission is accepted
// with a zero fee and flagged for the operator.
func (s *AdmissionService) Register(ctx context.Context, req IntakeRequest) (*IntakeResult, error) {
	if req.BatchID != nil {
		batch, err := s.catalog.BatchByID(ctx, *req.BatchID)
		if err != nil {
			return nil, err
		}
		if batch.StudentClass != req.StudentClass || batch.Medium != req.Medium {
			return nil, ErrBatchMismatch
		}
		if batch.IsFull() {
			return nil, ErrBatchFull
		}
	}

	feeAmount := 0
	offerApplied := false
	planMissing := false
	plan, err := s.catalog.FeePlanFor(ctx, req.StudentClass, req.Medium)
	switch {
	case err == nil:
		feeAmount, offerApplied = plan.CurrentFee(time.Now())
	case errors.Is(err, repository.ErrFeePlanNotFound):
		planMissing = true
		s.logger.Warn("Fee plan missing for intake",
			zap.String("class", string(req.StudentClass)),
			zap.String("medium", string(req.Medium)),
		)
	default:
		return nil, err
	}

	student := &models.Student{
		Name:     req.Name,
		Mobile:   req.Mobile,
		WhatsApp: req.WhatsApp,
		Address:  req.Address,
	}
	admission := &models.Admission{
		StudentClass: req.StudentClass,
		Board:        req.Board,
		Medium:       req.Medium,
		BatchID:      req.BatchID,
		FeeAmount:    feeAmount,
		FeeStatus:    models.FeeStatusPending,
	}
	payment := &models.Payment{
		Amount: feeAmount,
		Status: models.PaymentStatusPending,
	}

	if err := s.admissions.CreateIntake(ctx, student, admission, payment); err != nil {
		return nil, err
	}
	admission.Student = *student

	s.logger.Info("Admission registered",
		zap.Uint("admission_id", admission.ID),
		zap.Int("fee_amount", feeAmount),
		zap.Bool("offer_applied", offerApplied),
	)

	return &IntakeResult{
		Admission:    admission,
		OfferApplied: offerApplied,
		PlanMissing:  planMissing,
	}, nil
}
