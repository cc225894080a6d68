package services

import (
	"context"
	"testing"
	"time"

	"github.com/Avinash-pradhan/Pradhan-Chemistry-Classes/models"
	"github.com/Avinash-pradhan/Pradhan-Chemistry-Classes/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAdmissionRepo struct {
	createdStudent   *models.Student
	createdAdmission *models.Admission
	createdPayment   *models.Payment
}

func (r *fakeAdmissionRepo) AdmissionByID(ctx context.Context, id uint) (*models.Admission, error) {
	return nil, repository.ErrAdmissionNotFound
}

func (r *fakeAdmissionRepo) AdmissionByIDAndMobile(ctx context.Context, id uint, mobile string) (*models.Admission, error) {
	return nil, repository.ErrAdmissionNotFound
}

func (r *fakeAdmissionRepo) CreateIntake(ctx context.Context, student *models.Student, admission *models.Admission, payment *models.Payment) error {
	student.ID = 1
	admission.ID = 42
	admission.StudentID = student.ID
	payment.ID = 7
	payment.AdmissionID = admission.ID
	r.createdStudent = student
	r.createdAdmission = admission
	r.createdPayment = payment
	return nil
}

type fakeCatalogRepo struct {
	plan  *models.FeePlan
	batch *models.Batch
}

func (r *fakeCatalogRepo) FeePlanFor(ctx context.Context, class models.ClassLevel, medium models.Medium) (*models.FeePlan, error) {
	if r.plan == nil {
		return nil, repository.ErrFeePlanNotFound
	}
	return r.plan, nil
}

func (r *fakeCatalogRepo) BatchesFor(ctx context.Context, class models.ClassLevel, medium models.Medium) ([]models.Batch, error) {
	if r.batch == nil {
		return nil, nil
	}
	return []models.Batch{*r.batch}, nil
}

func (r *fakeCatalogRepo) BatchByID(ctx context.Context, id uint) (*models.Batch, error) {
	if r.batch == nil || r.batch.ID != id {
		return nil, repository.ErrBatchNotFound
	}
	return r.batch, nil
}

func (r *fakeCatalogRepo) ActiveNotices(ctx context.Context, today time.Time) ([]models.Notice, error) {
	return nil, nil
}

func intakeRequest() IntakeRequest {
	return IntakeRequest{
		Name:         "Ravi Kumar",
		Mobile:       "9876543210",
		StudentClass: models.Class12,
		Board:        models.BoardBSEB,
		Medium:       models.MediumHindi,
	}
}

func TestRegisterWithActiveOffer(t *testing.T) {
	admissions := &fakeAdmissionRepo{}
	catalog := &fakeCatalogRepo{
		plan: &models.FeePlan{
			StudentClass: models.Class12,
			Medium:       models.MediumHindi,
			OriginalFee:  2000,
			OfferFee:     1500,
			OfferEndDate: time.Now().AddDate(0, 1, 0),
		},
	}
	svc := NewAdmissionService(admissions, catalog, zap.NewNop())

	result, err := svc.Register(context.Background(), intakeRequest())
	require.NoError(t, err)

	assert.True(t, result.OfferApplied)
	assert.Equal(t, 1500, result.Admission.FeeAmount)
	assert.Equal(t, models.FeeStatusPending, result.Admission.FeeStatus)
	require.NotNil(t, admissions.createdPayment)
	assert.Equal(t, 1500, admissions.createdPayment.Amount)
	assert.Equal(t, models.PaymentStatusPending, admissions.createdPayment.Status)
	assert.Empty(t, admissions.createdPayment.OrderID)
}

func TestRegisterAfterOfferExpired(t *testing.T) {
	admissions := &fakeAdmissionRepo{}
	catalog := &fakeCatalogRepo{
		plan: &models.FeePlan{
			OriginalFee:  2000,
			OfferFee:     1500,
			OfferEndDate: time.Now().AddDate(0, 0, -1),
		},
	}
	svc := NewAdmissionService(admissions, catalog, zap.NewNop())

	result, err := svc.Register(context.Background(), intakeRequest())
	require.NoError(t, err)
	assert.False(t, result.OfferApplied)
	assert.Equal(t, 2000, result.Admission.FeeAmount)
}

func TestRegisterWithoutFeePlan(t *testing.T) {
	admissions := &fakeAdmissionRepo{}
	svc := NewAdmissionService(admissions, &fakeCatalogRepo{}, zap.NewNop())

	result, err := svc.Register(context.Background(), intakeRequest())
	require.NoError(t, err)
	assert.True(t, result.PlanMissing)
	assert.Equal(t, 0, result.Admission.FeeAmount)
}

func TestRegisterBatchValidation(t *testing.T) {
	batchID := uint(5)

	t.Run("unknown batch", func(t *testing.T) {
		svc := NewAdmissionService(&fakeAdmissionRepo{}, &fakeCatalogRepo{}, zap.NewNop())
		req := intakeRequest()
		req.BatchID = &batchID
		_, err := svc.Register(context.Background(), req)
		assert.ErrorIs(t, err, repository.ErrBatchNotFound)
	})

	t.Run("class mismatch", func(t *testing.T) {
		catalog := &fakeCatalogRepo{batch: &models.Batch{ID: 5, StudentClass: models.Class11, Medium: models.MediumHindi, TotalSeats: 30}}
		svc := NewAdmissionService(&fakeAdmissionRepo{}, catalog, zap.NewNop())
		req := intakeRequest()
		req.BatchID = &batchID
		_, err := svc.Register(context.Background(), req)
		assert.ErrorIs(t, err, ErrBatchMismatch)
	})

	t.Run("batch full", func(t *testing.T) {
		catalog := &fakeCatalogRepo{batch: &models.Batch{ID: 5, StudentClass: models.Class12, Medium: models.MediumHindi, TotalSeats: 30, FilledSeats: 30}}
		svc := NewAdmissionService(&fakeAdmissionRepo{}, catalog, zap.NewNop())
		req := intakeRequest()
		req.BatchID = &batchID
		_, err := svc.Register(context.Background(), req)
		assert.ErrorIs(t, err, ErrBatchFull)
	})
}
