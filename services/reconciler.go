package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Avinash-pradhan/Pradhan-Chemistry-Classes/models"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// ErrSignatureInvalid is returned by the redirect-verify path when the
// gateway signature does not check out. The Failed status and the offered
// proof fields are still recorded as an audit trail.
var ErrSignatureInvalid = errors.New("payment signature verification failed")

// Outcome is a gateway-reported payment result resolved to the canonical
// status, carrying the proof artifacts to persist alongside it.
type Outcome struct {
	Status      models.PaymentStatus
	Gateway     models.PaymentGateway
	Method      models.PaymentMethod
	PaymentID   string
	ReferenceID string
	Signature   string
	RawResponse []byte
}

// ReconcileStore provides the row-scoped transactional boundary: fn runs
// with the payment (looked up by order id) and its admission locked, and
// both rows are persisted after fn returns nil.
type ReconcileStore interface {
	ReconcileByOrderID(ctx context.Context, orderID string, fn func(payment *models.Payment, admission *models.Admission) error) error
}

// Reconciler applies gateway outcomes to local payment state. All three
// delivery channels (redirect-verify, webhook callback, status poll) funnel
// into Apply, which is idempotent on the order id: replaying a Paid outcome
// changes nothing and never re-notifies.
type Reconciler struct {
	store    ReconcileStore
	notifier *Notifier
	logger   *zap.Logger
}

func NewReconciler(store ReconcileStore, notifier *Notifier, logger *zap.Logger) *Reconciler {
	return &Reconciler{store: store, notifier: notifier, logger: logger}
}

var (
	paidVocabulary   = map[string]bool{"COMPLETED": true, "SUCCESS": true, "PAYMENT_SUCCESS": true}
	failedVocabulary = map[string]bool{"FAILED": true, "ERROR": true, "PAYMENT_ERROR": true}
)

// MapGatewayStatus canonicalizes the provider's status vocabulary, checking
// both the state field and the response-code field case-insensitively.
// Anything unrecognized maps to Pending and causes no transition.
func MapGatewayStatus(state, code string) models.PaymentStatus {
	s := strings.ToUpper(strings.TrimSpace(state))
	c := strings.ToUpper(strings.TrimSpace(code))
	if paidVocabulary[s] || paidVocabulary[c] {
		return models.PaymentStatusPaid
	}
	if failedVocabulary[s] || failedVocabulary[c] {
		return models.PaymentStatusFailed
	}
	return models.PaymentStatusPending
}

// Apply is the canonical transition. Proof fields are recorded
// unconditionally; the status transition honors monotonicity (Paid never
// regresses) and sets paid_at exactly once. A Paid outcome propagates the
// amount to the admission and fires the one-shot notification inside the
// same transactional boundary.
func (r *Reconciler) Apply(ctx context.Context, orderID string, out Outcome) (*models.Payment, error) {
	var applied *models.Payment
	err := r.store.ReconcileByOrderID(ctx, orderID, func(payment *models.Payment, admission *models.Admission) error {
		if out.Gateway != "" {
			payment.Gateway = out.Gateway
		}
		if out.Method != "" {
			payment.Method = out.Method
		}
		payment.PaymentID = out.PaymentID
		payment.ReferenceID = out.ReferenceID
		if out.Signature != "" {
			payment.Signature = out.Signature
		}
		if len(out.RawResponse) > 0 {
			payment.GatewayResponse = datatypes.JSON(out.RawResponse)
		}

		switch out.Status {
		case models.PaymentStatusPaid:
			if payment.Status != models.PaymentStatusPaid {
				payment.Status = models.PaymentStatusPaid
			}
			if payment.PaidAt == nil {
				now := time.Now()
				payment.PaidAt = &now
			}
			admission.FeePaid = payment.Amount
			admission.FeeStatus = models.FeeStatusPaid
			r.notifier.MaybeNotify(ctx, admission, payment)
		case models.PaymentStatusFailed:
			// Paid is terminal; a late Failed report never regresses it.
			if payment.Status != models.PaymentStatusPaid {
				payment.Status = models.PaymentStatusFailed
			}
		default:
			// Pending: provider reported an intermediate state, no transition.
		}

		applied = payment
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("Payment outcome applied",
		zap.String("order_id", orderID),
		zap.String("status", string(applied.Status)),
	)
	return applied, nil
}

// ApplyRedirectVerify handles the synchronous browser-redirect channel.
// valid reflects the signature check; an invalid signature records a Failed
// status with the offered proof fields and returns ErrSignatureInvalid.
func (r *Reconciler) ApplyRedirectVerify(ctx context.Context, orderID, paymentID, signature string, valid bool) (*models.Payment, error) {
	out := Outcome{
		Gateway:   models.GatewayRazorpay,
		Method:    models.PaymentMethodOnline,
		PaymentID: paymentID,
		Signature: signature,
		Status:    models.PaymentStatusPaid,
	}
	if !valid {
		out.Status = models.PaymentStatusFailed
	}

	payment, err := r.Apply(ctx, orderID, out)
	if err != nil {
		return nil, err
	}
	if !valid {
		return payment, ErrSignatureInvalid
	}
	return payment, nil
}
