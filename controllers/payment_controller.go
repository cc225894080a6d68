package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Avinash-pradhan/Pradhan-Chemistry-Classes/config"
	"github.com/Avinash-pradhan/Pradhan-Chemistry-Classes/gateway"
	"github.com/Avinash-pradhan/Pradhan-Chemistry-Classes/models"
	"github.com/Avinash-pradhan/Pradhan-Chemistry-Classes/repository"
	"github.com/Avinash-pradhan/Pradhan-Chemistry-Classes/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type PaymentController struct {
	Cfg        *config.Config
	Razorpay   *gateway.RazorpayClient
	PhonePe    *gateway.PhonePeClient
	Payments   repository.PaymentRepository
	Admissions repository.AdmissionRepository
	Reconciler *services.Reconciler
	Logger     *zap.Logger
}

func NewPaymentController(cfg *config.Config, razorpay *gateway.RazorpayClient, phonePe *gateway.PhonePeClient,
	payments repository.PaymentRepository, admissions repository.AdmissionRepository,
	reconciler *services.Reconciler, logger *zap.Logger) *PaymentController {
	return &PaymentController{
		Cfg:        cfg,
		Razorpay:   razorpay,
		PhonePe:    phonePe,
		Payments:   payments,
		Admissions: admissions,
		Reconciler: reconciler,
		Logger:     logger,
	}
}

// StartPayment creates (or refreshes) the gateway-side payment intent for an
// admission and returns what the client needs to continue: a checkout
// descriptor for Razorpay, a redirect URL for PhonePe. Calling it again for
// an already-paid admission is a no-op.
func (pc *PaymentController) StartPayment(c *gin.Context) {
	admissionID, err := parseIDParam(c, "admission_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid admission id"})
		return
	}

	admission, err := pc.Admissions.AdmissionByID(c.Request.Context(), admissionID)
	if err != nil {
		if errors.Is(err, repository.ErrAdmissionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Admission not found"})
			return
		}
		pc.Logger.Error("Failed to load admission", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	payment, err := pc.Payments.PaymentByAdmissionID(c.Request.Context(), admissionID)
	if err != nil {
		if !errors.Is(err, repository.ErrPaymentNotFound) {
			pc.Logger.Error("Failed to load payment", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		payment = &models.Payment{
			AdmissionID: admission.ID,
			Amount:      admission.FeeDue(),
			Status:      models.PaymentStatusPending,
		}
		if err := pc.Payments.CreatePayment(c.Request.Context(), payment); err != nil {
			pc.Logger.Error("Failed to create payment", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
	}

	if payment.Status == models.PaymentStatusPaid {
		c.JSON(http.StatusOK, gin.H{
			"status":  payment.Status,
			"message": "Payment already completed for this admission",
		})
		return
	}

	if payment.Amount <= 0 {
		payment.Amount = admission.FeeDue()
	}
	if payment.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fee due for this admission"})
		return
	}

	// A fresh order id is generated on first start and again after a failed
	// attempt, so a retry never reuses an order the gateway already settled.
	if payment.OrderID == "" || payment.Status == models.PaymentStatusFailed {
		payment.OrderID = fmt.Sprintf("ADM%d%d", admission.ID, time.Now().Unix())
		payment.Status = models.PaymentStatusPending
	}

	switch pc.Cfg.Gateway {
	case models.GatewayRazorpay:
		pc.startRazorpay(c, admission, payment)
	case models.GatewayPhonePe:
		pc.startPhonePe(c, admission, payment)
	default:
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Online payment is not configured"})
	}
}

func (pc *PaymentController) startRazorpay(c *gin.Context, admission *models.Admission, payment *models.Payment) {
	order, err := pc.Razorpay.CreateOrder(c.Request.Context(), int64(payment.Amount)*100, payment.OrderID)
	if err != nil {
		pc.gatewayError(c, "Razorpay", err)
		return
	}

	payment.OrderID = order.ID
	payment.Gateway = models.GatewayRazorpay
	payment.Method = models.PaymentMethodOnline
	payment.GatewayResponse = datatypes.JSON(order.Raw)
	if err := pc.Payments.SavePayment(c.Request.Context(), payment); err != nil {
		pc.Logger.Error("Failed to save payment order", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	pc.Logger.Info("Razorpay order created",
		zap.Uint("admission_id", admission.ID),
		zap.String("order_id", order.ID),
	)
	c.JSON(http.StatusOK, gin.H{
		"gateway":  models.GatewayRazorpay,
		"key_id":   pc.Cfg.RazorpayKeyID,
		"order_id": order.ID,
		"amount":   order.Amount,
		"currency": order.Currency,
		"name":     pc.Cfg.ReceiverName,
	})
}

func (pc *PaymentController) startPhonePe(c *gin.Context, admission *models.Admission, payment *models.Payment) {
	resp, err := pc.PhonePe.CreatePayment(c.Request.Context(), gateway.PayRequest{
		MerchantTransactionID: payment.OrderID,
		MerchantUserID:        fmt.Sprintf("ADMUSER%d", admission.ID),
		AmountPaise:           int64(payment.Amount) * 100,
		RedirectURL:           fmt.Sprintf("%s/payments/poll/%d", pc.Cfg.PublicBaseURL, admission.ID),
		CallbackURL:           pc.Cfg.PublicBaseURL + "/payments/phonepe/callback",
		MobileNumber:          admission.Student.Mobile,
	})
	if err != nil {
		pc.gatewayError(c, "PhonePe", err)
		return
	}

	payment.Gateway = models.GatewayPhonePe
	payment.Method = models.PaymentMethodOnline
	payment.GatewayResponse = datatypes.JSON(resp.Raw)
	if err := pc.Payments.SavePayment(c.Request.Context(), payment); err != nil {
		pc.Logger.Error("Failed to save payment order", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	pc.Logger.Info("PhonePe transaction created",
		zap.Uint("admission_id", admission.ID),
		zap.String("order_id", payment.OrderID),
	)
	c.JSON(http.StatusOK, gin.H{
		"gateway":      models.GatewayPhonePe,
		"order_id":     payment.OrderID,
		"redirect_url": resp.RedirectURL,
	})
}

type verifyRequest struct {
	OrderID   string `form:"razorpay_order_id" json:"razorpay_order_id" binding:"required"`
	PaymentID string `form:"razorpay_payment_id" json:"razorpay_payment_id" binding:"required"`
	Signature string `form:"razorpay_signature" json:"razorpay_signature" binding:"required"`
}

// VerifyRedirect handles the browser redirect back from Razorpay checkout.
// The signature is checked before any state changes; an invalid one still
// records the attempt as Failed for the audit trail.
func (pc *PaymentController) VerifyRedirect(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing verification fields"})
		return
	}

	valid := pc.Razorpay.VerifySignature(req.OrderID, req.PaymentID, req.Signature)
	payment, err := pc.Reconciler.ApplyRedirectVerify(c.Request.Context(), req.OrderID, req.PaymentID, req.Signature, valid)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrPaymentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
		case errors.Is(err, services.ErrSignatureInvalid):
			pc.Logger.Warn("Payment signature verification failed",
				zap.String("order_id", req.OrderID),
				zap.String("payment_id", req.PaymentID),
			)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Payment verification failed"})
		default:
			pc.Logger.Error("Failed to apply payment verification", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  payment.Status,
		"message": "Payment verified successfully",
	})
}

// PollStatus asks the gateway for the current state of an admission's
// payment and applies the result. Safe to call any number of times.
func (pc *PaymentController) PollStatus(c *gin.Context) {
	admissionID, err := parseIDParam(c, "admission_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid admission id"})
		return
	}

	payment, err := pc.Payments.PaymentByAdmissionID(c.Request.Context(), admissionID)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
			return
		}
		pc.Logger.Error("Failed to load payment", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if payment.OrderID == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment has not been started"})
		return
	}

	if payment.Status != models.PaymentStatusPaid {
		var outcome *services.Outcome
		switch payment.Gateway {
		case models.GatewayPhonePe:
			outcome, err = pc.pollPhonePe(c, payment)
		case models.GatewayRazorpay:
			outcome, err = pc.pollRazorpay(c, payment)
		}
		if err != nil {
			pc.gatewayError(c, string(payment.Gateway), err)
			return
		}
		if outcome != nil {
			payment, err = pc.Reconciler.Apply(c.Request.Context(), payment.OrderID, *outcome)
			if err != nil {
				pc.Logger.Error("Failed to apply polled status", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
				return
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   payment.Status,
		"order_id": payment.OrderID,
		"amount":   payment.Amount,
		"paid_at":  payment.PaidAt,
	})
}

func (pc *PaymentController) pollPhonePe(c *gin.Context, payment *models.Payment) (*services.Outcome, error) {
	status, err := pc.PhonePe.FetchStatus(c.Request.Context(), payment.OrderID)
	if err != nil {
		return nil, err
	}
	return &services.Outcome{
		Status:      services.MapGatewayStatus(status.State, status.Code),
		Gateway:     models.GatewayPhonePe,
		Method:      models.PaymentMethodOnline,
		PaymentID:   status.TransactionID,
		ReferenceID: status.ReferenceID,
		RawResponse: status.Raw,
	}, nil
}

func (pc *PaymentController) pollRazorpay(c *gin.Context, payment *models.Payment) (*services.Outcome, error) {
	order, err := pc.Razorpay.FetchOrder(c.Request.Context(), payment.OrderID)
	if err != nil {
		return nil, err
	}
	status := models.PaymentStatusPending
	if order.Status == "paid" {
		status = models.PaymentStatusPaid
	}
	return &services.Outcome{
		Status:      status,
		Gateway:     models.GatewayRazorpay,
		Method:      models.PaymentMethodOnline,
		PaymentID:   payment.PaymentID,
		ReferenceID: payment.ReferenceID,
		RawResponse: order.Raw,
	}, nil
}

func (pc *PaymentController) gatewayError(c *gin.Context, provider string, err error) {
	var rejected *gateway.RejectedError
	switch {
	case errors.Is(err, gateway.ErrConfigMissing):
		pc.Logger.Warn("Gateway not configured", zap.String("provider", provider))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Online payment is not configured"})
	case errors.As(err, &rejected):
		pc.Logger.Error("Gateway rejected request",
			zap.String("provider", rejected.Provider),
			zap.Int("status", rejected.Status),
			zap.String("detail", rejected.Detail),
		)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Payment gateway rejected the request"})
	case errors.Is(err, gateway.ErrUnavailable):
		pc.Logger.Error("Gateway unreachable", zap.String("provider", provider), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Payment gateway is unreachable, please try again"})
	default:
		pc.Logger.Error("Gateway call failed", zap.String("provider", provider), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func parseIDParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return uint(id), nil
}
