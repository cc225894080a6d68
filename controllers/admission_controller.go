package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Avinash-pradhan/Pradhan-Chemistry-Classes/config"
	"github.com/Avinash-pradhan/Pradhan-Chemistry-Classes/models"
	"github.com/Avinash-pradhan/Pradhan-Chemistry-Classes/repository"
	"github.com/Avinash-pradhan/Pradhan-Chemistry-Classes/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AdmissionController struct {
	Cfg        *config.Config
	Service    *services.AdmissionService
	Admissions repository.AdmissionRepository
	Payments   repository.PaymentRepository
	Logger     *zap.Logger
}

func NewAdmissionController(cfg *config.Config, service *services.AdmissionService,
	admissions repository.AdmissionRepository, payments repository.PaymentRepository,
	logger *zap.Logger) *AdmissionController {
	return &AdmissionController{
		Cfg:        cfg,
		Service:    service,
		Admissions: admissions,
		Payments:   payments,
		Logger:     logger,
	}
}

type admissionRequest struct {
	Name         string `json:"name" binding:"required,max=100"`
	Mobile       string `json:"mobile" binding:"required,len=10,numeric"`
	WhatsApp     string `json:"whatsapp" binding:"omitempty,len=10,numeric"`
	Address      string `json:"address" binding:"omitempty,max=500"`
	StudentClass string `json:"student_class" binding:"required,oneof=11 12"`
	Board        string `json:"board" binding:"required,oneof=CBSE BSEB"`
	Medium       string `json:"medium" binding:"required,oneof=Hindi English"`
	BatchID      *uint  `json:"batch_id"`
}

// Create registers a new admission from the public form.
func (ac *AdmissionController) Create(c *gin.Context) {
	var req admissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid admission form: " + err.Error()})
		return
	}

	result, err := ac.Service.Register(c.Request.Context(), services.IntakeRequest{
		Name:         req.Name,
		Mobile:       req.Mobile,
		WhatsApp:     req.WhatsApp,
		Address:      req.Address,
		StudentClass: models.ClassLevel(req.StudentClass),
		Board:        models.Board(req.Board),
		Medium:       models.Medium(req.Medium),
		BatchID:      req.BatchID,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrBatchNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Selected batch does not exist"})
		case errors.Is(err, services.ErrBatchMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Selected batch does not match the chosen class and medium"})
		case errors.Is(err, services.ErrBatchFull):
			c.JSON(http.StatusConflict, gin.H{"error": "Selected batch has no seats left"})
		default:
			ac.Logger.Error("Failed to register admission", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"admission_id":  result.Admission.ID,
		"fee_amount":    result.Admission.FeeAmount,
		"offer_applied": result.OfferApplied,
		"message":       "Admission submitted successfully",
	})
}

// Get returns an admission with its payment state and, when a fee is still
// due, a UPI deep link the student can pay with directly.
func (ac *AdmissionController) Get(c *gin.Context) {
	admissionID, err := parseIDParam(c, "admission_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid admission id"})
		return
	}

	admission, err := ac.Admissions.AdmissionByID(c.Request.Context(), admissionID)
	if err != nil {
		if errors.Is(err, repository.ErrAdmissionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Admission not found"})
			return
		}
		ac.Logger.Error("Failed to load admission", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	resp := gin.H{
		"admission":            admission,
		"fee_due":              admission.FeeDue(),
		"online_payment_ready": ac.Cfg.OnlinePaymentReady(),
	}
	if admission.FeeDue() > 0 && ac.Cfg.UPIID != "" {
		resp["upi_link"] = ac.upiLink(admission)
	}
	c.JSON(http.StatusOK, resp)
}

// Receipt returns the data a paid admission's fee receipt is rendered from.
func (ac *AdmissionController) Receipt(c *gin.Context) {
	admissionID, err := parseIDParam(c, "admission_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid admission id"})
		return
	}

	admission, err := ac.Admissions.AdmissionByID(c.Request.Context(), admissionID)
	if err != nil {
		if errors.Is(err, repository.ErrAdmissionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Admission not found"})
			return
		}
		ac.Logger.Error("Failed to load admission", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	payment, err := ac.Payments.PaymentByAdmissionID(c.Request.Context(), admissionID)
	if err != nil || payment.Status != models.PaymentStatusPaid {
		c.JSON(http.StatusConflict, gin.H{"error": "No completed payment for this admission"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"receiver":     ac.Cfg.ReceiverName,
		"receipt_no":   fmt.Sprintf("RCPT-%d", payment.ID),
		"student_name": admission.Student.Name,
		"class":        admission.StudentClass,
		"board":        admission.Board,
		"medium":       admission.Medium,
		"amount":       payment.Amount,
		"order_id":     payment.OrderID,
		"reference_id": payment.ReferenceID,
		"paid_at":      payment.PaidAt,
	})
}

func (ac *AdmissionController) upiLink(admission *models.Admission) string {
	params := url.Values{}
	params.Set("pa", ac.Cfg.UPIID)
	params.Set("pn", ac.Cfg.ReceiverName)
	params.Set("am", fmt.Sprintf("%d", admission.FeeDue()))
	params.Set("cu", "INR")
	params.Set("tn", fmt.Sprintf("Admission %d fee", admission.ID))
	return "upi://pay?" + params.Encode()
}
