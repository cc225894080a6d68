package controllers

import (
	"errors"
	"net/http"

	"github.com/Avinash-pradhan/Pradhan-Chemistry-Classes/repository"
	"github.com/Avinash-pradhan/Pradhan-Chemistry-Classes/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type StudentController struct {
	Admissions repository.AdmissionRepository
	Payments   repository.PaymentRepository
	Tokens     *services.TokenService
	Logger     *zap.Logger
}

func NewStudentController(admissions repository.AdmissionRepository, payments repository.PaymentRepository,
	tokens *services.TokenService, logger *zap.Logger) *StudentController {
	return &StudentController{
		Admissions: admissions,
		Payments:   payments,
		Tokens:     tokens,
		Logger:     logger,
	}
}

type studentLoginRequest struct {
	AdmissionID uint   `json:"admission_id" binding:"required"`
	Mobile      string `json:"mobile" binding:"required,len=10,numeric"`
}

// Login authenticates a student with their admission id and registered
// mobile number and issues a bearer token for the dashboard.
func (sc *StudentController) Login(c *gin.Context) {
	var req studentLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Admission id and mobile number are required"})
		return
	}

	admission, err := sc.Admissions.AdmissionByIDAndMobile(c.Request.Context(), req.AdmissionID, req.Mobile)
	if err != nil {
		if errors.Is(err, repository.ErrAdmissionNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "No admission found with this ID and mobile."})
			return
		}
		sc.Logger.Error("Failed student login lookup", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	token, err := sc.Tokens.Issue(admission.ID)
	if err != nil {
		sc.Logger.Error("Failed to issue student token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":        token,
		"admission_id": admission.ID,
		"student_name": admission.Student.Name,
	})
}

// Dashboard returns the logged-in student's admission and payment state.
func (sc *StudentController) Dashboard(c *gin.Context) {
	admissionID := c.GetUint("admission_id")

	admission, err := sc.Admissions.AdmissionByID(c.Request.Context(), admissionID)
	if err != nil {
		if errors.Is(err, repository.ErrAdmissionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Admission not found"})
			return
		}
		sc.Logger.Error("Failed to load admission", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	resp := gin.H{
		"admission": admission,
		"fee_due":   admission.FeeDue(),
	}
	payment, err := sc.Payments.PaymentByAdmissionID(c.Request.Context(), admissionID)
	if err == nil {
		resp["payment"] = payment
	}
	c.JSON(http.StatusOK, resp)
}
