package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Avinash-pradhan/Pradhan-Chemistry-Classes/middleware"
	"github.com/Avinash-pradhan/Pradhan-Chemistry-Classes/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newStudentRouter(t *testing.T, admissions *fakeAdmissionRepo, payments *fakePaymentRepo) (*gin.Engine, *services.TokenService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := services.NewTokenService("test-secret")
	sc := &StudentController{
		Admissions: admissions,
		Payments:   payments,
		Tokens:     tokens,
		Logger:     zap.NewNop(),
	}

	r := gin.New()
	r.POST("/students/login", sc.Login)
	r.GET("/students/dashboard", middleware.StudentAuth(tokens), sc.Dashboard)
	return r, tokens
}

func TestStudentLoginSuccess(t *testing.T) {
	admissions, payments := paymentFixture()
	r, _ := newStudentRouter(t, admissions, payments)

	body := `{"admission_id":42,"mobile":"9876543210"}`
	req := httptest.NewRequest(http.MethodPost, "/students/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["token"])
	assert.Equal(t, float64(42), resp["admission_id"])
}

func TestStudentLoginWrongMobile(t *testing.T) {
	admissions, payments := paymentFixture()
	r, _ := newStudentRouter(t, admissions, payments)

	body := `{"admission_id":42,"mobile":"1112223334"}`
	req := httptest.NewRequest(http.MethodPost, "/students/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "No admission found with this ID and mobile.")
}

func TestStudentDashboard(t *testing.T) {
	admissions, payments := paymentFixture()
	r, tokens := newStudentRouter(t, admissions, payments)

	token, err := tokens.Issue(42)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/students/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"fee_due":1500`)
	assert.Contains(t, w.Body.String(), `"payment"`)
}

func TestStudentDashboardRejectsBadToken(t *testing.T) {
	admissions, payments := paymentFixture()
	r, _ := newStudentRouter(t, admissions, payments)

	cases := map[string]string{
		"missing header": "",
		"not bearer":     "Basic abc",
		"garbage token":  "Bearer not.a.token",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/students/dashboard", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}
