package routes

import (
	"github.com/Avinash-pradhan/Pradhan-Chemistry-Classes/controllers"
	"github.com/Avinash-pradhan/Pradhan-Chemistry-Classes/middleware"
	"github.com/Avinash-pradhan/Pradhan-Chemistry-Classes/services"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Register wires all HTTP routes. Payment endpoints sit behind a tighter
// per-IP rate limit than the public catalog.
func Register(r *gin.Engine,
	admissions *controllers.AdmissionController,
	payments *controllers.PaymentController,
	catalog *controllers.CatalogController,
	students *controllers.StudentController,
	tokens *services.TokenService,
) {
	public := r.Group("/", middleware.RateLimiter(rate.Limit(10), 20))
	{
		public.GET("/catalog", catalog.GetCatalog)
		public.GET("/notices", catalog.ListNotices)

		public.POST("/admissions", admissions.Create)
		public.GET("/admissions/:admission_id", admissions.Get)
		public.GET("/admissions/:admission_id/receipt", admissions.Receipt)

		public.POST("/students/login", students.Login)
	}

	pay := r.Group("/payments", middleware.RateLimiter(rate.Limit(2), 5))
	{
		pay.POST("/start/:admission_id", payments.StartPayment)
		pay.POST("/verify", payments.VerifyRedirect)
		pay.GET("/poll/:admission_id", payments.PollStatus)
		pay.POST("/phonepe/callback", payments.PhonePeCallback)
	}

	dashboard := r.Group("/students", middleware.StudentAuth(tokens))
	{
		dashboard.GET("/dashboard", students.Dashboard)
	}
}
