package main

import (
	"github.com/Avinash-pradhan/Pradhan-Chemistry-Classes/config"
	"github.com/Avinash-pradhan/Pradhan-Chemistry-Classes/controllers"
	"github.com/Avinash-pradhan/Pradhan-Chemistry-Classes/database"
	"github.com/Avinash-pradhan/Pradhan-Chemistry-Classes/gateway"
	"github.com/Avinash-pradhan/Pradhan-Chemistry-Classes/logger"
	"github.com/Avinash-pradhan/Pradhan-Chemistry-Classes/repository"
	"github.com/Avinash-pradhan/Pradhan-Chemistry-Classes/routes"
	"github.com/Avinash-pradhan/Pradhan-Chemistry-Classes/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	logger.Initialize(cfg.Env)
	defer logger.Log.Sync()

	if err := database.Connect(cfg); err != nil {
		logger.Log.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(); err != nil {
		logger.Log.Fatal("Failed to run migrations", zap.Error(err))
	}

	paymentRepo := repository.NewGormPaymentRepo(database.DB)
	admissionRepo := repository.NewGormAdmissionRepo(database.DB)
	catalogRepo := repository.NewGormCatalogRepo(database.DB)

	razorpayClient := gateway.NewRazorpayClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	phonePeClient := gateway.NewPhonePeClient(cfg.PhonePeMerchantID, cfg.PhonePeSaltKey, cfg.PhonePeSaltIndex, cfg.PhonePeBaseURL)

	notifier := services.NewNotifier(cfg, logger.Log)
	reconciler := services.NewReconciler(paymentRepo, notifier, logger.Log)
	admissionService := services.NewAdmissionService(admissionRepo, catalogRepo, logger.Log)
	tokenService := services.NewTokenService(cfg.JWTSecret)

	admissionController := controllers.NewAdmissionController(cfg, admissionService, admissionRepo, paymentRepo, logger.Log)
	paymentController := controllers.NewPaymentController(cfg, razorpayClient, phonePeClient, paymentRepo, admissionRepo, reconciler, logger.Log)
	catalogController := controllers.NewCatalogController(catalogRepo, logger.Log)
	studentController := controllers.NewStudentController(admissionRepo, paymentRepo, tokenService, logger.Log)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), logger.RequestLogger())

	routes.Register(r, admissionController, paymentController, catalogController, studentController, tokenService)

	logger.Log.Info("Starting admissions service", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Log.Fatal("Server exited", zap.Error(err))
	}
}
