package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Avinash-pradhan/Pradhan-Chemistry-Classes/models"
	"github.com/Avinash-pradhan/Pradhan-Chemistry-Classes/repository"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CatalogController struct {
	Catalog repository.CatalogRepository
	Logger  *zap.Logger
}

func NewCatalogController(catalog repository.CatalogRepository, logger *zap.Logger) *CatalogController {
	return &CatalogController{Catalog: catalog, Logger: logger}
}

// GetCatalog returns the fee plan, open batches and active notices for a
// class and medium. Unrecognized query values fall back to the defaults the
// landing page shows (class 12, Hindi medium).
func (cc *CatalogController) GetCatalog(c *gin.Context) {
	class := models.ClassLevel(c.DefaultQuery("class", string(models.Class12)))
	if class != models.Class11 && class != models.Class12 {
		class = models.Class12
	}
	medium := models.Medium(c.DefaultQuery("medium", string(models.MediumHindi)))
	if medium != models.MediumHindi && medium != models.MediumEnglish {
		medium = models.MediumHindi
	}

	today := time.Now()
	resp := gin.H{
		"class":  class,
		"medium": medium,
	}

	plan, err := cc.Catalog.FeePlanFor(c.Request.Context(), class, medium)
	switch {
	case err == nil:
		fee, offerApplied := plan.CurrentFee(today)
		resp["fee"] = gin.H{
			"original_fee":   plan.OriginalFee,
			"offer_fee":      plan.OfferFee,
			"offer_end_date": plan.OfferEndDate.Format("2006-01-02"),
			"offer_active":   plan.OfferActive(today),
			"current_fee":    fee,
			"offer_applied":  offerApplied,
		}
	case errors.Is(err, repository.ErrFeePlanNotFound):
		resp["fee"] = nil
	default:
		cc.Logger.Error("Failed to load fee plan", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	batches, err := cc.Catalog.BatchesFor(c.Request.Context(), class, medium)
	if err != nil {
		cc.Logger.Error("Failed to load batches", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	var totalRemaining uint
	for i := range batches {
		totalRemaining += batches[i].RemainingSeats()
	}
	resp["batches"] = batches
	resp["total_remaining_seats"] = totalRemaining

	notices, err := cc.Catalog.ActiveNotices(c.Request.Context(), today)
	if err != nil {
		cc.Logger.Error("Failed to load notices", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	resp["notices"] = notices

	c.JSON(http.StatusOK, resp)
}

// ListNotices returns the notices currently in their display window.
func (cc *CatalogController) ListNotices(c *gin.Context) {
	notices, err := cc.Catalog.ActiveNotices(c.Request.Context(), time.Now())
	if err != nil {
		cc.Logger.Error("Failed to load notices", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notices": notices})
}
