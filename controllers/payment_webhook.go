package controllers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/Avinash-pradhan/Pradhan-Chemistry-Classes/gateway"
	"github.com/Avinash-pradhan/Pradhan-Chemistry-Classes/models"
	"github.com/Avinash-pradhan/Pradhan-Chemistry-Classes/repository"
	"github.com/Avinash-pradhan/Pradhan-Chemistry-Classes/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PhonePeCallback is the server-to-server webhook PhonePe posts after a
// transaction settles. The body is a JSON envelope {"response": "<base64>"};
// the X-VERIFY header is checked against the raw base64 string before it is
// decoded. Responses are plain text, which is what the provider expects.
func (pc *PaymentController) PhonePeCallback(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid payload")
		return
	}

	var envelope struct {
		Response string `json:"response"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		c.String(http.StatusBadRequest, "Invalid payload")
		return
	}
	if envelope.Response == "" {
		c.String(http.StatusBadRequest, "Missing response")
		return
	}

	if !pc.PhonePe.Configured() {
		pc.Logger.Warn("PhonePe callback received but gateway is not configured")
		c.String(http.StatusBadRequest, "Invalid payload")
		return
	}

	if pc.Cfg.PhonePeVerifyCallback {
		if !pc.PhonePe.VerifyCallback(envelope.Response, c.GetHeader("X-VERIFY")) {
			pc.Logger.Warn("PhonePe callback signature mismatch")
			c.String(http.StatusBadRequest, "Signature mismatch")
			return
		}
	}

	decoded, err := base64.StdEncoding.DecodeString(envelope.Response)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid response data")
		return
	}
	status, err := gateway.ParsePhonePeResponse(decoded)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid response data")
		return
	}
	if status.MerchantTransactionID == "" {
		c.String(http.StatusBadRequest, "Missing transaction")
		return
	}

	outcome := services.Outcome{
		Status:      services.MapGatewayStatus(status.State, status.Code),
		Gateway:     models.GatewayPhonePe,
		Method:      models.PaymentMethodOnline,
		PaymentID:   status.TransactionID,
		ReferenceID: status.ReferenceID,
		RawResponse: status.Raw,
	}
	if _, err := pc.Reconciler.Apply(c.Request.Context(), status.MerchantTransactionID, outcome); err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			pc.Logger.Warn("PhonePe callback for unknown transaction",
				zap.String("merchant_transaction_id", status.MerchantTransactionID),
			)
			c.String(http.StatusNotFound, "Payment not found")
			return
		}
		pc.Logger.Error("Failed to apply PhonePe callback", zap.Error(err))
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	c.String(http.StatusOK, "OK")
}
