package handlers

import (
	"net/http"
	"strings"

	response "cotacao_service/internal/adapter/http/dto/response"
	"cotacao_service/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// SavingHandler serves archived economy records and price history.
type SavingHandler struct {
	usecase usecase.ISavingUseCase
	logger  *logrus.Logger
}

func NewSavingHandler(uc usecase.ISavingUseCase, logger *logrus.Logger) *SavingHandler {
	return &SavingHandler{usecase: uc, logger: logger}
}

func (h *SavingHandler) GetSaving(c *gin.Context) {
	rec, err := h.usecase.GetByQuotationID(c.Request.Context(), c.Param("quotation_id"))
	if err != nil {
		writeError(c, h.logger, "GetSaving", err)
		return
	}
	c.JSON(http.StatusOK, response.FromSavingRecord(rec))
}

// GetHistoricalPrice answers 200 with found=false when the product has no
// approved history.
func (h *SavingHandler) GetHistoricalPrice(c *gin.Context) {
	product := strings.TrimSpace(c.Query("product"))
	if product == "" {
		writeAppError(c, errInvalidPayload)
		return
	}

	price, err := h.usecase.ResolveHistoricalPrice(c.Request.Context(), product)
	if err != nil {
		writeError(c, h.logger, "GetHistoricalPrice", err)
		return
	}
	c.JSON(http.StatusOK, response.FromHistoricalPrice(product, price))
}
