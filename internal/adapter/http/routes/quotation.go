package routes

import (
	"cotacao_service/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathQuotations       = "/quotations"
	PathSavings          = "/savings"
	PathHistoricalPrices = "/historical-prices"
)

func addQuotationRoutes(rg *gin.RouterGroup, quotationHandler *handlers.QuotationHandler, workflowHandler *handlers.WorkflowHandler) {
	quotations := rg.Group(PathQuotations)
	{
		quotations.POST("", quotationHandler.CreateQuotation)
		quotations.GET("/:id", quotationHandler.GetQuotation)
		quotations.POST("/:id/products", quotationHandler.AddProducts)
		quotations.POST("/:id/products/import", quotationHandler.ImportProducts)
		quotations.POST("/:id/suppliers", quotationHandler.AddSupplier)
		quotations.PATCH("/:id/suppliers/:supplier_id/lines/:line_id", quotationHandler.UpdateLineOffer)
		quotations.GET("/:id/comparison", quotationHandler.GetComparison)

		// Approval workflow.
		quotations.GET("/:id/actions", workflowHandler.AllowedActions)
		quotations.POST("/:id/transitions", workflowHandler.Transition)
	}
}

func addSavingRoutes(rg *gin.RouterGroup, savingHandler *handlers.SavingHandler) {
	rg.GET(PathSavings+"/:quotation_id", savingHandler.GetSaving)
	rg.GET(PathHistoricalPrices, savingHandler.GetHistoricalPrice)
}
