package handlers

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	request "cotacao_service/internal/adapter/http/dto/request"
	response "cotacao_service/internal/adapter/http/dto/response"
	"cotacao_service/internal/domain/entities"
	"cotacao_service/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RowReader turns an uploaded spreadsheet into raw rows.
type RowReader interface {
	ReadRows(r io.Reader) ([]entities.RawRow, error)
}

// QuotationHandler handles quotation editing and comparison requests.
type QuotationHandler struct {
	usecase usecase.IQuotationUseCase
	reader  RowReader
	logger  *logrus.Logger
}

func NewQuotationHandler(uc usecase.IQuotationUseCase, reader RowReader, logger *logrus.Logger) *QuotationHandler {
	return &QuotationHandler{usecase: uc, reader: reader, logger: logger}
}

func (h *QuotationHandler) CreateQuotation(c *gin.Context) {
	var payload request.CreateQuotationRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeAppError(c, errInvalidPayload)
		return
	}

	q, err := h.usecase.Create(c.Request.Context(), actorFrom(c), payload.ToInput())
	if err != nil {
		writeError(c, h.logger, "CreateQuotation", err)
		return
	}
	c.JSON(http.StatusCreated, response.FromQuotation(q))
}

func (h *QuotationHandler) GetQuotation(c *gin.Context) {
	q, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, "GetQuotation", err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuotation(q))
}

// AddProducts replaces the product list with rows sent as JSON.
func (h *QuotationHandler) AddProducts(c *gin.Context) {
	var payload request.ImportRowsRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeAppError(c, errInvalidPayload)
		return
	}
	h.importRows(c, request.ToRawRows(payload.Rows))
}

// ImportProducts replaces the product list with the rows of an uploaded
// workbook (multipart field "file").
func (h *QuotationHandler) ImportProducts(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil || !strings.EqualFold(filepath.Ext(fh.Filename), ".xlsx") {
		writeAppError(c, errInvalidFile)
		return
	}
	f, err := fh.Open()
	if err != nil {
		writeAppError(c, errInvalidFile)
		return
	}
	defer f.Close()

	rows, err := h.reader.ReadRows(f)
	if err != nil {
		writeError(c, h.logger, "ImportProducts", err)
		return
	}
	h.logger.WithFields(logrus.Fields{
		"quotation_id": c.Param("id"),
		"file":         fh.Filename,
		"rows":         len(rows),
	}).Info("[quotation][handler] workbook read")
	h.importRows(c, rows)
}

func (h *QuotationHandler) importRows(c *gin.Context, rows []entities.RawRow) {
	res, err := h.usecase.ImportProducts(c.Request.Context(), actorFrom(c), c.Param("id"), rows)
	if err != nil {
		writeError(c, h.logger, "ImportProducts", err)
		return
	}
	c.JSON(http.StatusOK, response.FromImportResult(res))
}

func (h *QuotationHandler) AddSupplier(c *gin.Context) {
	var payload request.SupplierRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeAppError(c, errInvalidPayload)
		return
	}

	q, err := h.usecase.AddSupplier(c.Request.Context(), actorFrom(c), c.Param("id"), payload.ToInput())
	if err != nil {
		writeError(c, h.logger, "AddSupplier", err)
		return
	}
	c.JSON(http.StatusCreated, response.FromQuotation(q))
}

func (h *QuotationHandler) UpdateLineOffer(c *gin.Context) {
	var payload request.LineOfferRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeAppError(c, errInvalidPayload)
		return
	}

	q, err := h.usecase.UpdateLineOffer(c.Request.Context(), actorFrom(c), c.Param("id"), c.Param("supplier_id"), c.Param("line_id"), payload.ToUpdate())
	if err != nil {
		writeError(c, h.logger, "UpdateLineOffer", err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuotation(q))
}

func (h *QuotationHandler) GetComparison(c *gin.Context) {
	id := c.Param("id")
	report, err := h.usecase.Compare(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, "GetComparison", err)
		return
	}
	c.JSON(http.StatusOK, response.FromComparisonReport(id, report))
}
