package apihandlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"textlens/internal/models"
	"textlens/internal/store"
)

const entryNotFound = "Entry not found"

// AnalysisService is the subset of services.AnalysisService the API needs.
type AnalysisService interface {
	Analyze(ctx context.Context, text string) (*models.AnalysisRecord, error)
	GetEntry(ctx context.Context, id int64) (*models.AnalysisRecord, error)
	ListEntries(ctx context.Context) ([]*models.AnalysisRecord, error)
	DeleteEntry(ctx context.Context, id int64) error
}

type APIHandler struct {
	Service AnalysisService
	Log     *logrus.Logger
}

func NewAPIHandler(svc AnalysisService, log *logrus.Logger) *APIHandler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &APIHandler{Service: svc, Log: log}
}

// AnalyzeRequest is the POST /analyze body. Text is a pointer so that a
// missing field is rejected while an empty string is accepted.
type AnalyzeRequest struct {
	Text *string `json:"text" binding:"required" example:"I am feeling very happy today!"`
}

// AnalyzeHandler godoc
// @Summary Analyze text
// @Description Classifies the text with the emotion and gibberish models and stores the result.
// @Tags analysis
// @Accept json
// @Produce json
// @Param request body AnalyzeRequest true "Text to analyze"
// @Success 200 {object} models.AnalysisResult
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /analyze [post]
func (h *APIHandler) AnalyzeHandler(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Unprocessable(c, "Invalid request body: "+err.Error())
		return
	}

	record, err := h.Service.Analyze(c.Request.Context(), *req.Text)
	if err != nil {
		h.Log.WithError(err).Error("Analyze failed")
		Internal(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, record.Result())
}

// GetEntryHandler godoc
// @Summary Get an entry
// @Tags entries
// @Produce json
// @Param id path int true "Entry ID"
// @Success 200 {object} models.AnalysisRecord
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /entries/{id} [get]
func (h *APIHandler) GetEntryHandler(c *gin.Context) {
	id, err := parseEntryID(c)
	if err != nil {
		Unprocessable(c, err.Error())
		return
	}

	record, err := h.Service.GetEntry(c.Request.Context(), id)
	if err != nil {
		h.respondWithLookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// ListEntriesHandler godoc
// @Summary List entries
// @Description Returns every stored analysis ordered by id.
// @Tags entries
// @Produce json
// @Success 200 {array} models.AnalysisRecord
// @Failure 500 {object} ErrorResponse
// @Router /entries/ [get]
func (h *APIHandler) ListEntriesHandler(c *gin.Context) {
	records, err := h.Service.ListEntries(c.Request.Context())
	if err != nil {
		h.Log.WithError(err).Error("List entries failed")
		Internal(c, err.Error())
		return
	}
	if records == nil {
		records = []*models.AnalysisRecord{}
	}
	c.JSON(http.StatusOK, records)
}

// DeleteEntryHandler godoc
// @Summary Delete an entry
// @Tags entries
// @Produce json
// @Param id path int true "Entry ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /delete/{id} [delete]
func (h *APIHandler) DeleteEntryHandler(c *gin.Context) {
	id, err := parseEntryID(c)
	if err != nil {
		Unprocessable(c, err.Error())
		return
	}

	if err := h.Service.DeleteEntry(c.Request.Context(), id); err != nil {
		h.respondWithLookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Entry deleted successfully"})
}

// HealthHandler godoc
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *APIHandler) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// respondWithLookupError maps store.ErrNotFound to 404 and anything else to 500.
func (h *APIHandler) respondWithLookupError(c *gin.Context, err error) {
	if errors.Is(err, store.ErrNotFound) {
		NotFound(c, entryNotFound)
		return
	}
	h.Log.WithError(err).Error("Entry lookup failed")
	Internal(c, err.Error())
}

// parseEntryID parses the integer id path parameter.
func parseEntryID(c *gin.Context) (int64, error) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("Invalid entry ID format: %s", idStr)
	}
	return id, nil
}
