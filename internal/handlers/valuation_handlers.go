package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/camayank/startupvaluator/internal/blend"
	"github.com/camayank/startupvaluator/internal/models"
	"github.com/camayank/startupvaluator/internal/services"
	"github.com/camayank/startupvaluator/internal/validation"
)

// ValuationHandler handles valuation, validation and readiness endpoints
type ValuationHandler struct {
	valuationSvc *services.ValuationService
}

// NewValuationHandler creates a new ValuationHandler
func NewValuationHandler(valuationSvc *services.ValuationService) *ValuationHandler {
	return &ValuationHandler{
		valuationSvc: valuationSvc,
	}
}

// Compute handles POST /valuations
// @Summary Compute a valuation report
// @Description Validate a business profile, run every applicable valuation method and blend the results
// @Tags valuations
// @Accept json
// @Produce json
// @Param request body models.ValuationRequest true "Business profile"
// @Success 200 {object} models.ValuationReport
// @Failure 400 {object} models.ErrorResponse
// @Failure 422 {object} models.PartialReportResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /valuations [post]
func (h *ValuationHandler) Compute(c *gin.Context) {
	var req models.ValuationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}

	report, err := h.valuationSvc.Compute(c.Request.Context(), &req.Profile, req.AsOf)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrMalformedProfile):
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "malformed_profile",
				Message: err.Error(),
			})
		case errors.Is(err, blend.ErrNoApplicableMethod) && report != nil:
			resp := models.PartialReportResponse{
				Error:   "no_applicable_method",
				Message: err.Error(),
				Report:  report,
			}
			var blockErr *validation.ValidationBlockingError
			if errors.As(err, &blockErr) {
				resp.BlockedFields = blockErr.Fields
			}
			c.JSON(http.StatusUnprocessableEntity, resp)
		default:
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:   "internal_error",
				Message: err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, report)
}

// Advise handles POST /valuations/advice
// @Summary Add advisory suggestions to a report
// @Description Append advisory suggestions to a computed report. Numeric fields are never changed; when the advisor fails the report is returned with a W3001 warning.
// @Tags valuations
// @Accept json
// @Produce json
// @Param report body models.ValuationReport true "Valuation report"
// @Success 200 {object} models.ValuationReport
// @Failure 400 {object} models.ErrorResponse
// @Router /valuations/advice [post]
func (h *ValuationHandler) Advise(c *gin.Context) {
	var report models.ValuationReport
	if err := c.ShouldBindJSON(&report); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, h.valuationSvc.Advise(c.Request.Context(), &report))
}

// Validate handles POST /validations
// @Summary Resolve validation findings
// @Description Return findings and per-field requirement levels for a business profile
// @Tags valuations
// @Accept json
// @Produce json
// @Param request body models.ProfileRequest true "Business profile"
// @Success 200 {object} models.ValidationResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /validations [post]
func (h *ValuationHandler) Validate(c *gin.Context) {
	var req models.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}

	resp, err := h.valuationSvc.Validate(c.Request.Context(), &req.Profile)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "malformed_profile",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Readiness handles POST /readiness
// @Summary Score funding readiness
// @Description Score the financial, market, team and product readiness of a business profile
// @Tags valuations
// @Accept json
// @Produce json
// @Param request body models.ProfileRequest true "Business profile"
// @Success 200 {object} models.ReadinessScore
// @Failure 400 {object} models.ErrorResponse
// @Router /readiness [post]
func (h *ValuationHandler) Readiness(c *gin.Context) {
	var req models.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}

	score, err := h.valuationSvc.Readiness(c.Request.Context(), &req.Profile)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "malformed_profile",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, score)
}
