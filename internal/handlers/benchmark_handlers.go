package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/camayank/startupvaluator/internal/benchmarks"
	"github.com/camayank/startupvaluator/internal/models"
	"github.com/camayank/startupvaluator/internal/services"
)

// BenchmarkHandler handles benchmark and taxonomy endpoints
type BenchmarkHandler struct {
	benchmarkSvc *services.BenchmarkService
}

// NewBenchmarkHandler creates a new BenchmarkHandler
func NewBenchmarkHandler(benchmarkSvc *services.BenchmarkService) *BenchmarkHandler {
	return &BenchmarkHandler{
		benchmarkSvc: benchmarkSvc,
	}
}

// Get handles GET /benchmarks
// @Summary Look up a benchmark
// @Description Return the benchmark row for a sector, industry and region, falling back to the sector-wide row
// @Tags benchmarks
// @Produce json
// @Param sector query string true "Sector"
// @Param industry query string false "Industry"
// @Param region query string true "Region"
// @Success 200 {object} models.BenchmarkMatch
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /benchmarks [get]
func (h *BenchmarkHandler) Get(c *gin.Context) {
	var q models.BenchmarkQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}

	match, err := h.benchmarkSvc.Lookup(c.Request.Context(), q)
	if err != nil {
		if errors.Is(err, benchmarks.ErrBenchmarkMissing) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error:   "not_found",
				Message: err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, match)
}

// Taxonomy handles GET /taxonomy
// @Summary List the sector taxonomy
// @Tags benchmarks
// @Produce json
// @Success 200 {array} models.TaxonomyRow
// @Router /taxonomy [get]
func (h *BenchmarkHandler) Taxonomy(c *gin.Context) {
	c.JSON(http.StatusOK, h.benchmarkSvc.Taxonomy())
}

// Reload handles POST /admin/benchmarks/reload
// @Summary Reload benchmarks
// @Description Re-read the configured benchmark source and swap the snapshot
// @Tags admin
// @Produce json
// @Success 200 {object} models.BenchmarkLoadResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /admin/benchmarks/reload [post]
func (h *BenchmarkHandler) Reload(c *gin.Context) {
	resp, err := h.benchmarkSvc.Reload(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Upload handles POST /admin/benchmarks/upload
// @Summary Upload benchmarks from CSV
// @Description Replace the benchmark snapshot with rows from a CSV file (columns: sector, industry, region, growth_rate, margin, revenue_multiple, competitor_density, avg_pre_money_valuation)
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Benchmark CSV"
// @Success 200 {object} models.BenchmarkLoadResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /admin/benchmarks/upload [post]
func (h *BenchmarkHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "multipart field 'file' is required",
		})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}
	defer f.Close()

	resp, err := h.benchmarkSvc.UploadCSV(c.Request.Context(), fh.Filename, f)
	if err != nil {
		if errors.Is(err, services.ErrInvalidUpload) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "invalid_csv",
				Message: err.Error(),
			})
			return
		}
		log.Errorf("benchmark upload failed: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}
