package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/camayank/startupvaluator/internal/advisory"
	"github.com/camayank/startupvaluator/internal/benchmarks"
	"github.com/camayank/startupvaluator/internal/models"
	"github.com/camayank/startupvaluator/internal/services"
	"github.com/camayank/startupvaluator/internal/taxonomy"
	"github.com/camayank/startupvaluator/internal/validation"
	"github.com/camayank/startupvaluator/internal/valuation"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	return setupTestRouterWithAdvisor(t, nil)
}

func setupTestRouterWithAdvisor(t *testing.T, advisor advisory.Advisor) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tax := taxonomy.Default()
	source := benchmarks.BuiltinSource{Taxonomy: tax}
	store := benchmarks.NewStore(nil)
	if _, err := store.Load(context.Background(), source); err != nil {
		t.Fatalf("failed to load builtin benchmarks: %v", err)
	}
	resolver := validation.NewResolver(validation.DefaultTable(tax), tax)
	runner := valuation.NewRunner(valuation.DefaultRegistry(), time.Second)
	valuationSvc := services.NewValuationService(store, resolver, runner, nil, advisor, services.ValuationOptions{
		ComputeTimeout:  5 * time.Second,
		AdvisoryTimeout: 50 * time.Millisecond,
	})
	benchmarkSvc := services.NewBenchmarkService(store, source, tax, nil)

	valuationHandler := NewValuationHandler(valuationSvc)
	benchmarkHandler := NewBenchmarkHandler(benchmarkSvc)

	router := gin.New()
	router.POST("/valuations", valuationHandler.Compute)
	router.POST("/valuations/advice", valuationHandler.Advise)
	router.POST("/validations", valuationHandler.Validate)
	router.POST("/readiness", valuationHandler.Readiness)
	router.GET("/benchmarks", benchmarkHandler.Get)
	router.GET("/taxonomy", benchmarkHandler.Taxonomy)
	router.POST("/admin/benchmarks/reload", benchmarkHandler.Reload)
	router.POST("/admin/benchmarks/upload", benchmarkHandler.Upload)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, url string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, url, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func growthProfile() models.BusinessProfile {
	return models.BusinessProfile{
		Sector:     "technology",
		Industry:   "saas",
		Region:     "north_america",
		Stage:      models.StageGrowth,
		Revenue:    models.Int64(10_000_000),
		GrowthRate: models.Float(0.35),
		Margins:    models.Float(0.25),
		AssetValue: models.Int64(5_000_000),
		TeamSize:   models.Int(25),
	}
}

func TestComputeValuation(t *testing.T) {
	router := setupTestRouter(t)
	w := postJSON(t, router, "/valuations", models.ValuationRequest{Profile: growthProfile()})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var report models.ValuationReport
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("failed to decode report: %v", err)
	}
	if report.Blend == nil || report.Blend.Value <= 0 {
		t.Fatalf("expected a positive blend, got %+v", report.Blend)
	}
	var sum float64
	for _, weight := range report.Blend.Weights {
		sum += weight
	}
	if sum < 1-1e-9 || sum > 1+1e-9 {
		t.Errorf("weights sum to %v", sum)
	}
}

func TestComputeValuation_BadRequests(t *testing.T) {
	router := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/valuations", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid JSON: expected 400, got %d", w.Code)
	}

	p := growthProfile()
	p.Stage = "unicorn"
	w = postJSON(t, router, "/valuations", models.ValuationRequest{Profile: p})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown stage: expected 400, got %d", w.Code)
	}
	var resp models.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error: %v", err)
	}
	if resp.Error != "malformed_profile" {
		t.Errorf("expected malformed_profile, got %q", resp.Error)
	}
}

func TestComputeValuation_NoApplicableMethod(t *testing.T) {
	router := setupTestRouter(t)
	p := models.BusinessProfile{
		Sector:   "technology",
		Industry: "saas",
		Region:   "antarctica",
		Stage:    models.StageSeed,
		Revenue:  models.Int64(1_000_000),
		TeamSize: models.Int(5),
	}

	w := postJSON(t, router, "/valuations", models.ValuationRequest{Profile: p})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
	}
	var resp models.PartialReportResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode partial report: %v", err)
	}
	if resp.Report == nil || len(resp.Report.Findings) == 0 {
		t.Error("expected the partial report to carry findings")
	}
	if resp.Report != nil && resp.Report.Blend != nil {
		t.Error("partial report must not carry a blend")
	}
	if len(resp.BlockedFields) != 0 {
		t.Errorf("expected no blocked fields, got %v", resp.BlockedFields)
	}
}

func TestComputeValuation_NoApplicableMethodListsBlockedFields(t *testing.T) {
	router := setupTestRouter(t)
	p := models.BusinessProfile{
		Sector:   "technology",
		Industry: "saas",
		Region:   "antarctica",
		Stage:    models.StageSeed,
		Revenue:  models.Int64(1_000_000),
	}

	w := postJSON(t, router, "/valuations", models.ValuationRequest{Profile: p})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
	}
	var resp models.PartialReportResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode partial report: %v", err)
	}
	if len(resp.BlockedFields) != 1 || resp.BlockedFields[0] != "team_size" {
		t.Errorf("expected team_size to be blocked, got %v", resp.BlockedFields)
	}
	if !strings.Contains(resp.Message, "team_size") {
		t.Errorf("expected the message to name team_size, got %q", resp.Message)
	}
}

type recommendingAdvisor struct{}

func (recommendingAdvisor) Suggestions(ctx context.Context, report *models.ValuationReport) (advisory.Advice, error) {
	return advisory.Advice{Recommendations: []string{"Line up a lead investor"}}, nil
}

type unavailableAdvisor struct{}

func (unavailableAdvisor) Suggestions(ctx context.Context, report *models.ValuationReport) (advisory.Advice, error) {
	return advisory.Advice{}, errors.New("upstream unavailable")
}

func TestAdviseValuation(t *testing.T) {
	p := models.BusinessProfile{
		Sector:     "technology",
		Industry:   "saas",
		Region:     "north_america",
		Stage:      models.StageGrowth,
		Revenue:    models.Int64(10_000_000),
		GrowthRate: models.Float(0.35),
		Margins:    models.Float(0.25),
		TeamSize:   models.Int(25),
	}

	tests := []struct {
		name        string
		advisor     advisory.Advisor
		wantAdvice  bool
		wantWarning bool
	}{
		{"advisor replies", recommendingAdvisor{}, true, false},
		{"advisor fails", unavailableAdvisor{}, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupTestRouterWithAdvisor(t, tt.advisor)

			w := postJSON(t, router, "/valuations", models.ValuationRequest{Profile: p})
			if w.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
			}
			var report models.ValuationReport
			if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
				t.Fatalf("failed to decode report: %v", err)
			}

			w = postJSON(t, router, "/valuations/advice", report)
			if w.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
			}
			var advised models.ValuationReport
			if err := json.Unmarshal(w.Body.Bytes(), &advised); err != nil {
				t.Fatalf("failed to decode advised report: %v", err)
			}
			if advised.Blend == nil || advised.Blend.Value != report.Blend.Value {
				t.Fatalf("advice changed the blend: %+v", advised.Blend)
			}
			gotAdvice := slices.Contains(advised.Readiness.Recommendations, "Line up a lead investor")
			if gotAdvice != tt.wantAdvice {
				t.Errorf("advisory recommendation present = %v, want %v", gotAdvice, tt.wantAdvice)
			}
			gotWarning := false
			for _, wn := range advised.Warnings {
				if wn.Code == models.WarnAdvisoryFailed {
					gotWarning = true
				}
			}
			if gotWarning != tt.wantWarning {
				t.Errorf("%s warning present = %v, want %v", models.WarnAdvisoryFailed, gotWarning, tt.wantWarning)
			}
		})
	}
}

func TestAdviseValuation_BadRequest(t *testing.T) {
	router := setupTestRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/valuations/advice", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestValidateAndReadinessEndpoints(t *testing.T) {
	router := setupTestRouter(t)
	p := growthProfile()
	p.Revenue = nil

	w := postJSON(t, router, "/validations", models.ProfileRequest{Profile: p})
	if w.Code != http.StatusOK {
		t.Fatalf("validations: expected 200, got %d", w.Code)
	}
	var vr models.ValidationResponse
	if err := json.Unmarshal(w.Body.Bytes(), &vr); err != nil {
		t.Fatalf("failed to decode validation response: %v", err)
	}
	if !vr.Blocking {
		t.Error("expected a blocking response for missing revenue at growth")
	}

	w = postJSON(t, router, "/readiness", models.ProfileRequest{Profile: growthProfile()})
	if w.Code != http.StatusOK {
		t.Fatalf("readiness: expected 200, got %d", w.Code)
	}
	var score models.ReadinessScore
	if err := json.Unmarshal(w.Body.Bytes(), &score); err != nil {
		t.Fatalf("failed to decode readiness: %v", err)
	}
	if len(score.InvestorMatches) == 0 {
		t.Error("expected investor matches")
	}
}

func TestBenchmarkEndpoints(t *testing.T) {
	router := setupTestRouter(t)

	tests := []struct {
		name string
		url  string
		code int
	}{
		{"exact", "/benchmarks?sector=technology&industry=saas&region=north_america", http.StatusOK},
		{"sector wide", "/benchmarks?sector=technology&region=europe", http.StatusOK},
		{"unknown region", "/benchmarks?sector=technology&industry=saas&region=antarctica", http.StatusNotFound},
		{"missing region", "/benchmarks?sector=technology", http.StatusBadRequest},
		{"taxonomy", "/taxonomy", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.url, nil))
			if w.Code != tt.code {
				t.Errorf("expected %d, got %d: %s", tt.code, w.Code, w.Body.String())
			}
		})
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/admin/benchmarks/reload", nil))
	if w.Code != http.StatusOK {
		t.Errorf("reload: expected 200, got %d", w.Code)
	}
}

func buildUploadRequest(t *testing.T, csvContent string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if csvContent != "" {
		part, err := writer.CreateFormFile("file", "benchmarks.csv")
		if err != nil {
			t.Fatalf("failed to create file part: %v", err)
		}
		if _, err := part.Write([]byte(csvContent)); err != nil {
			t.Fatalf("failed to write CSV content: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/admin/benchmarks/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadBenchmarks(t *testing.T) {
	router := setupTestRouter(t)

	tests := []struct {
		name string
		csv  string
		code int
	}{
		{"valid", "sector,industry,region,revenue_multiple\ntechnology,saas,north_america,9\n", http.StatusOK},
		{"missing column", "sector,region\ntechnology,europe\n", http.StatusBadRequest},
		{"bad number", "sector,region,revenue_multiple\ntechnology,europe,abc\n", http.StatusBadRequest},
		{"no file", "", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, buildUploadRequest(t, tt.csv))
			if w.Code != tt.code {
				t.Errorf("expected %d, got %d: %s", tt.code, w.Code, w.Body.String())
			}
		})
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/benchmarks?sector=technology&industry=saas&region=north_america", nil))
	var match models.BenchmarkMatch
	if err := json.Unmarshal(w.Body.Bytes(), &match); err != nil {
		t.Fatalf("failed to decode benchmark: %v", err)
	}
	if match.RevenueMultiple != 9 {
		t.Errorf("expected uploaded multiple 9, got %v", match.RevenueMultiple)
	}
}
