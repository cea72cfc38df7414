package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"sourcing-dashboard/internal/cache"
	"sourcing-dashboard/internal/catalog"
	"sourcing-dashboard/internal/errors"
	"sourcing-dashboard/internal/models"
	"sourcing-dashboard/internal/observability"
)

// Catalog responses can be cached aggressively; the catalog never changes
// after startup.
const catalogCacheControl = "public, max-age=300"

type APIHandlers struct {
	catalog   *catalog.Catalog
	evalCache cache.Cache
	cacheTTL  time.Duration
	logger    *slog.Logger
}

func NewAPIHandlers(cat *catalog.Catalog, evalCache cache.Cache, cacheTTL time.Duration, logger *slog.Logger) *APIHandlers {
	return &APIHandlers{
		catalog:   cat,
		evalCache: evalCache,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

func (h *APIHandlers) HandleProducts(w http.ResponseWriter, r *http.Request) {
	data := h.catalog.Products()

	errors.WriteSuccessWithHeaders(w, data, map[string]string{
		"Cache-Control": catalogCacheControl,
	})
}

// productDetail adds the header-row metrics to the raw catalog record.
type productDetail struct {
	models.ProductRecord
	Section301Exposed bool `json:"section_301_exposed"`
}

func (h *APIHandlers) HandleProduct(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	rec, ok := h.catalog.Product(name)
	if !ok {
		requestID := observability.GetRequestID(r.Context())
		errors.WriteError(w, h.logger, errors.NotFound(fmt.Sprintf("unknown product %q", name)), requestID)
		return
	}

	errors.WriteSuccessWithHeaders(w, productDetail{
		ProductRecord:     rec,
		Section301Exposed: rec.Section301Rate > 0,
	}, map[string]string{
		"Cache-Control": catalogCacheControl,
	})
}

func (h *APIHandlers) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	requestID := observability.GetRequestID(r.Context())

	var req models.EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.WriteError(w, h.logger, errors.BadRequestWrap(err, "invalid request body"), requestID)
		return
	}

	key := evaluateCacheKey(req)
	if cached, ok := h.evalCache.Get(r.Context(), key); ok {
		errors.WriteSuccess(w, json.RawMessage(cached))
		return
	}

	resp, appErr := evaluate(h.catalog, req)
	if appErr != nil {
		errors.WriteError(w, h.logger, appErr, requestID)
		return
	}

	if buf, err := json.Marshal(resp); err == nil {
		if err := h.evalCache.Set(r.Context(), key, string(buf), h.cacheTTL); err != nil {
			h.logger.Warn("cache evaluation result", "error", err, "request_id", requestID)
		}
	}

	errors.WriteSuccess(w, resp)
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	healthData := map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   "1.0.0",
	}

	errors.WriteSuccess(w, healthData)
}

func (h *APIHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, h.catalog.Stats())
}
