package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"sourcing-dashboard/internal/catalog"
	"sourcing-dashboard/internal/errors"
	"sourcing-dashboard/internal/models"
	"sourcing-dashboard/internal/sourcing"
)

// baselineLabel names Option A everywhere it is displayed. The incumbent lane
// is fixed; only the challenger origin varies.
const baselineLabel = "China"

// evaluate runs both sourcing options for one request and packages the
// breakdowns, chart series, and insight. Numeric validation happens here, at
// the boundary; the engines assume well-formed input and never validate.
func evaluate(cat *catalog.Catalog, req models.EvaluateRequest) (models.EvaluateResponse, *errors.AppError) {
	var resp models.EvaluateResponse

	if req.SKU == "" {
		return resp, errors.Validation("sku is required")
	}
	if req.AlternateOrigin == "" {
		return resp, errors.Validation("alternate_origin is required")
	}

	rec, ok := cat.Product(req.SKU)
	if !ok {
		return resp, errors.NotFound(fmt.Sprintf("unknown product %q", req.SKU))
	}

	rate := sourcing.DefaultAnnualInterestRate
	if req.AnnualInterestRate != nil {
		rate = *req.AnnualInterestRate
		if rate < 0 || rate > 1 {
			return resp, errors.Validation("annual_interest_rate must be a fraction in [0,1]")
		}
	}

	modeA, err := sourcing.ParseMode(req.OptionA.Mode)
	if err != nil {
		return resp, errors.Validation("option_a: " + err.Error())
	}
	modeB, err := sourcing.ParseMode(req.OptionB.Mode)
	if err != nil {
		return resp, errors.Validation("option_b: " + err.Error())
	}

	if appErr := validateOverrides("option_a", req.OptionA); appErr != nil {
		return resp, appErr
	}
	if appErr := validateOverrides("option_b", req.OptionB); appErr != nil {
		return resp, appErr
	}

	scenarioA := sourcing.BaselineScenario(rec, modeA, req.OptionA.LeadTimeWeeks, req.OptionA.Freight, rate)
	scenarioB := sourcing.ChallengerScenario(rec, req.AlternateOrigin, modeB, req.OptionB.LeadTimeWeeks, req.OptionB.Freight, rate)

	optionA := sourcing.Compute(scenarioA)
	optionB := sourcing.Compute(scenarioB)

	return models.EvaluateResponse{
		Product: rec.Name,
		OptionA: optionA,
		OptionB: optionB,
		Chart: models.ChartData{
			Categories:   models.ChartCategories(req.ExcludeFOB),
			OptionALabel: baselineLabel,
			OptionBLabel: req.AlternateOrigin,
			OptionA:      optionA.Series(req.ExcludeFOB),
			OptionB:      optionB.Series(req.ExcludeFOB),
		},
		Insight: sourcing.Compare(optionA, optionB, req.AlternateOrigin),
	}, nil
}

func validateOverrides(field string, o models.ScenarioOverrides) *errors.AppError {
	if o.LeadTimeWeeks != nil && *o.LeadTimeWeeks < 0 {
		return errors.Validation(field + ".lead_time_weeks must be >= 0")
	}
	if o.Freight != nil && *o.Freight < 0 {
		return errors.Validation(field + ".freight must be >= 0")
	}
	return nil
}

// evaluateCacheKey hashes the canonical JSON form of the request so the JSON
// API and the SSE surface share cache entries for identical inputs.
func evaluateCacheKey(req models.EvaluateRequest) string {
	raw, _ := json.Marshal(req)
	sum := sha256.Sum256(raw)
	return "eval:" + hex.EncodeToString(sum[:])
}

// parseEvaluateQuery maps the SSE query-string form onto the same request
// shape the JSON API accepts.
func parseEvaluateQuery(r *http.Request) (models.EvaluateRequest, *errors.AppError) {
	q := r.URL.Query()

	req := models.EvaluateRequest{
		SKU:             q.Get("sku"),
		AlternateOrigin: q.Get("origin"),
		ExcludeFOB:      q.Get("exclude_fob") == "true",
		OptionA:         models.ScenarioOverrides{Mode: q.Get("a_mode")},
		OptionB:         models.ScenarioOverrides{Mode: q.Get("b_mode")},
	}

	var appErr *errors.AppError
	if req.AnnualInterestRate, appErr = optionalFloat(q, "interest_rate"); appErr != nil {
		return req, appErr
	}
	if req.OptionA.LeadTimeWeeks, appErr = optionalFloat(q, "a_lead"); appErr != nil {
		return req, appErr
	}
	if req.OptionA.Freight, appErr = optionalFloat(q, "a_freight"); appErr != nil {
		return req, appErr
	}
	if req.OptionB.LeadTimeWeeks, appErr = optionalFloat(q, "b_lead"); appErr != nil {
		return req, appErr
	}
	if req.OptionB.Freight, appErr = optionalFloat(q, "b_freight"); appErr != nil {
		return req, appErr
	}

	return req, nil
}

func optionalFloat(q url.Values, key string) (*float64, *errors.AppError) {
	raw := q.Get(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, errors.Validation(fmt.Sprintf("%s must be a number, got %q", key, raw))
	}
	return &v, nil
}
