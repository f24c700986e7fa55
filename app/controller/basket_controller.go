package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"oakfield-backend/engine"
	"oakfield-backend/models"
	"oakfield-backend/repository"
)

// BasketController handles HTTP requests for option baskets, including the
// bundle eligibility check and the offer endpoint
type BasketController struct {
	repository repository.BasketRepositoryInterface
	devRepo    repository.DevelopmentRepositoryInterface
	bundleRepo repository.BundleRepositoryInterface
	ruleRepo   repository.BundleRuleRepositoryInterface
}

// NewBasketController creates a new BasketController
func NewBasketController(
	repo repository.BasketRepositoryInterface,
	devRepo repository.DevelopmentRepositoryInterface,
	bundleRepo repository.BundleRepositoryInterface,
	ruleRepo repository.BundleRuleRepositoryInterface,
) *BasketController {
	return &BasketController{
		repository: repo,
		devRepo:    devRepo,
		bundleRepo: bundleRepo,
		ruleRepo:   ruleRepo,
	}
}

// List handles GET /api/v1/oakfield/baskets with optional filters
func (c *BasketController) List(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ListBaskets: Received %s request to %s", r.Method, r.URL.Path)

	filters := models.BasketFilterParams{
		DevelopmentCode: optionalQuery(r, "development_code"),
		HouseType:       optionalQuery(r, "house_type"),
		BuildStage:      optionalQuery(r, "build_stage"),
		Character:       optionalQuery(r, "character"),
	}

	skip, limit := parsePagination(r)
	baskets, err := c.repository.Filter(r.Context(), filters, skip, limit)
	if err != nil {
		repoError(w, "Failed to fetch baskets", err)
		return
	}

	log.Printf("✅ ListBaskets: Successfully fetched %d baskets", len(baskets))
	writeJSON(w, http.StatusOK, baskets)
}

// resolve looks a basket up by numeric id or, failing that, by plot reference
func (c *BasketController) resolve(r *http.Request, rawRef string) (*models.OptionBasket, error) {
	ref := models.ParseBasketRef(rawRef)
	if ref.IsID {
		return c.repository.GetByID(r.Context(), ref.ID)
	}
	return c.repository.GetByPlotReference(r.Context(), ref.External)
}

// Get handles GET /api/v1/oakfield/baskets/:ref where ref is a numeric id
// or a plot reference
func (c *BasketController) Get(w http.ResponseWriter, r *http.Request, rawRef string) {
	basket, err := c.resolve(r, rawRef)
	if err != nil {
		repoError(w, "Failed to fetch basket", err)
		return
	}
	writeJSON(w, http.StatusOK, basket)
}

// Create handles POST /api/v1/oakfield/baskets.
// A provided development_code must reference an existing development.
func (c *BasketController) Create(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 CreateBasket: Received %s request to %s", r.Method, r.URL.Path)

	var basket models.OptionBasket
	if err := json.NewDecoder(r.Body).Decode(&basket); err != nil {
		log.Printf("❌ CreateBasket: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(basket.PlotReference) == "" {
		log.Printf("❌ CreateBasket: plot_reference is required")
		http.Error(w, "plot_reference is required", http.StatusBadRequest)
		return
	}

	if basket.DevelopmentCode != nil && *basket.DevelopmentCode != "" {
		if _, err := c.devRepo.GetByCode(r.Context(), *basket.DevelopmentCode); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				log.Printf("❌ CreateBasket: development_code '%s' not found", *basket.DevelopmentCode)
				http.Error(w, fmt.Sprintf("development_code '%s' not found", *basket.DevelopmentCode), http.StatusBadRequest)
				return
			}
			repoError(w, "Failed to validate development_code", err)
			return
		}
	}

	created, err := c.repository.Insert(r.Context(), &basket)
	if err != nil {
		repoError(w, "Failed to create basket", err)
		return
	}

	log.Printf("✅ CreateBasket: Successfully created basket %d (plot %s)", created.ID, created.PlotReference)
	writeJSON(w, http.StatusOK, created)
}

// Update handles PUT /api/v1/oakfield/baskets/:id
func (c *BasketController) Update(w http.ResponseWriter, r *http.Request, idStr string) {
	id, err := strconv.Atoi(idStr)
	if err != nil {
		log.Printf("❌ UpdateBasket: Invalid basket id: %s", idStr)
		http.Error(w, "invalid basket id parameter", http.StatusBadRequest)
		return
	}

	var req models.BasketUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ UpdateBasket: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	basket, err := c.repository.Update(r.Context(), id, &req)
	if err != nil {
		repoError(w, "Failed to update basket", err)
		return
	}

	log.Printf("✅ UpdateBasket: Successfully updated basket %d", id)
	writeJSON(w, http.StatusOK, basket)
}

// Delete handles DELETE /api/v1/oakfield/baskets/:id
func (c *BasketController) Delete(w http.ResponseWriter, r *http.Request, idStr string) {
	id, err := strconv.Atoi(idStr)
	if err != nil {
		log.Printf("❌ DeleteBasket: Invalid basket id: %s", idStr)
		http.Error(w, "invalid basket id parameter", http.StatusBadRequest)
		return
	}

	if err := c.repository.Delete(r.Context(), id); err != nil {
		repoError(w, "Failed to delete basket", err)
		return
	}

	log.Printf("✅ DeleteBasket: Successfully deleted basket %d", id)
	writeJSON(w, http.StatusOK, map[string]any{"status": "deleted", "id": id})
}

// CheckEligibility handles GET /api/v1/oakfield/baskets/:ref/eligibility/:bundle_code.
// With ?record=true an eligible result is also appended to the basket's
// bundles_triggered list.
func (c *BasketController) CheckEligibility(w http.ResponseWriter, r *http.Request, rawRef, bundleCode string) {
	log.Printf("📥 CheckEligibility: Received %s request to %s", r.Method, r.URL.Path)

	basket, err := c.resolve(r, rawRef)
	if err != nil {
		repoError(w, "Failed to fetch basket", err)
		return
	}

	if _, err := c.bundleRepo.GetByCode(r.Context(), bundleCode); err != nil {
		repoError(w, "Failed to fetch bundle", err)
		return
	}

	rules, err := c.ruleRepo.ListByBundle(r.Context(), bundleCode)
	if err != nil {
		repoError(w, "Failed to fetch bundle rules", err)
		return
	}

	result := engine.Evaluate(basket, bundleCode, rules)

	if result.Eligible && r.URL.Query().Get("record") == "true" {
		if err := c.repository.RecordBundleTriggered(r.Context(), basket.ID, bundleCode); err != nil {
			repoError(w, "Failed to record triggered bundle", err)
			return
		}
	}

	log.Printf("✅ CheckEligibility: Basket %d bundle %s eligible=%t", basket.ID, bundleCode, result.Eligible)
	writeJSON(w, http.StatusOK, result)
}

// OfferRequest is the body for POST /api/v1/oakfield/baskets/:id/offer
type OfferRequest struct {
	BundleCode string `json:"bundle_code"`
}

// Offer handles POST /api/v1/oakfield/baskets/:id/offer, marking a bundle as
// offered to the customer
func (c *BasketController) Offer(w http.ResponseWriter, r *http.Request, idStr string) {
	log.Printf("📥 OfferBundle: Received %s request to %s", r.Method, r.URL.Path)

	id, err := strconv.Atoi(idStr)
	if err != nil {
		log.Printf("❌ OfferBundle: Invalid basket id: %s", idStr)
		http.Error(w, "invalid basket id parameter", http.StatusBadRequest)
		return
	}

	var req OfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ OfferBundle: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.BundleCode) == "" {
		log.Printf("❌ OfferBundle: bundle_code is required")
		http.Error(w, "bundle_code is required", http.StatusBadRequest)
		return
	}

	if _, err := c.bundleRepo.GetByCode(r.Context(), req.BundleCode); err != nil {
		repoError(w, "Failed to fetch bundle", err)
		return
	}

	if err := c.repository.RecordBundleOffered(r.Context(), id, req.BundleCode); err != nil {
		repoError(w, "Failed to record offered bundle", err)
		return
	}

	basket, err := c.repository.GetByID(r.Context(), id)
	if err != nil {
		repoError(w, "Failed to fetch basket", err)
		return
	}

	log.Printf("💰 OfferBundle: Bundle %s offered on basket %d", req.BundleCode, id)
	writeJSON(w, http.StatusOK, basket)
}
