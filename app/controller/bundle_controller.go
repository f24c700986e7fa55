package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"oakfield-backend/models"
	"oakfield-backend/repository"
)

// BundleController handles HTTP requests for bundles
type BundleController struct {
	repository repository.BundleRepositoryInterface
}

// NewBundleController creates a new BundleController
func NewBundleController(repo repository.BundleRepositoryInterface) *BundleController {
	return &BundleController{
		repository: repo,
	}
}

// List handles GET /api/v1/oakfield/bundles
func (c *BundleController) List(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ListBundles: Received %s request to %s", r.Method, r.URL.Path)

	skip, limit := parsePagination(r)
	bundles, err := c.repository.List(r.Context(), skip, limit)
	if err != nil {
		repoError(w, "Failed to fetch bundles", err)
		return
	}

	log.Printf("✅ ListBundles: Successfully fetched %d bundles", len(bundles))
	writeJSON(w, http.StatusOK, bundles)
}

// Get handles GET /api/v1/oakfield/bundles/:bundle_code
func (c *BundleController) Get(w http.ResponseWriter, r *http.Request, bundleCode string) {
	bundle, err := c.repository.GetByCode(r.Context(), bundleCode)
	if err != nil {
		repoError(w, "Failed to fetch bundle", err)
		return
	}
	writeJSON(w, http.StatusOK, bundle)
}

// Create handles POST /api/v1/oakfield/bundles
func (c *BundleController) Create(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 CreateBundle: Received %s request to %s", r.Method, r.URL.Path)

	var bundle models.Bundle
	if err := json.NewDecoder(r.Body).Decode(&bundle); err != nil {
		log.Printf("❌ CreateBundle: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(bundle.BundleCode) == "" {
		log.Printf("❌ CreateBundle: bundle_code is required")
		http.Error(w, "bundle_code is required", http.StatusBadRequest)
		return
	}

	if err := c.repository.Insert(r.Context(), &bundle); err != nil {
		repoError(w, "Failed to create bundle", err)
		return
	}

	log.Printf("✅ CreateBundle: Successfully created bundle %s", bundle.BundleCode)
	writeJSON(w, http.StatusOK, bundle)
}

// Update handles PUT /api/v1/oakfield/bundles/:bundle_code
func (c *BundleController) Update(w http.ResponseWriter, r *http.Request, bundleCode string) {
	var req models.BundleUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ UpdateBundle: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	bundle, err := c.repository.Update(r.Context(), bundleCode, &req)
	if err != nil {
		repoError(w, "Failed to update bundle", err)
		return
	}

	log.Printf("✅ UpdateBundle: Successfully updated bundle %s", bundleCode)
	writeJSON(w, http.StatusOK, bundle)
}
