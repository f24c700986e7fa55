package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"oakfield-backend/models"
	"oakfield-backend/repository"
)

// BundleRuleController handles HTTP requests for bundle eligibility rules
type BundleRuleController struct {
	repository repository.BundleRuleRepositoryInterface
	bundleRepo repository.BundleRepositoryInterface
}

// NewBundleRuleController creates a new BundleRuleController
func NewBundleRuleController(
	repo repository.BundleRuleRepositoryInterface,
	bundleRepo repository.BundleRepositoryInterface,
) *BundleRuleController {
	return &BundleRuleController{
		repository: repo,
		bundleRepo: bundleRepo,
	}
}

// List handles GET /api/v1/oakfield/bundle-rules?bundle_code=X
func (c *BundleRuleController) List(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ListBundleRules: Received %s request to %s", r.Method, r.URL.Path)

	skip, limit := parsePagination(r)
	rules, err := c.repository.List(r.Context(), optionalQuery(r, "bundle_code"), skip, limit)
	if err != nil {
		repoError(w, "Failed to fetch bundle rules", err)
		return
	}

	log.Printf("✅ ListBundleRules: Successfully fetched %d bundle rules", len(rules))
	writeJSON(w, http.StatusOK, rules)
}

// Get handles GET /api/v1/oakfield/bundle-rules/:id
func (c *BundleRuleController) Get(w http.ResponseWriter, r *http.Request, idStr string) {
	id, err := strconv.Atoi(idStr)
	if err != nil {
		log.Printf("❌ GetBundleRule: Invalid bundle rule id: %s", idStr)
		http.Error(w, "invalid bundle rule id parameter", http.StatusBadRequest)
		return
	}

	rule, err := c.repository.GetByID(r.Context(), id)
	if err != nil {
		repoError(w, "Failed to fetch bundle rule", err)
		return
	}
	writeJSON(w, http.StatusOK, rule)
}

// Create handles POST /api/v1/oakfield/bundle-rules.
// The referenced bundle must already exist.
func (c *BundleRuleController) Create(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 CreateBundleRule: Received %s request to %s", r.Method, r.URL.Path)

	var rule models.BundleRule
	if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
		log.Printf("❌ CreateBundleRule: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(rule.BundleCode) == "" {
		log.Printf("❌ CreateBundleRule: bundle_code is required")
		http.Error(w, "bundle_code is required", http.StatusBadRequest)
		return
	}

	if _, err := c.bundleRepo.GetByCode(r.Context(), rule.BundleCode); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Printf("❌ CreateBundleRule: Referenced bundle %s does not exist", rule.BundleCode)
			http.Error(w, "Referenced bundle_code does not exist", http.StatusBadRequest)
			return
		}
		repoError(w, "Failed to validate bundle_code", err)
		return
	}

	created, err := c.repository.Insert(r.Context(), &rule)
	if err != nil {
		repoError(w, "Failed to create bundle rule", err)
		return
	}

	log.Printf("✅ CreateBundleRule: Successfully created bundle rule %d for bundle %s", created.ID, created.BundleCode)
	writeJSON(w, http.StatusOK, created)
}

// Update handles PUT /api/v1/oakfield/bundle-rules/:id
func (c *BundleRuleController) Update(w http.ResponseWriter, r *http.Request, idStr string) {
	id, err := strconv.Atoi(idStr)
	if err != nil {
		log.Printf("❌ UpdateBundleRule: Invalid bundle rule id: %s", idStr)
		http.Error(w, "invalid bundle rule id parameter", http.StatusBadRequest)
		return
	}

	var req models.BundleRuleUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ UpdateBundleRule: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	rule, err := c.repository.Update(r.Context(), id, &req)
	if err != nil {
		repoError(w, "Failed to update bundle rule", err)
		return
	}

	log.Printf("✅ UpdateBundleRule: Successfully updated bundle rule %d", id)
	writeJSON(w, http.StatusOK, rule)
}

// Delete handles DELETE /api/v1/oakfield/bundle-rules/:id
func (c *BundleRuleController) Delete(w http.ResponseWriter, r *http.Request, idStr string) {
	id, err := strconv.Atoi(idStr)
	if err != nil {
		log.Printf("❌ DeleteBundleRule: Invalid bundle rule id: %s", idStr)
		http.Error(w, "invalid bundle rule id parameter", http.StatusBadRequest)
		return
	}

	if err := c.repository.Delete(r.Context(), id); err != nil {
		repoError(w, "Failed to delete bundle rule", err)
		return
	}

	log.Printf("✅ DeleteBundleRule: Successfully deleted bundle rule %d", id)
	writeJSON(w, http.StatusOK, map[string]any{"status": "deleted", "id": id})
}
