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

// OptionController handles HTTP requests for the options catalogue
type OptionController struct {
	repository repository.OptionRepositoryInterface
}

// NewOptionController creates a new OptionController
func NewOptionController(repo repository.OptionRepositoryInterface) *OptionController {
	return &OptionController{
		repository: repo,
	}
}

// List handles GET /api/v1/oakfield/options?category=X
func (c *OptionController) List(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ListOptions: Received %s request to %s", r.Method, r.URL.Path)

	skip, limit := parsePagination(r)
	options, err := c.repository.List(r.Context(), optionalQuery(r, "category"), skip, limit)
	if err != nil {
		repoError(w, "Failed to fetch options", err)
		return
	}

	log.Printf("✅ ListOptions: Successfully fetched %d options", len(options))
	writeJSON(w, http.StatusOK, options)
}

// Get handles GET /api/v1/oakfield/options/:option_code
func (c *OptionController) Get(w http.ResponseWriter, r *http.Request, optionCode string) {
	option, err := c.repository.GetByCode(r.Context(), optionCode)
	if err != nil {
		repoError(w, "Failed to fetch option", err)
		return
	}
	writeJSON(w, http.StatusOK, option)
}

// Create handles POST /api/v1/oakfield/options
func (c *OptionController) Create(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 CreateOption: Received %s request to %s", r.Method, r.URL.Path)

	var option models.Option
	if err := json.NewDecoder(r.Body).Decode(&option); err != nil {
		log.Printf("❌ CreateOption: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(option.OptionCode) == "" {
		log.Printf("❌ CreateOption: option_code is required")
		http.Error(w, "option_code is required", http.StatusBadRequest)
		return
	}

	if err := c.repository.Insert(r.Context(), &option); err != nil {
		repoError(w, "Failed to create option", err)
		return
	}

	log.Printf("✅ CreateOption: Successfully created option %s", option.OptionCode)
	writeJSON(w, http.StatusOK, option)
}

// Update handles PUT /api/v1/oakfield/options/:option_code
func (c *OptionController) Update(w http.ResponseWriter, r *http.Request, optionCode string) {
	var req models.OptionUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ UpdateOption: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	option, err := c.repository.Update(r.Context(), optionCode, &req)
	if err != nil {
		repoError(w, "Failed to update option", err)
		return
	}

	log.Printf("✅ UpdateOption: Successfully updated option %s", optionCode)
	writeJSON(w, http.StatusOK, option)
}
