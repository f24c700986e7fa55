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

// DevelopmentController handles HTTP requests for developments
type DevelopmentController struct {
	repository repository.DevelopmentRepositoryInterface
}

// NewDevelopmentController creates a new DevelopmentController
func NewDevelopmentController(repo repository.DevelopmentRepositoryInterface) *DevelopmentController {
	return &DevelopmentController{
		repository: repo,
	}
}

// List handles GET /api/v1/oakfield/developments?region=X&character=Y
func (c *DevelopmentController) List(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ListDevelopments: Received %s request to %s", r.Method, r.URL.Path)

	skip, limit := parsePagination(r)
	developments, err := c.repository.List(r.Context(), optionalQuery(r, "region"), optionalQuery(r, "character"), skip, limit)
	if err != nil {
		repoError(w, "Failed to fetch developments", err)
		return
	}

	log.Printf("✅ ListDevelopments: Successfully fetched %d developments", len(developments))
	writeJSON(w, http.StatusOK, developments)
}

// Get handles GET /api/v1/oakfield/developments/:dev_code
func (c *DevelopmentController) Get(w http.ResponseWriter, r *http.Request, devCode string) {
	development, err := c.repository.GetByCode(r.Context(), devCode)
	if err != nil {
		repoError(w, "Failed to fetch development", err)
		return
	}
	writeJSON(w, http.StatusOK, development)
}

// Create handles POST /api/v1/oakfield/developments
func (c *DevelopmentController) Create(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 CreateDevelopment: Received %s request to %s", r.Method, r.URL.Path)

	var development models.Development
	if err := json.NewDecoder(r.Body).Decode(&development); err != nil {
		log.Printf("❌ CreateDevelopment: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(development.DevCode) == "" {
		log.Printf("❌ CreateDevelopment: dev_code is required")
		http.Error(w, "dev_code is required", http.StatusBadRequest)
		return
	}

	if err := c.repository.Insert(r.Context(), &development); err != nil {
		repoError(w, "Failed to create development", err)
		return
	}

	log.Printf("✅ CreateDevelopment: Successfully created development %s", development.DevCode)
	writeJSON(w, http.StatusOK, development)
}

// Update handles PUT /api/v1/oakfield/developments/:dev_code
func (c *DevelopmentController) Update(w http.ResponseWriter, r *http.Request, devCode string) {
	var req models.DevelopmentUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ UpdateDevelopment: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	development, err := c.repository.Update(r.Context(), devCode, &req)
	if err != nil {
		repoError(w, "Failed to update development", err)
		return
	}

	log.Printf("✅ UpdateDevelopment: Successfully updated development %s", devCode)
	writeJSON(w, http.StatusOK, development)
}

// Delete handles DELETE /api/v1/oakfield/developments/:dev_code
func (c *DevelopmentController) Delete(w http.ResponseWriter, r *http.Request, devCode string) {
	if err := c.repository.Delete(r.Context(), devCode); err != nil {
		repoError(w, "Failed to delete development", err)
		return
	}

	log.Printf("✅ DeleteDevelopment: Successfully deleted development %s", devCode)
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted", "dev_code": devCode})
}
