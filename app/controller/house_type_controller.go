package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"oakfield-backend/models"
	"oakfield-backend/repository"
)

// HouseTypeController handles HTTP requests for house types
type HouseTypeController struct {
	repository repository.HouseTypeRepositoryInterface
}

// NewHouseTypeController creates a new HouseTypeController
func NewHouseTypeController(repo repository.HouseTypeRepositoryInterface) *HouseTypeController {
	return &HouseTypeController{
		repository: repo,
	}
}

// List handles GET /api/v1/oakfield/house-types?beds=N
func (c *HouseTypeController) List(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ListHouseTypes: Received %s request to %s", r.Method, r.URL.Path)

	var beds *int
	if s := r.URL.Query().Get("beds"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			log.Printf("❌ ListHouseTypes: Invalid beds parameter: %s", s)
			http.Error(w, "invalid beds parameter", http.StatusBadRequest)
			return
		}
		beds = &v
	}

	skip, limit := parsePagination(r)
	houseTypes, err := c.repository.List(r.Context(), beds, skip, limit)
	if err != nil {
		repoError(w, "Failed to fetch house types", err)
		return
	}

	log.Printf("✅ ListHouseTypes: Successfully fetched %d house types", len(houseTypes))
	writeJSON(w, http.StatusOK, houseTypes)
}

// Get handles GET /api/v1/oakfield/house-types/:id
func (c *HouseTypeController) Get(w http.ResponseWriter, r *http.Request, idStr string) {
	id, err := strconv.Atoi(idStr)
	if err != nil {
		log.Printf("❌ GetHouseType: Invalid house type id: %s", idStr)
		http.Error(w, "invalid house type id parameter", http.StatusBadRequest)
		return
	}

	houseType, err := c.repository.GetByID(r.Context(), id)
	if err != nil {
		repoError(w, "Failed to fetch house type", err)
		return
	}
	writeJSON(w, http.StatusOK, houseType)
}

// Create handles POST /api/v1/oakfield/house-types
func (c *HouseTypeController) Create(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 CreateHouseType: Received %s request to %s", r.Method, r.URL.Path)

	var houseType models.HouseType
	if err := json.NewDecoder(r.Body).Decode(&houseType); err != nil {
		log.Printf("❌ CreateHouseType: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(houseType.Name) == "" {
		log.Printf("❌ CreateHouseType: name is required")
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	created, err := c.repository.Insert(r.Context(), &houseType)
	if err != nil {
		repoError(w, "Failed to create house type", err)
		return
	}

	log.Printf("✅ CreateHouseType: Successfully created house type %d (%s)", created.ID, created.Name)
	writeJSON(w, http.StatusOK, created)
}

// Update handles PUT /api/v1/oakfield/house-types/:id
func (c *HouseTypeController) Update(w http.ResponseWriter, r *http.Request, idStr string) {
	id, err := strconv.Atoi(idStr)
	if err != nil {
		log.Printf("❌ UpdateHouseType: Invalid house type id: %s", idStr)
		http.Error(w, "invalid house type id parameter", http.StatusBadRequest)
		return
	}

	var req models.HouseTypeUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ UpdateHouseType: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	houseType, err := c.repository.Update(r.Context(), id, &req)
	if err != nil {
		repoError(w, "Failed to update house type", err)
		return
	}

	log.Printf("✅ UpdateHouseType: Successfully updated house type %d", id)
	writeJSON(w, http.StatusOK, houseType)
}
