package api

import (
	"alcyxob/physio-app/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the body part, muscle test and exercise catalog.
type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListBodyParts handles GET /api/v1/body-parts
func (h *CatalogHandler) ListBodyParts(c *gin.Context) {
	bodyParts, err := h.catalogService.ListBodyParts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bodyParts)
}

// ListMuscleTests handles GET /api/v1/body-parts/:id/muscle-tests
func (h *CatalogHandler) ListMuscleTests(c *gin.Context) {
	bodyPartID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	tests, err := h.catalogService.ListMuscleTests(c.Request.Context(), bodyPartID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tests)
}

// ListExercises handles GET /api/v1/muscle-tests/:id/exercises
func (h *CatalogHandler) ListExercises(c *gin.Context) {
	muscleTestID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	exercises, err := h.catalogService.ListExercises(c.Request.Context(), muscleTestID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, exercises)
}
