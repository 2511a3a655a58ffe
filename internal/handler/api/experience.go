package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	resdto "experience-booking/internal/handler/dto/response"
	"experience-booking/internal/handler/httperr"
	"experience-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ExperienceHandler struct {
	experienceQueries queries.ExperienceQueries
}

func NewExperienceHandler(experienceQueries queries.ExperienceQueries) *ExperienceHandler {
	return &ExperienceHandler{
		experienceQueries: experienceQueries,
	}
}

// @Summary List experiences
// @Description List experiences with optional catalog filters
// @Tags experiences
// @Produce json
// @Param category query string false "Exact category match"
// @Param min_price query int false "Minimum price (inclusive)"
// @Param max_price query int false "Maximum price (inclusive)"
// @Param search query string false "Case-insensitive search over title, description and location"
// @Success 200 {object} resdto.ExperienceListResponse
// @Failure 400 {object} map[string]string
// @Router /experiences [get]
func (h *ExperienceHandler) ListExperiences(c *gin.Context) {
	filter, err := parseExperienceFilter(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
		return
	}

	views, err := h.experienceQueries.List(c.Request.Context(), filter)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.ToExperienceListResponse(views))
}

// @Summary Get experience
// @Description Get experience detail including its slots
// @Tags experiences
// @Produce json
// @Param id path string true "Experience ID"
// @Success 200 {object} resdto.ExperienceDetailResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /experiences/{id} [get]
func (h *ExperienceHandler) GetExperience(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid experience ID format", nil)
		return
	}

	view, err := h.experienceQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrExperienceNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Experience not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.ToExperienceDetailResponse(view))
}

// @Summary List experience slots
// @Description List slots for an experience, optionally restricted to one day
// @Tags experiences
// @Produce json
// @Param id path string true "Experience ID"
// @Param date query string false "Day filter in YYYY-MM-DD (UTC)"
// @Success 200 {object} resdto.SlotListResponse
// @Failure 400 {object} map[string]string
// @Router /experiences/{id}/slots [get]
func (h *ExperienceHandler) ListSlots(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid experience ID format", nil)
		return
	}

	var day *time.Time
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, parseErr := time.ParseInLocation("2006-01-02", dateStr, time.UTC)
		if parseErr != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, parseErr, "Invalid date format, expected YYYY-MM-DD", nil)
			return
		}
		day = &parsed
	}

	views, err := h.experienceQueries.ListSlots(c.Request.Context(), id, day)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.ToSlotListResponse(views))
}

func parseExperienceFilter(c *gin.Context) (queries.ExperienceFilter, error) {
	var filter queries.ExperienceFilter

	if category := strings.TrimSpace(c.Query("category")); category != "" {
		filter.Category = &category
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		filter.Search = &search
	}

	if minStr := c.Query("min_price"); minStr != "" {
		minPrice, err := strconv.ParseInt(minStr, 10, 64)
		if err != nil || minPrice < 0 {
			return filter, errors.New("invalid min_price")
		}
		filter.MinPrice = &minPrice
	}
	if maxStr := c.Query("max_price"); maxStr != "" {
		maxPrice, err := strconv.ParseInt(maxStr, 10, 64)
		if err != nil || maxPrice < 0 {
			return filter, errors.New("invalid max_price")
		}
		filter.MaxPrice = &maxPrice
	}

	return filter, nil
}
