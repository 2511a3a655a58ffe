package api

import (
	"net/http"

	reqdto "experience-booking/internal/handler/dto/request"
	resdto "experience-booking/internal/handler/dto/response"
	"experience-booking/internal/handler/httperr"
	"experience-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type PromoHandler struct {
	promoQueries queries.PromoQueries
}

func NewPromoHandler(promoQueries queries.PromoQueries) *PromoHandler {
	return &PromoHandler{
		promoQueries: promoQueries,
	}
}

// @Summary Validate promo code
// @Description Evaluate a promo code against a checkout subtotal without applying it
// @Tags promo
// @Accept json
// @Produce json
// @Param request body reqdto.ValidatePromoRequest true "Validation request"
// @Success 200 {object} resdto.PromoValidationResponse
// @Failure 400 {object} map[string]string
// @Router /promo/validate [post]
func (h *PromoHandler) ValidatePromo(c *gin.Context) {
	var req reqdto.ValidatePromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	view, err := h.promoQueries.Validate(c.Request.Context(), req.GetCode(), req.TotalAmount)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.ToPromoValidationResponse(view))
}
