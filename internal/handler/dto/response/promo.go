package response

import "experience-booking/internal/usecase/queries"

type PromoValidationResponse struct {
	Valid    bool    `json:"valid"`
	Discount int64   `json:"discount"`
	Type     string  `json:"type"`
	Message  *string `json:"message,omitempty"`
}

func ToPromoValidationResponse(v *queries.PromoValidationView) PromoValidationResponse {
	return PromoValidationResponse{
		Valid:    v.Valid,
		Discount: v.Discount,
		Type:     v.Type,
		Message:  v.Message,
	}
}
