package request

import "strings"

type ValidatePromoRequest struct {
	Code        string `json:"code" binding:"required,min=1,max=50"`
	TotalAmount int64  `json:"totalAmount" binding:"gte=0"`
}

func (r ValidatePromoRequest) GetCode() string {
	return strings.TrimSpace(r.Code)
}
