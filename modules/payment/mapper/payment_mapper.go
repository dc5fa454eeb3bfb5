package mapper

import (
	"tutortrack/modules/payment/dto"
	"tutortrack/modules/payment/entity"

	"github.com/google/uuid"
)

func ToPaymentEntity(req *dto.PaymentRequest, ownerID uuid.UUID) *entity.Payment {
	mode := req.PaymentMode
	if mode == "" {
		mode = entity.ModeCash
	}
	return &entity.Payment{
		OwnerID:     ownerID,
		PupilID:     req.PupilID,
		Amount:      req.Amount,
		Month:       req.Month,
		Year:        req.Year,
		PaymentDate: req.PaymentDate,
		PaymentMode: mode,
		Notes:       req.Notes,
	}
}

func ToPaymentResponse(p *entity.Payment) *dto.PaymentResponse {
	return &dto.PaymentResponse{
		ID:          p.ID,
		PupilID:     p.PupilID,
		Amount:      p.Amount,
		Month:       p.Month,
		Year:        p.Year,
		PaymentDate: p.PaymentDate,
		PaymentMode: p.PaymentMode,
		Notes:       p.Notes,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func ToPaymentPaginationResponse(page *entity.PaginatedPaymentEntity) *dto.PaginatedPaymentResponse {
	if page == nil {
		return &dto.PaginatedPaymentResponse{Items: []dto.PaymentResponse{}}
	}

	items := make([]dto.PaymentResponse, len(page.Items))
	for i := range page.Items {
		items[i] = *ToPaymentResponse(&page.Items[i])
	}

	totalPages := 0
	if page.PageSize > 0 {
		totalPages = (page.TotalItems + page.PageSize - 1) / page.PageSize
	}

	return &dto.PaginatedPaymentResponse{
		Items:      items,
		TotalItems: page.TotalItems,
		TotalPages: totalPages,
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
	}
}
