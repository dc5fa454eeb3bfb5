package mapper

import (
	"tutortrack/modules/pupil/dto"
	"tutortrack/modules/pupil/entity"

	"github.com/google/uuid"
)

func ToPupilEntity(req *dto.PupilRequest, ownerID uuid.UUID) *entity.Pupil {
	return &entity.Pupil{
		OwnerID:     ownerID,
		FullName:    req.FullName,
		Email:       req.Email,
		Mobile:      req.Mobile,
		FatherName:  req.FatherName,
		MotherName:  req.MotherName,
		DateOfBirth: req.DateOfBirth,
		Gender:      req.Gender,
		EnrolledOn:  req.EnrolledOn,
	}
}

func ToPupilResponse(p *entity.Pupil) *dto.PupilResponse {
	return &dto.PupilResponse{
		ID:          p.ID,
		FullName:    p.FullName,
		Email:       p.Email,
		Mobile:      p.Mobile,
		FatherName:  p.FatherName,
		MotherName:  p.MotherName,
		DateOfBirth: p.DateOfBirth,
		Gender:      p.Gender,
		EnrolledOn:  p.EnrolledOn,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func ToPupilPaginationResponse(page *entity.PaginatedPupilEntity) *dto.PaginatedPupilResponse {
	if page == nil {
		return &dto.PaginatedPupilResponse{Items: []dto.PupilResponse{}}
	}

	items := make([]dto.PupilResponse, len(page.Items))
	for i := range page.Items {
		items[i] = *ToPupilResponse(&page.Items[i])
	}

	totalPages := 0
	if page.PageSize > 0 {
		totalPages = (page.TotalItems + page.PageSize - 1) / page.PageSize
	}

	return &dto.PaginatedPupilResponse{
		Items:      items,
		TotalItems: page.TotalItems,
		TotalPages: totalPages,
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
	}
}
