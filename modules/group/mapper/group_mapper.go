package mapper

import (
	"tutortrack/modules/group/dto"
	"tutortrack/modules/group/entity"

	"github.com/google/uuid"
)

func ToGroupEntity(req *dto.GroupRequest, ownerID uuid.UUID) *entity.Group {
	return &entity.Group{
		OwnerID:     ownerID,
		Name:        req.Name,
		Description: req.Description,
	}
}

func ToGroupResponse(group *entity.Group) *dto.GroupResponse {
	return &dto.GroupResponse{
		ID:          group.ID,
		Name:        group.Name,
		Description: group.Description,
		CreatedAt:   group.CreatedAt,
		UpdatedAt:   group.UpdatedAt,
	}
}

func ToGroupPaginationResponse(page *entity.PaginatedGroupEntity) *dto.PaginatedGroupResponse {
	if page == nil {
		return &dto.PaginatedGroupResponse{Items: []dto.GroupResponse{}}
	}

	items := make([]dto.GroupResponse, len(page.Items))
	for i := range page.Items {
		items[i] = *ToGroupResponse(&page.Items[i])
	}

	totalPages := 0
	if page.PageSize > 0 {
		totalPages = (page.TotalItems + page.PageSize - 1) / page.PageSize
	}

	return &dto.PaginatedGroupResponse{
		Items:      items,
		TotalItems: page.TotalItems,
		TotalPages: totalPages,
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
	}
}

func ToGroupPupilResponse(member *entity.GroupPupilWithName) *dto.GroupPupilResponse {
	return &dto.GroupPupilResponse{
		ID:        member.ID,
		PupilID:   member.PupilID,
		PupilName: member.PupilName,
		AddedAt:   member.AddedAt,
	}
}
