package service

import (
	"context"

	"tutortrack/core/constants"
	"tutortrack/core/errors"
	"tutortrack/core/params"
	"tutortrack/modules/group/dto"
	"tutortrack/modules/group/entity"
	"tutortrack/modules/group/mapper"
	"tutortrack/modules/group/repository"

	"github.com/google/uuid"
)

type GroupService struct {
	repo *repository.GroupRepository
}

func NewGroupService(repo *repository.GroupRepository) *GroupService {
	return &GroupService{repo: repo}
}

func (s *GroupService) Create(ctx context.Context, ownerID uuid.UUID, req *dto.GroupRequest) (*dto.GroupResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if req.Name == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "group name is required", nil)
	}

	created, err := s.repo.Create(ctx, mapper.ToGroupEntity(req, ownerID))
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "create group failed", err)
	}
	return mapper.ToGroupResponse(created), nil
}

func (s *GroupService) GetByID(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) (*dto.GroupResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	group, appErr := s.requireOwnedGroup(ctx, ownerID, id)
	if appErr != nil {
		return nil, appErr
	}
	return mapper.ToGroupResponse(group), nil
}

func (s *GroupService) GetGroups(ctx context.Context, ownerID uuid.UUID, queryParams params.QueryParams) (*dto.PaginatedGroupResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	page, err := s.repo.GetByOwner(ctx, ownerID, queryParams)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get groups failed", err)
	}
	return mapper.ToGroupPaginationResponse(page), nil
}

func (s *GroupService) Update(ctx context.Context, ownerID uuid.UUID, id uuid.UUID, req *dto.GroupRequest) (*dto.GroupResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if req.Name == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "group name is required", nil)
	}
	if _, appErr := s.requireOwnedGroup(ctx, ownerID, id); appErr != nil {
		return nil, appErr
	}

	updated, err := s.repo.Update(ctx, mapper.ToGroupEntity(req, ownerID), id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "update group failed", err)
	}
	if updated == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "group not found", nil)
	}
	return mapper.ToGroupResponse(updated), nil
}

func (s *GroupService) Delete(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if _, appErr := s.requireOwnedGroup(ctx, ownerID, id); appErr != nil {
		return appErr
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "delete group failed", err)
	}
	return nil
}

// ===================== Membership =====================

func (s *GroupService) AddPupils(ctx context.Context, ownerID uuid.UUID, groupID uuid.UUID, req *dto.AddPupilsToGroupRequest) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if len(req.PupilIDs) == 0 {
		return errors.NewAppError(errors.ErrInvalidInput, "no pupil IDs provided", nil)
	}
	if _, appErr := s.requireOwnedGroup(ctx, ownerID, groupID); appErr != nil {
		return appErr
	}

	if err := s.repo.AddPupils(ctx, groupID, req.PupilIDs); err != nil {
		return errors.NewAppError(errors.ErrCreateFailed, "add pupils to group failed", err)
	}
	return nil
}

func (s *GroupService) GetPupils(ctx context.Context, ownerID uuid.UUID, groupID uuid.UUID) (*dto.GroupPupilsResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	group, appErr := s.requireOwnedGroup(ctx, ownerID, groupID)
	if appErr != nil {
		return nil, appErr
	}

	members, err := s.repo.GetPupils(ctx, groupID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get group pupils failed", err)
	}

	pupils := make([]dto.GroupPupilResponse, len(members))
	for i := range members {
		pupils[i] = *mapper.ToGroupPupilResponse(&members[i])
	}

	return &dto.GroupPupilsResponse{
		GroupID: groupID,
		Group:   mapper.ToGroupResponse(group),
		Pupils:  pupils,
	}, nil
}

func (s *GroupService) RemovePupils(ctx context.Context, ownerID uuid.UUID, groupID uuid.UUID, pupilIDs []uuid.UUID) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if _, appErr := s.requireOwnedGroup(ctx, ownerID, groupID); appErr != nil {
		return appErr
	}

	affected, err := s.repo.RemovePupils(ctx, groupID, pupilIDs)
	if err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "remove pupils from group failed", err)
	}
	if affected == 0 {
		return errors.NewAppError(errors.ErrNotFound, "no matching memberships found", nil)
	}
	return nil
}

func (s *GroupService) requireOwnedGroup(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) (*entity.Group, *errors.AppError) {
	group, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get group failed", err)
	}
	if group == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "group not found", nil)
	}
	if group.OwnerID != ownerID {
		return nil, errors.NewAppError(errors.ErrForbidden, "group belongs to another tutor", nil)
	}
	return group, nil
}
