package service

import (
	"context"

	"tutortrack/core/constants"
	"tutortrack/core/errors"
	"tutortrack/core/params"
	"tutortrack/modules/pupil/dto"
	"tutortrack/modules/pupil/entity"
	"tutortrack/modules/pupil/mapper"
	"tutortrack/modules/pupil/repository"

	"github.com/google/uuid"
)

type PupilService struct {
	repo *repository.PupilRepository
}

func NewPupilService(repo *repository.PupilRepository) *PupilService {
	return &PupilService{repo: repo}
}

func (s *PupilService) Create(ctx context.Context, ownerID uuid.UUID, req *dto.PupilRequest) (*dto.PupilResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	created, err := s.repo.Create(ctx, mapper.ToPupilEntity(req, ownerID))
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "create pupil failed", err)
	}
	return mapper.ToPupilResponse(created), nil
}

func (s *PupilService) GetByID(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) (*dto.PupilResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	pupil, appErr := s.requireOwnedPupil(ctx, ownerID, id)
	if appErr != nil {
		return nil, appErr
	}
	return mapper.ToPupilResponse(pupil), nil
}

func (s *PupilService) GetPupils(ctx context.Context, ownerID uuid.UUID, queryParams params.QueryParams) (*dto.PaginatedPupilResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	page, err := s.repo.GetByOwner(ctx, ownerID, queryParams)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get pupils failed", err)
	}
	return mapper.ToPupilPaginationResponse(page), nil
}

func (s *PupilService) Update(ctx context.Context, ownerID uuid.UUID, id uuid.UUID, req *dto.PupilRequest) (*dto.PupilResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if _, appErr := s.requireOwnedPupil(ctx, ownerID, id); appErr != nil {
		return nil, appErr
	}

	updated, err := s.repo.Update(ctx, mapper.ToPupilEntity(req, ownerID), id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "update pupil failed", err)
	}
	if updated == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "pupil not found", nil)
	}
	return mapper.ToPupilResponse(updated), nil
}

func (s *PupilService) Delete(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if _, appErr := s.requireOwnedPupil(ctx, ownerID, id); appErr != nil {
		return appErr
	}

	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "delete pupil failed", err)
	}
	if affected == 0 {
		return errors.NewAppError(errors.ErrNotFound, "pupil not found", nil)
	}
	return nil
}

func (s *PupilService) requireOwnedPupil(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) (*entity.Pupil, *errors.AppError) {
	pupil, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get pupil failed", err)
	}
	if pupil == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "pupil not found", nil)
	}
	if pupil.OwnerID != ownerID {
		return nil, errors.NewAppError(errors.ErrForbidden, "pupil belongs to another tutor", nil)
	}
	return pupil, nil
}
