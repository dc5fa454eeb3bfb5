package service

import (
	"context"

	"tutortrack/core/constants"
	"tutortrack/core/errors"
	"tutortrack/core/params"
	"tutortrack/modules/payment/dto"
	"tutortrack/modules/payment/entity"
	"tutortrack/modules/payment/mapper"
	"tutortrack/modules/payment/repository"

	"github.com/google/uuid"
)

type PaymentService struct {
	repo *repository.PaymentRepository
}

func NewPaymentService(repo *repository.PaymentRepository) *PaymentService {
	return &PaymentService{repo: repo}
}

func (s *PaymentService) Create(ctx context.Context, ownerID uuid.UUID, req *dto.PaymentRequest) (*dto.PaymentResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	created, err := s.repo.Create(ctx, mapper.ToPaymentEntity(req, ownerID))
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "create payment failed", err)
	}
	return mapper.ToPaymentResponse(created), nil
}

func (s *PaymentService) GetByID(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) (*dto.PaymentResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	payment, appErr := s.requireOwnedPayment(ctx, ownerID, id)
	if appErr != nil {
		return nil, appErr
	}
	return mapper.ToPaymentResponse(payment), nil
}

func (s *PaymentService) GetPayments(ctx context.Context, ownerID uuid.UUID, filter dto.PaymentFilter, queryParams params.QueryParams) (*dto.PaginatedPaymentResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	page, err := s.repo.GetByOwner(ctx, ownerID, filter, queryParams)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get payments failed", err)
	}
	return mapper.ToPaymentPaginationResponse(page), nil
}

func (s *PaymentService) Update(ctx context.Context, ownerID uuid.UUID, id uuid.UUID, req *dto.PaymentRequest) (*dto.PaymentResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if _, appErr := s.requireOwnedPayment(ctx, ownerID, id); appErr != nil {
		return nil, appErr
	}

	updated, err := s.repo.Update(ctx, mapper.ToPaymentEntity(req, ownerID), id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "update payment failed", err)
	}
	if updated == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "payment not found", nil)
	}
	return mapper.ToPaymentResponse(updated), nil
}

func (s *PaymentService) Delete(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if _, appErr := s.requireOwnedPayment(ctx, ownerID, id); appErr != nil {
		return appErr
	}

	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "delete payment failed", err)
	}
	if affected == 0 {
		return errors.NewAppError(errors.ErrNotFound, "payment not found", nil)
	}
	return nil
}

func (s *PaymentService) requireOwnedPayment(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) (*entity.Payment, *errors.AppError) {
	payment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get payment failed", err)
	}
	if payment == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "payment not found", nil)
	}
	if payment.OwnerID != ownerID {
		return nil, errors.NewAppError(errors.ErrForbidden, "payment belongs to another tutor", nil)
	}
	return payment, nil
}
