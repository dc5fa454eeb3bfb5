package service

import (
	"context"

	"tutortrack/core/constants"
	"tutortrack/core/errors"
	"tutortrack/core/params"
	"tutortrack/modules/notification/dto"
	"tutortrack/modules/notification/entity"
	"tutortrack/modules/notification/repository"

	"github.com/google/uuid"
)

type NotificationService struct {
	repo *repository.NotificationRepository
}

func NewNotificationService(repo *repository.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

func (s *NotificationService) Create(ctx context.Context, req *dto.CreateNotificationRequest) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	notif := &entity.Notification{
		UserID:  req.UserID,
		Kind:    req.Kind,
		Title:   req.Title,
		Message: req.Message,
		Payload: entity.JSONB(req.Payload),
	}
	if err := s.repo.Create(ctx, notif); err != nil {
		return errors.NewAppError(errors.ErrCreateFailed, "create notification failed", err)
	}
	return nil
}

func (s *NotificationService) GetMyNotifications(ctx context.Context, userID uuid.UUID, queryParams params.QueryParams) (*dto.PaginatedNotificationResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	page, err := s.repo.GetByUserID(ctx, userID, queryParams)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get notifications failed", err)
	}
	return toPaginationResponse(page), nil
}

func (s *NotificationService) MarkAsRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if err := s.repo.MarkAsRead(ctx, userID, ids); err != nil {
		return errors.NewAppError(errors.ErrUpdateFailed, "mark notifications as read failed", err)
	}
	return nil
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if err := s.repo.MarkAllAsRead(ctx, userID); err != nil {
		return errors.NewAppError(errors.ErrUpdateFailed, "mark all notifications as read failed", err)
	}
	return nil
}

func (s *NotificationService) CountUnread(ctx context.Context, userID uuid.UUID) (int, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, errors.NewAppError(errors.ErrGetFailed, "count unread notifications failed", err)
	}
	return count, nil
}

func toResponse(n *entity.Notification) *dto.NotificationResponse {
	return &dto.NotificationResponse{
		ID:        n.ID,
		Kind:      n.Kind,
		Title:     n.Title,
		Message:   n.Message,
		Payload:   n.Payload,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}

func toPaginationResponse(page *entity.PaginatedNotificationEntity) *dto.PaginatedNotificationResponse {
	if page == nil {
		return &dto.PaginatedNotificationResponse{Items: []dto.NotificationResponse{}}
	}

	items := make([]dto.NotificationResponse, len(page.Items))
	for i := range page.Items {
		items[i] = *toResponse(&page.Items[i])
	}

	totalPages := 0
	if page.PageSize > 0 {
		totalPages = (page.TotalItems + page.PageSize - 1) / page.PageSize
	}

	return &dto.PaginatedNotificationResponse{
		Items:      items,
		TotalItems: page.TotalItems,
		TotalPages: totalPages,
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
	}
}
