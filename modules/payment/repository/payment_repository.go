package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"tutortrack/core/database"
	"tutortrack/core/logger"
	"tutortrack/core/params"
	"tutortrack/modules/payment/dto"
	"tutortrack/modules/payment/entity"

	"github.com/google/uuid"
)

type PaymentRepository struct {
	DB database.Database
}

func NewPaymentRepository(db database.Database) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

const paymentColumns = `id, owner_id, pupil_id, amount, month, year, payment_date, payment_mode, notes, created_at, updated_at`

func (r *PaymentRepository) Create(ctx context.Context, payment *entity.Payment) (*entity.Payment, error) {
	query := `
		INSERT INTO payments (owner_id, pupil_id, amount, month, year, payment_date, payment_mode, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + paymentColumns

	var created entity.Payment
	err := r.DB.GetContext(ctx, &created, query,
		payment.OwnerID, payment.PupilID, payment.Amount, payment.Month, payment.Year,
		payment.PaymentDate, payment.PaymentMode, payment.Notes)
	if err != nil {
		logger.Error("PaymentRepository:Create", err)
		return nil, err
	}
	return &created, nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`

	var payment entity.Payment
	err := r.DB.GetContext(ctx, &payment, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("PaymentRepository:GetByID", err)
		return nil, err
	}
	return &payment, nil
}

// GetByOwner pages through one tutor's payments, optionally narrowed by
// pupil, month and year
func (r *PaymentRepository) GetByOwner(ctx context.Context, ownerID uuid.UUID, filter dto.PaymentFilter, params params.QueryParams) (*entity.PaginatedPaymentEntity, error) {
	offset := (params.PageNumber - 1) * params.PageSize

	conditions := []string{"owner_id = $1"}
	args := []interface{}{ownerID}
	argIndex := 2

	if filter.PupilID != nil {
		conditions = append(conditions, fmt.Sprintf("pupil_id = $%d", argIndex))
		args = append(args, *filter.PupilID)
		argIndex++
	}
	if filter.Month != nil {
		conditions = append(conditions, fmt.Sprintf("month = $%d", argIndex))
		args = append(args, *filter.Month)
		argIndex++
	}
	if filter.Year != nil {
		conditions = append(conditions, fmt.Sprintf("year = $%d", argIndex))
		args = append(args, *filter.Year)
		argIndex++
	}

	whereClause := " WHERE " + strings.Join(conditions, " AND ")

	var totalItems int
	err := r.DB.GetContext(ctx, &totalItems, "SELECT COUNT(*) FROM payments"+whereClause, args...)
	if err != nil {
		logger.Error("PaymentRepository:GetByOwner - Count", err)
		return nil, err
	}

	dataQuery := `SELECT ` + paymentColumns + ` FROM payments` + whereClause + `
		ORDER BY year DESC, month DESC, created_at DESC
		LIMIT $` + fmt.Sprintf("%d", argIndex) + ` OFFSET $` + fmt.Sprintf("%d", argIndex+1)
	args = append(args, params.PageSize, offset)

	var payments []entity.Payment
	err = r.DB.SelectContext(ctx, &payments, dataQuery, args...)
	if err != nil {
		logger.Error("PaymentRepository:GetByOwner - Select", err)
		return nil, err
	}

	return &entity.PaginatedPaymentEntity{
		Items:      payments,
		TotalItems: totalItems,
		PageNumber: params.PageNumber,
		PageSize:   params.PageSize,
	}, nil
}

func (r *PaymentRepository) Update(ctx context.Context, payment *entity.Payment, id uuid.UUID) (*entity.Payment, error) {
	query := `
		UPDATE payments
		SET pupil_id = $2, amount = $3, month = $4, year = $5,
		    payment_date = $6, payment_mode = $7, notes = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + paymentColumns

	var updated entity.Payment
	err := r.DB.GetContext(ctx, &updated, query,
		id, payment.PupilID, payment.Amount, payment.Month, payment.Year,
		payment.PaymentDate, payment.PaymentMode, payment.Notes)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("PaymentRepository:Update", err)
		return nil, err
	}
	return &updated, nil
}

func (r *PaymentRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res, err := r.DB.SQLx().ExecContext(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		logger.Error("PaymentRepository:Delete", err)
		return 0, err
	}

	affected, _ := res.RowsAffected()
	return affected, nil
}
