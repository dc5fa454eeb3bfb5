package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"tutortrack/core/database"
	"tutortrack/core/logger"
	"tutortrack/core/params"
	"tutortrack/modules/pupil/entity"

	"github.com/google/uuid"
)

type PupilRepository struct {
	DB database.Database
}

func NewPupilRepository(db database.Database) *PupilRepository {
	return &PupilRepository{DB: db}
}

const pupilColumns = `id, owner_id, full_name, email, mobile, father_name, mother_name, date_of_birth, gender, enrolled_on, created_at, updated_at`

func (r *PupilRepository) Create(ctx context.Context, pupil *entity.Pupil) (*entity.Pupil, error) {
	query := `
		INSERT INTO pupils (owner_id, full_name, email, mobile, father_name, mother_name, date_of_birth, gender, enrolled_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + pupilColumns

	var created entity.Pupil
	err := r.DB.GetContext(ctx, &created, query,
		pupil.OwnerID, pupil.FullName, pupil.Email, pupil.Mobile,
		pupil.FatherName, pupil.MotherName, pupil.DateOfBirth, pupil.Gender, pupil.EnrolledOn)
	if err != nil {
		logger.Error("PupilRepository:Create", err)
		return nil, err
	}
	return &created, nil
}

func (r *PupilRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Pupil, error) {
	query := `SELECT ` + pupilColumns + ` FROM pupils WHERE id = $1`

	var pupil entity.Pupil
	err := r.DB.GetContext(ctx, &pupil, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("PupilRepository:GetByID", err)
		return nil, err
	}
	return &pupil, nil
}

// GetByOwner pages through one tutor's pupils, optionally filtered by a
// case-insensitive name search
func (r *PupilRepository) GetByOwner(ctx context.Context, ownerID uuid.UUID, params params.QueryParams) (*entity.PaginatedPupilEntity, error) {
	offset := (params.PageNumber - 1) * params.PageSize

	conditions := []string{"owner_id = $1"}
	args := []interface{}{ownerID}
	argIndex := 2

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf("full_name ILIKE $%d", argIndex))
		args = append(args, "%"+params.Search+"%")
		argIndex++
	}

	whereClause := " WHERE " + strings.Join(conditions, " AND ")

	var totalItems int
	err := r.DB.GetContext(ctx, &totalItems, "SELECT COUNT(*) FROM pupils"+whereClause, args...)
	if err != nil {
		logger.Error("PupilRepository:GetByOwner - Count", err)
		return nil, err
	}

	dataQuery := `SELECT ` + pupilColumns + ` FROM pupils` + whereClause + `
		ORDER BY created_at DESC
		LIMIT $` + fmt.Sprintf("%d", argIndex) + ` OFFSET $` + fmt.Sprintf("%d", argIndex+1)
	args = append(args, params.PageSize, offset)

	var pupils []entity.Pupil
	err = r.DB.SelectContext(ctx, &pupils, dataQuery, args...)
	if err != nil {
		logger.Error("PupilRepository:GetByOwner - Select", err)
		return nil, err
	}

	return &entity.PaginatedPupilEntity{
		Items:      pupils,
		TotalItems: totalItems,
		PageNumber: params.PageNumber,
		PageSize:   params.PageSize,
	}, nil
}

func (r *PupilRepository) Update(ctx context.Context, pupil *entity.Pupil, id uuid.UUID) (*entity.Pupil, error) {
	query := `
		UPDATE pupils
		SET full_name = $2, email = $3, mobile = $4, father_name = $5, mother_name = $6,
		    date_of_birth = $7, gender = $8, enrolled_on = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + pupilColumns

	var updated entity.Pupil
	err := r.DB.GetContext(ctx, &updated, query,
		id, pupil.FullName, pupil.Email, pupil.Mobile,
		pupil.FatherName, pupil.MotherName, pupil.DateOfBirth, pupil.Gender, pupil.EnrolledOn)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("PupilRepository:Update", err)
		return nil, err
	}
	return &updated, nil
}

func (r *PupilRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result, err := r.DB.SQLx().ExecContext(ctx, `DELETE FROM pupils WHERE id = $1`, id)
	if err != nil {
		logger.Error("PupilRepository:Delete", err)
		return 0, err
	}

	affected, _ := result.RowsAffected()
	return affected, nil
}
