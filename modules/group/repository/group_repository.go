package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"tutortrack/core/database"
	"tutortrack/core/logger"
	"tutortrack/core/params"
	"tutortrack/modules/group/entity"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type GroupRepository struct {
	DB database.Database
}

func NewGroupRepository(db database.Database) *GroupRepository {
	return &GroupRepository{DB: db}
}

const groupColumns = `id, owner_id, name, description, created_at, updated_at`

func (r *GroupRepository) Create(ctx context.Context, group *entity.Group) (*entity.Group, error) {
	query := `
		INSERT INTO groups (owner_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING ` + groupColumns

	var created entity.Group
	err := r.DB.GetContext(ctx, &created, query, group.OwnerID, group.Name, group.Description)
	if err != nil {
		logger.Error("GroupRepository:Create", err)
		return nil, err
	}
	return &created, nil
}

func (r *GroupRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Group, error) {
	query := `SELECT ` + groupColumns + ` FROM groups WHERE id = $1`

	var group entity.Group
	err := r.DB.GetContext(ctx, &group, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("GroupRepository:GetByID", err)
		return nil, err
	}
	return &group, nil
}

func (r *GroupRepository) GetByOwner(ctx context.Context, ownerID uuid.UUID, params params.QueryParams) (*entity.PaginatedGroupEntity, error) {
	offset := (params.PageNumber - 1) * params.PageSize

	conditions := []string{"owner_id = $1"}
	args := []interface{}{ownerID}
	argIndex := 2

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", argIndex))
		args = append(args, "%"+params.Search+"%")
		argIndex++
	}

	whereClause := " WHERE " + strings.Join(conditions, " AND ")

	var totalItems int
	err := r.DB.GetContext(ctx, &totalItems, "SELECT COUNT(*) FROM groups"+whereClause, args...)
	if err != nil {
		logger.Error("GroupRepository:GetByOwner - Count", err)
		return nil, err
	}

	dataQuery := `SELECT ` + groupColumns + ` FROM groups` + whereClause + `
		ORDER BY created_at DESC
		LIMIT $` + fmt.Sprintf("%d", argIndex) + ` OFFSET $` + fmt.Sprintf("%d", argIndex+1)
	args = append(args, params.PageSize, offset)

	var groups []entity.Group
	err = r.DB.SelectContext(ctx, &groups, dataQuery, args...)
	if err != nil {
		logger.Error("GroupRepository:GetByOwner - Select", err)
		return nil, err
	}

	return &entity.PaginatedGroupEntity{
		Items:      groups,
		TotalItems: totalItems,
		PageNumber: params.PageNumber,
		PageSize:   params.PageSize,
	}, nil
}

func (r *GroupRepository) Update(ctx context.Context, group *entity.Group, id uuid.UUID) (*entity.Group, error) {
	query := `
		UPDATE groups
		SET name = $2, description = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + groupColumns

	var updated entity.Group
	err := r.DB.GetContext(ctx, &updated, query, id, group.Name, group.Description)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("GroupRepository:Update", err)
		return nil, err
	}
	return &updated, nil
}

// Delete removes the group and its membership rows in one transaction
func (r *GroupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.DB.SQLx().BeginTxx(ctx, nil)
	if err != nil {
		logger.Error("GroupRepository:Delete - BeginTx", err)
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM group_pupils WHERE group_id = $1`, id); err != nil {
		logger.Error("GroupRepository:Delete - Members", err)
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM groups WHERE id = $1`, id); err != nil {
		logger.Error("GroupRepository:Delete", err)
		return err
	}

	if err := tx.Commit(); err != nil {
		logger.Error("GroupRepository:Delete - Commit", err)
		return err
	}
	return nil
}

// ===================== Membership =====================

// AddPupils batch-inserts memberships in one transaction, skipping pupils
// that are already members
func (r *GroupRepository) AddPupils(ctx context.Context, groupID uuid.UUID, pupilIDs []uuid.UUID) error {
	if len(pupilIDs) == 0 {
		return nil
	}

	tx, err := r.DB.SQLx().BeginTxx(ctx, nil)
	if err != nil {
		logger.Error("GroupRepository:AddPupils - BeginTx", err)
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO group_pupils (group_id, pupil_id)
		VALUES ($1, $2)
		ON CONFLICT (group_id, pupil_id) DO NOTHING
	`
	for _, pupilID := range pupilIDs {
		if _, err := tx.ExecContext(ctx, query, groupID, pupilID); err != nil {
			logger.Error("GroupRepository:AddPupils - Insert", err)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		logger.Error("GroupRepository:AddPupils - Commit", err)
		return err
	}
	return nil
}

func (r *GroupRepository) GetPupils(ctx context.Context, groupID uuid.UUID) ([]entity.GroupPupilWithName, error) {
	query := `
		SELECT gp.id, gp.group_id, gp.pupil_id, gp.added_at, p.full_name AS pupil_name
		FROM group_pupils gp
		JOIN pupils p ON p.id = gp.pupil_id
		WHERE gp.group_id = $1
		ORDER BY gp.added_at
	`

	var members []entity.GroupPupilWithName
	err := r.DB.SelectContext(ctx, &members, query, groupID)
	if err != nil {
		logger.Error("GroupRepository:GetPupils", err)
		return nil, err
	}
	return members, nil
}

func (r *GroupRepository) RemovePupils(ctx context.Context, groupID uuid.UUID, pupilIDs []uuid.UUID) (int64, error) {
	query := `DELETE FROM group_pupils WHERE group_id = $1 AND pupil_id = ANY($2)`

	res, err := r.DB.SQLx().ExecContext(ctx, query, groupID, pq.Array(pupilIDs))
	if err != nil {
		logger.Error("GroupRepository:RemovePupils", err)
		return 0, err
	}

	affected, _ := res.RowsAffected()
	return affected, nil
}
