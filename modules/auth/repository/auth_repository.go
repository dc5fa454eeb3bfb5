package repository

import (
	"context"
	"database/sql"

	"tutortrack/core/database"
	"tutortrack/core/logger"
	"tutortrack/modules/auth/entity"

	"github.com/google/uuid"
)

type AuthRepository struct {
	DB database.Database
}

func NewAuthRepository(db database.Database) *AuthRepository {
	return &AuthRepository{DB: db}
}

const userColumns = `id, google_user_id, email, full_name, profile_pic_url, last_login_at, created_at, updated_at`

func (r *AuthRepository) CreateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	query := `
		INSERT INTO users (google_user_id, email, full_name, profile_pic_url, last_login_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING ` + userColumns

	var created entity.User
	err := r.DB.GetContext(ctx, &created, query,
		user.GoogleUserID, user.Email, user.FullName, user.ProfilePicURL)
	if err != nil {
		logger.Error("AuthRepository:CreateUser", err)
		return nil, err
	}
	return &created, nil
}

func (r *AuthRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var user entity.User
	err := r.DB.GetContext(ctx, &user, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("AuthRepository:GetUserByID", err)
		return nil, err
	}
	return &user, nil
}

func (r *AuthRepository) GetUserByGoogleID(ctx context.Context, googleUserID string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE google_user_id = $1`

	var user entity.User
	err := r.DB.GetContext(ctx, &user, query, googleUserID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("AuthRepository:GetUserByGoogleID", err)
		return nil, err
	}
	return &user, nil
}

func (r *AuthRepository) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	var user entity.User
	err := r.DB.GetContext(ctx, &user, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("AuthRepository:GetUserByEmail", err)
		return nil, err
	}
	return &user, nil
}

func (r *AuthRepository) UpdateProfile(ctx context.Context, id uuid.UUID, fullName string, profilePicURL *string) (*entity.User, error) {
	query := `
		UPDATE users
		SET full_name = $2, profile_pic_url = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	var updated entity.User
	err := r.DB.GetContext(ctx, &updated, query, id, fullName, profilePicURL)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("AuthRepository:UpdateProfile", err)
		return nil, err
	}
	return &updated, nil
}

func (r *AuthRepository) UpdateAvatar(ctx context.Context, id uuid.UUID, profilePicURL string) error {
	_, err := r.DB.SQLx().ExecContext(ctx,
		`UPDATE users SET profile_pic_url = $2, updated_at = NOW() WHERE id = $1`, id, profilePicURL)
	if err != nil {
		logger.Error("AuthRepository:UpdateAvatar", err)
		return err
	}
	return nil
}

func (r *AuthRepository) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	_, err := r.DB.SQLx().ExecContext(ctx,
		`UPDATE users SET last_login_at = NOW(), updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		logger.Error("AuthRepository:TouchLastLogin", err)
		return err
	}
	return nil
}
