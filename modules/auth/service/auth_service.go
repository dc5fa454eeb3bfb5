package service

import (
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"tutortrack/core/cache"
	"tutortrack/core/config"
	"tutortrack/core/constants"
	"tutortrack/core/errors"
	"tutortrack/core/logger"
	"tutortrack/core/storage"
	"tutortrack/core/utils"
	"tutortrack/modules/auth/dto"
	"tutortrack/modules/auth/entity"
	"tutortrack/modules/auth/mapper"
	"tutortrack/modules/auth/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type AuthService struct {
	repo    *repository.AuthRepository
	config  *config.Config
	cache   cache.Cache
	storage storage.ObjectStorage
}

func NewAuthService(repo *repository.AuthRepository, cfg *config.Config, c cache.Cache, st storage.ObjectStorage) *AuthService {
	return &AuthService{
		repo:    repo,
		config:  cfg,
		cache:   c,
		storage: st,
	}
}

func (s *AuthService) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     s.config.GoogleAPI.ClientID,
		ClientSecret: s.config.GoogleAPI.ClientSecret,
		RedirectURL:  s.config.GoogleAPI.RedirectURI,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

// GetGoogleAuthURL builds the Google consent URL with a one-time state token
func (s *AuthService) GetGoogleAuthURL(ctx context.Context) (*dto.GoogleAuthURLResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	state := utils.GenerateRandomString(32)
	if err := s.cache.SetOAuthState(ctx, state, constants.OAuthStateTTL); err != nil {
		logger.Error("AuthService:GetGoogleAuthURL", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to store oauth state", err)
	}

	authURL := s.oauthConfig().AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	return &dto.GoogleAuthURLResponse{AuthURL: authURL}, nil
}

// HandleGoogleCallback exchanges the authorization code, upserts the user
// and issues an access/refresh token pair
func (s *AuthService) HandleGoogleCallback(ctx context.Context, state string, code string) (*dto.TokenPairResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	ok, err := s.cache.ConsumeOAuthState(ctx, state)
	if err != nil {
		logger.Error("AuthService:HandleGoogleCallback - ConsumeOAuthState", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to validate oauth state", err)
	}
	if !ok {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Invalid or expired oauth state", nil)
	}

	token, err := s.oauthConfig().Exchange(ctx, code)
	if err != nil {
		logger.Error("AuthService:HandleGoogleCallback - Exchange", err)
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Failed to exchange authorization code", err)
	}

	info, appErr := s.getGoogleUserInfo(ctx, token.AccessToken)
	if appErr != nil {
		return nil, appErr
	}

	blocked, err := s.cache.IsLoginBlocked(ctx, info.Email)
	if err != nil {
		logger.Error("AuthService:HandleGoogleCallback - IsLoginBlocked", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to check login attempts", err)
	}
	if blocked {
		return nil, errors.NewAppError(errors.ErrForbidden, "Too many login attempts, try again later", nil)
	}

	user, appErr := s.findOrCreateUser(ctx, info)
	if appErr != nil {
		if _, incErr := s.cache.IncrementLoginAttempt(ctx, info.Email); incErr != nil {
			logger.Error("AuthService:HandleGoogleCallback - IncrementLoginAttempt", incErr)
		}
		return nil, appErr
	}

	if err := s.repo.TouchLastLogin(ctx, user.ID); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to record login", err)
	}

	return s.issueTokenPair(user.ID)
}

func (s *AuthService) getGoogleUserInfo(ctx context.Context, accessToken string) (*dto.GoogleUserInfo, *errors.AppError) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleUserInfoURL, nil)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to build userinfo request", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		logger.Error("AuthService:getGoogleUserInfo", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to fetch user info", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewAppError(errors.ErrUnauthorized, fmt.Sprintf("userinfo request failed with status %d", resp.StatusCode), nil)
	}

	var info dto.GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to decode user info", err)
	}
	if info.ID == "" || info.Email == "" {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Incomplete user info from provider", nil)
	}
	return &info, nil
}

func (s *AuthService) findOrCreateUser(ctx context.Context, info *dto.GoogleUserInfo) (*entity.User, *errors.AppError) {
	user, err := s.repo.GetUserByGoogleID(ctx, info.ID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to look up user", err)
	}
	if user != nil {
		return user, nil
	}

	// A user created before Google sign-in linked accounts by email
	user, err = s.repo.GetUserByEmail(ctx, info.Email)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to look up user", err)
	}
	if user != nil {
		return user, nil
	}

	created, err := s.repo.CreateUser(ctx, mapper.ToUserEntity(info))
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "failed to create user", err)
	}
	return created, nil
}

func (s *AuthService) issueTokenPair(userID uuid.UUID) (*dto.TokenPairResponse, *errors.AppError) {
	accessToken, err := utils.GenerateToken(userID, constants.ScopeTokenAccess, s.config.JWT.Secret, constants.AccessTokenTTL)
	if err != nil {
		logger.Error("AuthService:issueTokenPair - access", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to issue access token", err)
	}

	refreshToken, err := utils.GenerateToken(userID, constants.ScopeTokenRefresh, s.config.JWT.Secret, constants.RefreshTokenTTL)
	if err != nil {
		logger.Error("AuthService:issueTokenPair - refresh", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to issue refresh token", err)
	}

	return &dto.TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(constants.AccessTokenTTL.Seconds()),
	}, nil
}

// RefreshToken rotates a refresh token: the old one is blacklisted for the
// remainder of its lifetime and a fresh pair is issued
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenPairResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	claims, appErr := s.parseScopedToken(ctx, refreshToken, constants.ScopeTokenRefresh)
	if appErr != nil {
		return nil, appErr
	}

	user, err := s.repo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to look up user", err)
	}
	if user == nil {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "User no longer exists", nil)
	}

	if err := s.cache.AddToTokenBlacklist(ctx, refreshToken, remainingTTL(claims)); err != nil {
		logger.Error("AuthService:RefreshToken - blacklist", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to revoke refresh token", err)
	}

	return s.issueTokenPair(user.ID)
}

// Logout revokes the refresh token so it cannot be replayed
func (s *AuthService) Logout(ctx context.Context, refreshToken string) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	claims, appErr := s.parseScopedToken(ctx, refreshToken, constants.ScopeTokenRefresh)
	if appErr != nil {
		return appErr
	}

	if err := s.cache.AddToTokenBlacklist(ctx, refreshToken, remainingTTL(claims)); err != nil {
		logger.Error("AuthService:Logout", err)
		return errors.NewAppError(errors.ErrInternalServer, "failed to revoke refresh token", err)
	}
	return nil
}

// ValidateAccessToken implements the middleware token validator contract
func (s *AuthService) ValidateAccessToken(ctx context.Context, token string) (*utils.TokenClaims, *errors.AppError) {
	return s.parseScopedToken(ctx, token, constants.ScopeTokenAccess)
}

func (s *AuthService) parseScopedToken(ctx context.Context, token string, scope string) (*utils.TokenClaims, *errors.AppError) {
	claims, appErr := utils.ParseToken(token, s.config.JWT.Secret)
	if appErr != nil {
		return nil, appErr
	}
	if claims.Scope != scope {
		return nil, errors.NewAppError(errors.ErrInvalidTokenFormat, "Token scope mismatch", nil)
	}

	blacklisted, err := s.cache.IsTokenBlacklisted(ctx, token)
	if err != nil {
		logger.Error("AuthService:parseScopedToken", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to check token", err)
	}
	if blacklisted {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Token has been revoked", nil)
	}
	return claims, nil
}

func remainingTTL(claims *utils.TokenClaims) time.Duration {
	if claims.ExpiresAt == nil {
		return constants.RefreshTokenTTL
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		ttl = time.Minute
	}
	return ttl
}

func (s *AuthService) GetProfile(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load profile", err)
	}
	if user == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "User not found", nil)
	}
	return mapper.ToUserResponse(user), nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load profile", err)
	}
	if user == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "User not found", nil)
	}

	fullName := user.FullName
	if req.FullName != nil {
		fullName = strings.TrimSpace(*req.FullName)
		if fullName == "" {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "full_name must not be empty", nil)
		}
	}
	profilePicURL := user.ProfilePicURL
	if req.ProfilePicURL != nil {
		profilePicURL = req.ProfilePicURL
	}

	updated, err := s.repo.UpdateProfile(ctx, userID, fullName, profilePicURL)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "failed to update profile", err)
	}
	return mapper.ToUserResponse(updated), nil
}

// UploadAvatar stores the image in object storage and saves its public URL
// on the user
func (s *AuthService) UploadAvatar(ctx context.Context, userID uuid.UUID, file *multipart.FileHeader) (*dto.AvatarResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultTimeout)
	defer cancel()

	if s.storage == nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Object storage is not configured", nil)
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load profile", err)
	}
	if user == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "User not found", nil)
	}

	src, err := file.Open()
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "failed to open uploaded file", err)
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "avatar must be an image", nil)
	}

	key := avatarObjectKey(user.FullName, file.Filename)
	url, err := s.storage.Upload(ctx, key, contentType, src)
	if err != nil {
		logger.Error("AuthService:UploadAvatar", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to upload avatar", err)
	}

	if err := s.repo.UpdateAvatar(ctx, userID, url); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "failed to save avatar url", err)
	}
	return &dto.AvatarResponse{ProfilePicURL: url}, nil
}

func avatarObjectKey(fullName string, filename string) string {
	ext := filepath.Ext(filename)
	return fmt.Sprintf("avatars/%s-%s%s", slug.Make(fullName), utils.GenerateID(), ext)
}
