package mapper

import (
	"tutortrack/modules/auth/dto"
	"tutortrack/modules/auth/entity"
)

func ToUserEntity(info *dto.GoogleUserInfo) *entity.User {
	user := &entity.User{
		GoogleUserID: info.ID,
		Email:        info.Email,
		FullName:     info.Name,
	}
	if info.Picture != "" {
		picture := info.Picture
		user.ProfilePicURL = &picture
	}
	return user
}

func ToUserResponse(user *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:            user.ID.String(),
		Email:         user.Email,
		FullName:      user.FullName,
		ProfilePicURL: user.ProfilePicURL,
		LastLoginAt:   user.LastLoginAt,
		CreatedAt:     user.CreatedAt,
	}
}
