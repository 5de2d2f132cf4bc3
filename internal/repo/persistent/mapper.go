package persistent

import (
	"simple-social/internal/entity"
	"simple-social/internal/model"
)

func ToUserEntity(m *model.UserModel) *entity.User {
	if m == nil {
		return nil
	}

	return &entity.User{
		ID:             m.ID,
		Email:          m.Email,
		HashedPassword: m.HashedPassword,
		IsActive:       m.IsActive,
		IsSuperuser:    m.IsSuperuser,
		IsVerified:     m.IsVerified,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func ToUserModel(e *entity.User) *model.UserModel {
	if e == nil {
		return nil
	}

	return &model.UserModel{
		ID:             e.ID,
		Email:          e.Email,
		HashedPassword: e.HashedPassword,
		IsActive:       e.IsActive,
		IsSuperuser:    e.IsSuperuser,
		IsVerified:     e.IsVerified,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func ToPostEntity(m *model.PostModel) *entity.Post {
	if m == nil {
		return nil
	}

	userID := ""
	if m.UserID != nil {
		userID = *m.UserID
	}

	return &entity.Post{
		ID:        m.ID,
		UserID:    userID,
		Caption:   m.Caption,
		URL:       m.URL,
		FileType:  entity.FileType(m.FileType),
		FileName:  m.FileName,
		CreatedAt: m.CreatedAt,
	}
}

func ToPostModel(e *entity.Post) *model.PostModel {
	if e == nil {
		return nil
	}

	var userID *string
	if e.UserID != "" {
		id := e.UserID
		userID = &id
	}

	return &model.PostModel{
		ID:        e.ID,
		UserID:    userID,
		Caption:   e.Caption,
		URL:       e.URL,
		FileType:  string(e.FileType),
		FileName:  e.FileName,
		CreatedAt: e.CreatedAt,
	}
}
