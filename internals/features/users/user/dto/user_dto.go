package dto

import (
	"strings"

	"github.com/google/uuid"

	"sekolahku_backend/internals/features/users/user/model"
)

type CreateUserRequest struct {
	InstansiID *uuid.UUID `json:"instansi_id"` // wajib untuk owner, diabaikan untuk admin
	Name       string     `json:"name" validate:"required,min=3,max=100"`
	Email      string     `json:"email" validate:"required,email,max=255"`
	Password   string     `json:"password" validate:"required,min=8,max=72"`
	Role       string     `json:"role" validate:"required,oneof=admin teacher student"`
}

func (r CreateUserRequest) ToModel(instansiID uuid.UUID, hash string) model.UserModel {
	return model.UserModel{
		InstansiID: &instansiID,
		Name:       strings.TrimSpace(r.Name),
		Email:      strings.ToLower(strings.TrimSpace(r.Email)),
		Password:   hash,
		Role:       r.Role,
		IsActive:   true,
	}
}

type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=3,max=100"`
	Role     *string `json:"role" validate:"omitempty,oneof=admin teacher student"`
	IsActive *bool   `json:"is_active"`
	Password *string `json:"password" validate:"omitempty,min=8,max=72"`
}
