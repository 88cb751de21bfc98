package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleSuperAdmin = "super_admin"
	RoleShopAdmin  = "admin_barberia"
	RoleClient     = "cliente"
)

func IsValidRole(role string) bool {
	switch role {
	case RoleSuperAdmin, RoleShopAdmin, RoleClient:
		return true
	}
	return false
}

type User struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Email        string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Name         string `gorm:"size:255;not null" json:"nombre"`
	Phone        string `gorm:"size:20" json:"telefono"`
	Role         string `gorm:"size:20;not null;index" json:"rol"`
	Active       bool   `gorm:"not null" json:"activo"`
	AvatarURL    string `gorm:"size:500" json:"avatar_url"`

	PushNotifications     bool `gorm:"not null" json:"notificaciones_push"`
	WhatsappNotifications bool `gorm:"not null" json:"notificaciones_whatsapp"`
	EmailNotifications    bool `gorm:"not null" json:"notificaciones_email"`
	DarkMode              bool `gorm:"not null" json:"modo_oscuro"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	newID(&u.ID)
	return nil
}
