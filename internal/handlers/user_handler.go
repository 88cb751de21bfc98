package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/nextbarber-api/internal/auth"
	"github.com/BruksfildServices01/nextbarber-api/internal/authz"
	"github.com/BruksfildServices01/nextbarber-api/internal/httperr"
	"github.com/BruksfildServices01/nextbarber-api/internal/httpresp"
	"github.com/BruksfildServices01/nextbarber-api/internal/middleware"
	"github.com/BruksfildServices01/nextbarber-api/internal/models"
	"github.com/BruksfildServices01/nextbarber-api/internal/validators"
)

type UserHandler struct {
	db *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

// --------- Requests ---------

type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"nombre" binding:"required"`
	Phone    string `json:"telefono"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"rol"`
}

type UpdateUserRequest struct {
	Name                  *string `json:"nombre"`
	Phone                 *string `json:"telefono"`
	AvatarURL             *string `json:"avatar_url"`
	PushNotifications     *bool   `json:"notificaciones_push"`
	WhatsappNotifications *bool   `json:"notificaciones_whatsapp"`
	EmailNotifications    *bool   `json:"notificaciones_email"`
	DarkMode              *bool   `json:"modo_oscuro"`
}

// --------- Handlers ---------

func (h *UserHandler) List(c *gin.Context) {
	skip, limit := pagination(c)

	q := h.db.WithContext(c.Request.Context()).Model(&models.User{})
	if role := strings.TrimSpace(c.Query("rol")); role != "" {
		if !models.IsValidRole(role) {
			httperr.BadRequest(c, "invalid_role", "Rol inválido")
			return
		}
		q = q.Where("role = ?", role)
	}

	var users []models.User
	if err := q.
		Order("created_at ASC").
		Offset(skip).
		Limit(limit).
		Find(&users).Error; err != nil {
		fail(c, "list users", err)
		return
	}

	httpresp.List(c, users)
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "user_not_found", "Usuario no encontrado")
			return
		}
		fail(c, "get user", err)
		return
	}

	httpresp.OK(c, user)
}

// Create lets the super admin create users of any role.
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	if req.Role == "" {
		req.Role = models.RoleClient
	}
	if !models.IsValidRole(req.Role) {
		httperr.BadRequest(c, "invalid_role", "Rol inválido")
		return
	}

	email := validators.NormalizeEmail(req.Email)

	var count int64
	if err := h.db.WithContext(c.Request.Context()).
		Model(&models.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		fail(c, "count users by email", err)
		return
	}
	if count > 0 {
		httperr.BadRequest(c, "email_already_registered", "El email ya está registrado")
		return
	}

	user, err := createUser(c, h.db, email, req.Name, req.Phone, req.Password, req.Role)
	if err != nil {
		return
	}

	httpresp.Created(c, user)
}

// Update: the user themself or the super admin.
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if !authz.CanEditUser(middleware.CurrentUser(c), id) {
		httperr.Forbidden(c, "forbidden", "No tienes permisos para editar este usuario")
		return
	}

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "user_not_found", "Usuario no encontrado")
			return
		}
		fail(c, "get user", err)
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.AvatarURL != nil {
		user.AvatarURL = *req.AvatarURL
	}
	if req.PushNotifications != nil {
		user.PushNotifications = *req.PushNotifications
	}
	if req.WhatsappNotifications != nil {
		user.WhatsappNotifications = *req.WhatsappNotifications
	}
	if req.EmailNotifications != nil {
		user.EmailNotifications = *req.EmailNotifications
	}
	if req.DarkMode != nil {
		user.DarkMode = *req.DarkMode
	}

	if err := h.db.WithContext(c.Request.Context()).Save(&user).Error; err != nil {
		fail(c, "update user", err)
		return
	}

	httpresp.OK(c, user)
}

// Deactivate is a soft delete; the row stays.
func (h *UserHandler) Deactivate(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	res := h.db.WithContext(c.Request.Context()).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("active", false)
	if res.Error != nil {
		fail(c, "deactivate user", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "user_not_found", "Usuario no encontrado")
		return
	}

	httpresp.OK(c, gin.H{"message": "Usuario desactivado correctamente"})
}

// createUser hashes the password and inserts the user. On failure the
// response has already been written.
func createUser(
	c *gin.Context,
	db *gorm.DB,
	email, name, phone, password, role string,
) (*models.User, error) {

	hash, err := auth.HashPassword(password)
	if err != nil {
		fail(c, "hash password", err)
		return nil, err
	}

	user := &models.User{
		Email:                 email,
		PasswordHash:          hash,
		Name:                  strings.TrimSpace(name),
		Phone:                 phone,
		Role:                  role,
		Active:                true,
		PushNotifications:     true,
		WhatsappNotifications: true,
		EmailNotifications:    true,
	}

	if err := db.WithContext(c.Request.Context()).Create(user).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.BadRequest(c, "email_already_registered", "El email ya está registrado")
			return nil, err
		}
		fail(c, "create user", err)
		return nil, err
	}

	return user, nil
}
