package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/nextbarber-api/internal/dto"
	"github.com/BruksfildServices01/nextbarber-api/internal/httpresp"
	"github.com/BruksfildServices01/nextbarber-api/internal/middleware"
	"github.com/BruksfildServices01/nextbarber-api/internal/models"
)

type FavoriteHandler struct {
	db *gorm.DB
}

func NewFavoriteHandler(db *gorm.DB) *FavoriteHandler {
	return &FavoriteHandler{db: db}
}

// List returns the caller's favourite shops, most recently added first.
func (h *FavoriteHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var shops []models.Barbershop
	if err := h.db.WithContext(c.Request.Context()).
		Model(&models.Barbershop{}).
		Joins("JOIN favorites ON favorites.barbershop_id = barbershops.id").
		Where("favorites.user_id = ?", user.ID).
		Order("favorites.created_at DESC").
		Find(&shops).Error; err != nil {
		fail(c, "list favorites", err)
		return
	}

	httpresp.List(c, dto.NewBarbershopList(shops))
}

// Add is idempotent.
func (h *FavoriteHandler) Add(c *gin.Context) {
	id, ok := uuidParam(c, "barberia_id")
	if !ok {
		return
	}
	if _, ok := loadBarbershop(c, h.db, id); !ok {
		return
	}

	fav := models.Favorite{
		UserID:       middleware.CurrentUser(c).ID,
		BarbershopID: id,
	}
	if err := h.db.WithContext(c.Request.Context()).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&fav).Error; err != nil {
		fail(c, "add favorite", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Remove deletes the row; removing a missing favourite is not an error.
func (h *FavoriteHandler) Remove(c *gin.Context) {
	id, ok := uuidParam(c, "barberia_id")
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Where("user_id = ? AND barbershop_id = ?", middleware.CurrentUser(c).ID, id).
		Delete(&models.Favorite{}).Error; err != nil {
		fail(c, "remove favorite", err)
		return
	}

	c.Status(http.StatusNoContent)
}
