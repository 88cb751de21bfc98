package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/nextbarber-api/internal/httperr"
)

const clockLayout = "15:04"

// WorkingHoursHandler reads and replaces a shop's weekly opening hours,
// kept in the shop's horario column.
type WorkingHoursHandler struct {
	db *gorm.DB
}

func NewWorkingHoursHandler(db *gorm.DB) *WorkingHoursHandler {
	return &WorkingHoursHandler{db: db}
}

type WorkingDayConfig struct {
	Weekday    int    `json:"dia_semana" binding:"min=0,max=6"`
	Active     bool   `json:"activo"`
	StartTime  string `json:"hora_inicio"`
	EndTime    string `json:"hora_fin"`
	LunchStart string `json:"almuerzo_inicio,omitempty"`
	LunchEnd   string `json:"almuerzo_fin,omitempty"`
}

type WorkingHoursUpdateRequest struct {
	Days []WorkingDayConfig `json:"dias" binding:"required,max=7,dive"`
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	shop, ok := loadBarbershop(c, h.db, id)
	if !ok {
		return
	}

	days := []WorkingDayConfig{}
	if len(shop.Schedule) > 0 {
		// a free-form horario set through the profile update is not a day list
		if err := json.Unmarshal(shop.Schedule, &days); err != nil {
			c.JSON(http.StatusOK, gin.H{"horario": shop.Schedule})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"dias": days})
}

func (h *WorkingHoursHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	shop, ok := loadManagedBarbershop(c, h.db, id)
	if !ok {
		return
	}

	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	seen := make(map[int]bool, len(req.Days))
	for _, d := range req.Days {
		if seen[d.Weekday] {
			httperr.BadRequest(c, "duplicate_weekday", "Día de la semana repetido")
			return
		}
		seen[d.Weekday] = true

		if !validDay(d) {
			httperr.BadRequest(c, "invalid_working_hours", "Horario inválido")
			return
		}
	}

	raw, err := json.Marshal(req.Days)
	if err != nil {
		fail(c, "encode working hours", err)
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(shop).
		Update("schedule", datatypes.JSON(raw)).Error; err != nil {
		fail(c, "save working hours", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"dias": req.Days})
}

// validDay requires start < end on open days, and a lunch break, when
// given, inside those hours.
func validDay(d WorkingDayConfig) bool {
	if !d.Active {
		return true
	}

	start, err1 := time.Parse(clockLayout, d.StartTime)
	end, err2 := time.Parse(clockLayout, d.EndTime)
	if err1 != nil || err2 != nil || !start.Before(end) {
		return false
	}

	if d.LunchStart == "" && d.LunchEnd == "" {
		return true
	}

	ls, err1 := time.Parse(clockLayout, d.LunchStart)
	le, err2 := time.Parse(clockLayout, d.LunchEnd)
	if err1 != nil || err2 != nil {
		return false
	}
	return !ls.Before(start) && ls.Before(le) && !le.After(end)
}
