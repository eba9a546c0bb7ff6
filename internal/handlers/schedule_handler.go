package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/shop-agenda/internal/audit"
	"github.com/BruksfildServices01/shop-agenda/internal/domain/schedule"
	"github.com/BruksfildServices01/shop-agenda/internal/httperr"
	"github.com/BruksfildServices01/shop-agenda/internal/middleware"
	"github.com/BruksfildServices01/shop-agenda/internal/models"
)

// ScheduleHandler gerencia a agenda semanal pessoal e as exceções
// de data do profissional autenticado.
type ScheduleHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewScheduleHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *ScheduleHandler {
	return &ScheduleHandler{db: db, audit: dispatcher}
}

// ======================================================
// REQUESTS
// ======================================================

type ScheduleDayConfig struct {
	Weekday   int    `json:"weekday" binding:"min=0,max=6"` // 0 = domingo
	Active    bool   `json:"active"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type ScheduleUpdateRequest struct {
	Days       []ScheduleDayConfig `json:"days" binding:"required"`
	LunchStart string              `json:"lunch_start"`
	LunchEnd   string              `json:"lunch_end"`
}

type ExceptionRequest struct {
	Date      string `json:"date" binding:"required"` // YYYY-MM-DD
	Kind      string `json:"kind" binding:"required"` // off | partial | extra
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Note      string `json:"note"`
}

func validHMOrEmpty(hm string) bool {
	if hm == "" {
		return true
	}
	_, err := schedule.ParseHM(hm)
	return err == nil
}

// ======================================================
// AGENDA SEMANAL
// ======================================================

func (h *ScheduleHandler) Get(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextStaffID).(uint)

	var staff models.StaffMember
	if err := h.db.First(&staff, staffID).Error; err != nil {
		httperr.NotFound(c, "staff_not_found", "Profissional não encontrado.")
		return
	}

	var days []models.StaffSchedule
	if err := h.db.
		Where("staff_id = ?", staffID).
		Order("weekday ASC").
		Find(&days).Error; err != nil {

		httperr.Internal(c, "failed_to_get_schedule", "Erro ao buscar agenda.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"days":        days,
		"lunch_start": staff.LunchStart,
		"lunch_end":   staff.LunchEnd,
	})
}

func (h *ScheduleHandler) Update(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextStaffID).(uint)
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	var req ScheduleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	// Valida na escrita: o resolver confia no que está gravado.
	if !validHMOrEmpty(req.LunchStart) || !validHMOrEmpty(req.LunchEnd) {
		httperr.BadRequest(c, "invalid_schedule_config", "Horário de almoço inválido.")
		return
	}
	for _, d := range req.Days {
		if d.Active && (!validHMOrEmpty(d.StartTime) || !validHMOrEmpty(d.EndTime) ||
			d.StartTime == "" || d.EndTime == "") {
			httperr.BadRequest(c, "invalid_schedule_config", "Dia ativo precisa de início e fim válidos.")
			return
		}
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("staff_id = ?", staffID).
			Delete(&models.StaffSchedule{}).Error; err != nil {
			return err
		}

		var toCreate []models.StaffSchedule
		for _, d := range req.Days {
			toCreate = append(toCreate, models.StaffSchedule{
				StaffID:   staffID,
				Weekday:   d.Weekday,
				Active:    d.Active,
				StartTime: d.StartTime,
				EndTime:   d.EndTime,
			})
		}
		if len(toCreate) > 0 {
			if err := tx.Create(&toCreate).Error; err != nil {
				return err
			}
		}

		return tx.Model(&models.StaffMember{}).
			Where("id = ?", staffID).
			Updates(map[string]any{
				"lunch_start": req.LunchStart,
				"lunch_end":   req.LunchEnd,
			}).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_save_schedule", "Erro ao salvar agenda.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ShopID:  shopID,
		StaffID: &staffID,
		Action:  "schedule_updated",
		Entity:  "staff_schedule",
	})

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ======================================================
// EXCEÇÕES DE DATA
// ======================================================

func (h *ScheduleHandler) ListExceptions(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextStaffID).(uint)

	var exceptions []models.ScheduleException
	if err := h.db.
		Where("staff_id = ?", staffID).
		Order("date ASC").
		Find(&exceptions).Error; err != nil {

		httperr.Internal(c, "failed_to_list_exceptions", "Erro ao listar exceções.")
		return
	}

	c.JSON(http.StatusOK, exceptions)
}

// UpsertException grava a exceção da data. O índice único em
// (staff_id, date) mantém o invariante de no máximo uma por data:
// conflito vira update, nunca segunda linha.
func (h *ScheduleHandler) UpsertException(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextStaffID).(uint)
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	var req ExceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if !schedule.ValidOverrideKind(req.Kind) {
		httperr.BadRequest(c, "invalid_exception_kind", "Tipo de exceção inválido.")
		return
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}
	if !validHMOrEmpty(req.StartTime) || !validHMOrEmpty(req.EndTime) {
		httperr.BadRequest(c, "invalid_schedule_config", "Horário da exceção inválido.")
		return
	}
	// Dia extra não tem template de onde herdar: exige as duas bordas.
	if req.Kind == schedule.OverrideExtra && (req.StartTime == "" || req.EndTime == "") {
		httperr.BadRequest(c, "invalid_schedule_config", "Exceção extra precisa de início e fim.")
		return
	}

	exc := models.ScheduleException{
		StaffID:   staffID,
		Date:      req.Date,
		Kind:      req.Kind,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Note:      req.Note,
	}

	if err := h.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "staff_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"kind", "start_time", "end_time", "note", "updated_at"}),
	}).Create(&exc).Error; err != nil {
		httperr.Internal(c, "failed_to_save_exception", "Erro ao salvar exceção.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ShopID:   shopID,
		StaffID:  &staffID,
		Action:   "schedule_exception_saved",
		Entity:   "schedule_exception",
		EntityID: &exc.ID,
		Metadata: gin.H{"date": req.Date, "kind": req.Kind},
	})

	c.JSON(http.StatusOK, exc)
}

func (h *ScheduleHandler) DeleteException(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextStaffID).(uint)
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	date := c.Param("date")
	if date == "" {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	if err := h.db.
		Where("staff_id = ? AND date = ?", staffID, date).
		Delete(&models.ScheduleException{}).Error; err != nil {

		httperr.Internal(c, "failed_to_delete_exception", "Erro ao remover exceção.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ShopID:   shopID,
		StaffID:  &staffID,
		Action:   "schedule_exception_deleted",
		Entity:   "schedule_exception",
		Metadata: gin.H{"date": date},
	})

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
