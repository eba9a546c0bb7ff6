package booking

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/shop-agenda/internal/domain/booking"
	"github.com/BruksfildServices01/shop-agenda/internal/domain/schedule"
	"github.com/BruksfildServices01/shop-agenda/internal/httperr"
	"github.com/BruksfildServices01/shop-agenda/internal/models"
)

// loadCalendar monta a configuração de agenda do profissional para
// a data: template pessoal (se houver), horário padrão da loja,
// almoço e exceção da data.
func loadCalendar(
	ctx context.Context,
	repo domain.Repository,
	shop *models.Shop,
	staff *models.StaffMember,
	date string,
) (schedule.Calendar, error) {

	var cal schedule.Calendar

	week, err := repo.GetStaffWeek(ctx, staff.ID)
	if err != nil {
		return cal, err
	}
	cal.Week = week

	shopWeek, err := repo.GetShopWeek(ctx, shop.ID)
	if err != nil {
		return cal, err
	}
	cal.ShopWeek = shopWeek

	// Almoço pessoal vence o da loja; loja só vale quando o
	// profissional não configurou pausa própria.
	if staff.LunchStart != "" && staff.LunchEnd != "" {
		cal.Lunch = &schedule.Lunch{Start: staff.LunchStart, End: staff.LunchEnd}
	} else if shop.LunchStart != "" && shop.LunchEnd != "" {
		cal.Lunch = &schedule.Lunch{Start: shop.LunchStart, End: shop.LunchEnd}
	}

	ov, err := repo.GetOverride(ctx, staff.ID, date)
	if err != nil {
		return cal, err
	}
	cal.Override = ov

	return cal, nil
}

// parseDate valida o formato YYYY-MM-DD e devolve a data civil.
func parseDate(dateStr string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, httperr.ErrBusiness("invalid_date")
	}
	return d, nil
}
