package repository

import (
	"context"

	"github.com/BruksfildServices01/shop-agenda/internal/domain/schedule"
	"github.com/BruksfildServices01/shop-agenda/internal/models"
)

// Leituras de configuração de agenda (somente leitura; quem
// escreve é a API de gestão de agenda, via handlers).

func (r *BookingGormRepository) GetStaffWeek(
	ctx context.Context,
	staffID uint,
) (*schedule.WeekTemplate, error) {

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var rows []models.StaffSchedule
	if err := r.db.WithContext(ctx).
		Where("staff_id = ?", staffID).
		Order("weekday ASC").
		Find(&rows).Error; err != nil {
		return nil, storageErr(err)
	}

	// Nenhuma linha = sem agenda pessoal; o resolver cai no
	// horário padrão da loja.
	if len(rows) == 0 {
		return nil, nil
	}

	var week schedule.WeekTemplate
	for _, row := range rows {
		if row.Weekday < 0 || row.Weekday > 6 {
			continue
		}
		week[row.Weekday] = schedule.DayWindow{
			Active: row.Active,
			Start:  row.StartTime,
			End:    row.EndTime,
		}
	}

	return &week, nil
}

func (r *BookingGormRepository) GetShopWeek(
	ctx context.Context,
	shopID uint,
) (schedule.WeekTemplate, error) {

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var week schedule.WeekTemplate

	var rows []models.ShopHours
	if err := r.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Order("weekday ASC").
		Find(&rows).Error; err != nil {
		return week, storageErr(err)
	}

	for _, row := range rows {
		if row.Weekday < 0 || row.Weekday > 6 {
			continue
		}
		week[row.Weekday] = schedule.DayWindow{
			Active: row.Active,
			Start:  row.StartTime,
			End:    row.EndTime,
		}
	}

	return week, nil
}

func (r *BookingGormRepository) GetOverride(
	ctx context.Context,
	staffID uint,
	date string,
) (*schedule.Override, error) {

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var rows []models.ScheduleException
	if err := r.db.WithContext(ctx).
		Where("staff_id = ? AND date = ?", staffID, date).
		Limit(1).
		Find(&rows).Error; err != nil {
		return nil, storageErr(err)
	}

	if len(rows) == 0 {
		return nil, nil
	}

	return &schedule.Override{
		Kind:  rows[0].Kind,
		Start: rows[0].StartTime,
		End:   rows[0].EndTime,
	}, nil
}
