package booking

import (
	"context"

	"github.com/BruksfildServices01/shop-agenda/internal/cache"
	domain "github.com/BruksfildServices01/shop-agenda/internal/domain/booking"
	"github.com/BruksfildServices01/shop-agenda/internal/domain/schedule"
	"github.com/BruksfildServices01/shop-agenda/internal/metrics"
)

// GetAvailability é o caminho de leitura: calcula os horários
// livres de um (profissional, serviço, data). O resultado é uma
// dica para a tela de reserva, e pode ficar velho microssegundos
// depois; quem garante unicidade é o TryBook.
type GetAvailability struct {
	repo  domain.Repository
	cache *cache.Availability
}

func NewGetAvailability(repo domain.Repository, cache *cache.Availability) *GetAvailability {
	return &GetAvailability{repo: repo, cache: cache}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	metrics.IncAvailabilityRequest()

	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}

	if slots, ok := uc.cache.Get(ctx, in.StaffID, in.ServiceID, in.Date); ok {
		return slots, nil
	}

	shop, err := uc.repo.GetShopByID(ctx, in.ShopID)
	if err != nil {
		return nil, err
	}

	staff, err := uc.repo.GetStaff(ctx, in.ShopID, in.StaffID)
	if err != nil {
		return nil, err
	}

	service, err := uc.repo.GetService(ctx, in.ShopID, in.ServiceID)
	if err != nil {
		return nil, err
	}

	cal, err := loadCalendar(ctx, uc.repo, shop, staff, in.Date)
	if err != nil {
		return nil, err
	}

	// Erro de configuração propaga: agenda quebrada tem que
	// aparecer para ser corrigida, não virar lista vazia.
	intervals, err := schedule.Resolve(cal, date)
	if err != nil {
		return nil, err
	}

	// Dia sem expediente é resultado normal: lista vazia.
	if len(intervals) == 0 {
		return []domain.TimeSlot{}, nil
	}

	candidates, err := schedule.Slots(intervals, service.DurationMin)
	if err != nil {
		return nil, err
	}

	active, err := uc.repo.ListActiveByStaffAndDate(ctx, in.StaffID, in.Date)
	if err != nil {
		return nil, err
	}

	occupied := make(map[string]bool, len(active))
	for _, bk := range active {
		occupied[bk.Time] = true
	}

	slots := make([]domain.TimeSlot, 0, len(candidates))
	for _, start := range candidates {
		if occupied[start] {
			continue
		}

		startMin, err := schedule.ParseHM(start)
		if err != nil {
			return nil, err
		}

		slots = append(slots, domain.TimeSlot{
			Start: start,
			End:   schedule.FormatHM(startMin + service.DurationMin),
		})
	}

	uc.cache.Set(ctx, in.StaffID, in.ServiceID, in.Date, slots)

	return slots, nil
}
