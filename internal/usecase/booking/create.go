package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/shop-agenda/internal/audit"
	"github.com/BruksfildServices01/shop-agenda/internal/cache"
	domain "github.com/BruksfildServices01/shop-agenda/internal/domain/booking"
	"github.com/BruksfildServices01/shop-agenda/internal/domain/schedule"
	"github.com/BruksfildServices01/shop-agenda/internal/httperr"
	"github.com/BruksfildServices01/shop-agenda/internal/metrics"
	"github.com/BruksfildServices01/shop-agenda/internal/models"
	"github.com/BruksfildServices01/shop-agenda/internal/timezone"
	"github.com/BruksfildServices01/shop-agenda/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type TryBookInput struct {
	ShopID  uint
	StaffID uint

	CustomerName  string
	CustomerPhone string
	CustomerEmail string

	ServiceID uint

	Date  string // YYYY-MM-DD
	Time  string // HH:MM
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

// TryBook é a admissão de reserva. As validações de agenda aqui são
// defesa em profundidade; a garantia de que dois clientes não levam
// o mesmo horário é uma só: o insert atômico do repositório contra
// o índice único de slot ativo.
type TryBook struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.Availability
}

func NewTryBook(
	repo domain.Repository,
	dispatcher *audit.Dispatcher,
	cache *cache.Availability,
) *TryBook {
	return &TryBook{
		repo:  repo,
		audit: dispatcher,
		cache: cache,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *TryBook) Execute(
	ctx context.Context,
	in TryBookInput,
) (*models.Booking, error) {

	shop, err := uc.repo.GetShopByID(ctx, in.ShopID)
	if err != nil {
		return nil, err
	}

	// Data e hora civis no fuso da loja, só para a regra de
	// antecedência; o slot em si nunca muda de fuso.
	start, err := timezone.ParseDateTimeIn(shop.Timezone, in.Date, in.Time)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	minAdvance := shop.MinAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = 120
	}

	now := timezone.NowIn(shop.Timezone)
	if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	staff, err := uc.repo.GetStaff(ctx, in.ShopID, in.StaffID)
	if err != nil {
		return nil, err
	}

	service, err := uc.repo.GetService(ctx, in.ShopID, in.ServiceID)
	if err != nil {
		return nil, err
	}

	// Defesa em profundidade: o horário pedido precisa ser um slot
	// que o gerador produziria hoje. Não é isso que impede o
	// double-booking; o índice único é que decide.
	if err := uc.assertInsideSchedule(ctx, shop, staff, service, in.Date, in.Time); err != nil {
		return nil, err
	}

	if in.CustomerEmail != "" && !validators.IsEmailDomainValid(in.CustomerEmail) {
		return nil, httperr.ErrBusiness("invalid_email")
	}

	customer, err := uc.repo.GetOrCreateCustomer(
		ctx,
		in.ShopID,
		in.CustomerName,
		in.CustomerPhone,
		in.CustomerEmail,
	)
	if err != nil {
		return nil, err
	}

	bk := &models.Booking{
		PublicID:    uuid.NewString(),
		ShopID:      in.ShopID,
		StaffID:     in.StaffID,
		ServiceID:   service.ID,
		CustomerID:  customer.ID,
		Date:        in.Date,
		Time:        in.Time,
		DurationMin: service.DurationMin,
		Status:      string(domain.InitialStatus(shop.AutoAccept)),
		Notes:       in.Notes,
	}

	// Check-and-insert em um passo só. slot_taken aqui é desfecho
	// esperado, não falha: o cliente escolhe outro horário.
	if err := uc.repo.InsertBookingIfAbsent(ctx, bk); err != nil {
		if httperr.IsBusiness(err, "slot_taken") {
			metrics.IncBookingConflict()
		}
		return nil, err
	}

	metrics.IncBookingCreated(bk.Status)
	uc.cache.Invalidate(ctx, in.StaffID, in.Date)

	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			ShopID:   in.ShopID,
			Action:   "booking_created",
			Entity:   "booking",
			EntityID: &bk.ID,
		})
	}

	return bk, nil
}

func (uc *TryBook) assertInsideSchedule(
	ctx context.Context,
	shop *models.Shop,
	staff *models.StaffMember,
	service *models.Service,
	dateStr string,
	timeHM string,
) error {

	date, err := parseDate(dateStr)
	if err != nil {
		return err
	}

	cal, err := loadCalendar(ctx, uc.repo, shop, staff, dateStr)
	if err != nil {
		return err
	}

	intervals, err := schedule.Resolve(cal, date)
	if err != nil {
		return err
	}

	candidates, err := schedule.Slots(intervals, service.DurationMin)
	if err != nil {
		return err
	}

	for _, slot := range candidates {
		if slot == timeHM {
			return nil
		}
	}

	return httperr.ErrBusiness("outside_working_hours")
}
