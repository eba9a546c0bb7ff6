package booking

import (
	"context"
	"fmt"
	"sync"

	domain "github.com/BruksfildServices01/shop-agenda/internal/domain/booking"
	"github.com/BruksfildServices01/shop-agenda/internal/domain/schedule"
	"github.com/BruksfildServices01/shop-agenda/internal/httperr"
	"github.com/BruksfildServices01/shop-agenda/internal/models"
)

// fakeRepo é um Booking Store em memória. O InsertBookingIfAbsent
// reproduz o contrato do índice único parcial: verificação e
// gravação sob o mesmo lock, em um passo indivisível.
type fakeRepo struct {
	mu sync.Mutex

	shop    models.Shop
	staff   models.StaffMember
	service models.Service

	week      *schedule.WeekTemplate
	shopWeek  schedule.WeekTemplate
	overrides map[string]*schedule.Override

	bookings []*models.Booking
	nextID   uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		shop:      models.Shop{ID: 1, Slug: "corte-fino", Timezone: "UTC", MinAdvanceMinutes: 120},
		staff:     models.StaffMember{ID: 10, ShopID: 1, Name: "Rafael", Active: true},
		service:   models.Service{ID: 100, ShopID: 1, Name: "Corte", DurationMin: 30, Active: true},
		overrides: map[string]*schedule.Override{},
	}
}

func (r *fakeRepo) GetShopByID(_ context.Context, id uint) (*models.Shop, error) {
	if id != r.shop.ID {
		return nil, httperr.ErrBusiness("not_found")
	}
	shop := r.shop
	return &shop, nil
}

func (r *fakeRepo) GetShopBySlug(_ context.Context, slug string) (*models.Shop, error) {
	if slug != r.shop.Slug {
		return nil, httperr.ErrBusiness("not_found")
	}
	shop := r.shop
	return &shop, nil
}

func (r *fakeRepo) GetStaff(_ context.Context, shopID, staffID uint) (*models.StaffMember, error) {
	if shopID != r.shop.ID || staffID != r.staff.ID {
		return nil, httperr.ErrBusiness("not_found")
	}
	staff := r.staff
	return &staff, nil
}

func (r *fakeRepo) GetService(_ context.Context, shopID, serviceID uint) (*models.Service, error) {
	if shopID != r.shop.ID || serviceID != r.service.ID {
		return nil, httperr.ErrBusiness("not_found")
	}
	service := r.service
	return &service, nil
}

func (r *fakeRepo) GetStaffWeek(_ context.Context, staffID uint) (*schedule.WeekTemplate, error) {
	return r.week, nil
}

func (r *fakeRepo) GetShopWeek(_ context.Context, shopID uint) (schedule.WeekTemplate, error) {
	return r.shopWeek, nil
}

func (r *fakeRepo) GetOverride(_ context.Context, staffID uint, date string) (*schedule.Override, error) {
	return r.overrides[date], nil
}

func (r *fakeRepo) GetOrCreateCustomer(
	_ context.Context,
	shopID uint,
	name, phone, email string,
) (*models.Customer, error) {
	return &models.Customer{ID: 7, ShopID: shopID, Name: name, Phone: phone, Email: email}, nil
}

func (r *fakeRepo) InsertBookingIfAbsent(_ context.Context, bk *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.bookings {
		if existing.StaffID == bk.StaffID &&
			existing.Date == bk.Date &&
			existing.Time == bk.Time &&
			domain.IsActive(domain.Status(existing.Status)) {
			return httperr.ErrBusiness("slot_taken")
		}
	}

	r.nextID++
	bk.ID = r.nextID

	stored := *bk
	r.bookings = append(r.bookings, &stored)
	return nil
}

func (r *fakeRepo) FindActiveBooking(
	_ context.Context,
	staffID uint,
	date, timeHM string,
) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, bk := range r.bookings {
		if bk.StaffID == staffID && bk.Date == date && bk.Time == timeHM &&
			domain.IsActive(domain.Status(bk.Status)) {
			out := *bk
			return &out, nil
		}
	}
	return nil, httperr.ErrBusiness("not_found")
}

func (r *fakeRepo) ListActiveByStaffAndDate(
	_ context.Context,
	staffID uint,
	date string,
) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Booking
	for _, bk := range r.bookings {
		if bk.StaffID == staffID && bk.Date == date &&
			domain.IsActive(domain.Status(bk.Status)) {
			out = append(out, *bk)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListByStaffAndDate(
	_ context.Context,
	staffID uint,
	date string,
) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Booking
	for _, bk := range r.bookings {
		if bk.StaffID == staffID && bk.Date == date {
			out = append(out, *bk)
		}
	}
	return out, nil
}

func (r *fakeRepo) GetBookingForStaff(
	_ context.Context,
	publicID string,
	staffID uint,
) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, bk := range r.bookings {
		if bk.PublicID == publicID && bk.StaffID == staffID {
			out := *bk
			return &out, nil
		}
	}
	return nil, httperr.ErrBusiness("not_found")
}

func (r *fakeRepo) UpdateBooking(_ context.Context, bk *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.bookings {
		if existing.ID == bk.ID {
			stored := *bk
			r.bookings[i] = &stored
			return nil
		}
	}
	return fmt.Errorf("booking %d not stored", bk.ID)
}

// seedBooking grava direto no store, fora do fluxo de admissão.
func (r *fakeRepo) seedBooking(bk models.Booking) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	bk.ID = r.nextID
	if bk.PublicID == "" {
		bk.PublicID = fmt.Sprintf("seed-%d", bk.ID)
	}
	r.bookings = append(r.bookings, &bk)
}

var _ domain.Repository = (*fakeRepo)(nil)
