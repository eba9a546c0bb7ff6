package booking

import (
	"context"

	"github.com/BruksfildServices01/shop-agenda/internal/audit"
	"github.com/BruksfildServices01/shop-agenda/internal/cache"
	domain "github.com/BruksfildServices01/shop-agenda/internal/domain/booking"
	"github.com/BruksfildServices01/shop-agenda/internal/metrics"
	"github.com/BruksfildServices01/shop-agenda/internal/models"
	"github.com/BruksfildServices01/shop-agenda/internal/timezone"
)

type CancelBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.Availability
}

func NewCancelBooking(
	repo domain.Repository,
	dispatcher *audit.Dispatcher,
	cache *cache.Availability,
) *CancelBooking {
	return &CancelBooking{repo: repo, audit: dispatcher, cache: cache}
}

func (uc *CancelBooking) Execute(
	ctx context.Context,
	shopID uint,
	staffID uint,
	bookingID string,
) (*models.Booking, error) {

	shop, err := uc.repo.GetShopByID(ctx, shopID)
	if err != nil {
		return nil, err
	}

	bk, err := uc.repo.GetBookingForStaff(ctx, bookingID, staffID)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(shop.Timezone)
	if err := domain.Cancel(bk, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, bk); err != nil {
		return nil, err
	}

	metrics.IncBookingTransition("cancel")

	// Cancelar libera o slot para novas reservas.
	uc.cache.Invalidate(ctx, staffID, bk.Date)

	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			ShopID:   shopID,
			StaffID:  &staffID,
			Action:   "booking_cancelled",
			Entity:   "booking",
			EntityID: &bk.ID,
		})
	}

	return bk, nil
}
