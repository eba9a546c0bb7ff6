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

type AcceptBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.Availability
}

func NewAcceptBooking(
	repo domain.Repository,
	dispatcher *audit.Dispatcher,
	cache *cache.Availability,
) *AcceptBooking {
	return &AcceptBooking{repo: repo, audit: dispatcher, cache: cache}
}

func (uc *AcceptBooking) Execute(
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
	if err := domain.Accept(bk, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, bk); err != nil {
		return nil, err
	}

	metrics.IncBookingTransition("accept")

	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			ShopID:   shopID,
			StaffID:  &staffID,
			Action:   "booking_accepted",
			Entity:   "booking",
			EntityID: &bk.ID,
		})
	}

	return bk, nil
}
