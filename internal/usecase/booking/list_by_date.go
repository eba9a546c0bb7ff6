package booking

import (
	"context"

	domain "github.com/BruksfildServices01/shop-agenda/internal/domain/booking"
	"github.com/BruksfildServices01/shop-agenda/internal/dto"
)

// ListBookingsByDate é a agenda do profissional: todas as reservas
// do dia, inclusive canceladas e recusadas.
type ListBookingsByDate struct {
	repo domain.Repository
}

func NewListBookingsByDate(repo domain.Repository) *ListBookingsByDate {
	return &ListBookingsByDate{repo: repo}
}

func (uc *ListBookingsByDate) Execute(
	ctx context.Context,
	staffID uint,
	date string,
) ([]dto.BookingListDTO, error) {

	if _, err := parseDate(date); err != nil {
		return nil, err
	}

	bookings, err := uc.repo.ListByStaffAndDate(ctx, staffID, date)
	if err != nil {
		return nil, err
	}

	out := make([]dto.BookingListDTO, 0, len(bookings))
	for _, bk := range bookings {
		out = append(out, dto.BookingListDTO{
			ID:           bk.PublicID,
			Date:         bk.Date,
			Time:         bk.Time,
			DurationMin:  bk.DurationMin,
			Status:       bk.Status,
			CustomerName: bk.Customer.Name,
			ServiceName:  bk.Service.Name,
			Notes:        bk.Notes,
		})
	}

	return out, nil
}
