package booking

import (
	"context"

	"github.com/BruksfildServices01/shop-agenda/internal/domain/schedule"
	"github.com/BruksfildServices01/shop-agenda/internal/models"
)

type Repository interface {
	// -------- Shop --------
	GetShopByID(
		ctx context.Context,
		id uint,
	) (*models.Shop, error)

	GetShopBySlug(
		ctx context.Context,
		slug string,
	) (*models.Shop, error)

	// -------- Staff / Service --------
	GetStaff(
		ctx context.Context,
		shopID uint,
		staffID uint,
	) (*models.StaffMember, error)

	GetService(
		ctx context.Context,
		shopID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- Schedule config (read-only) --------

	// GetStaffWeek devolve a agenda semanal pessoal, ou nil se o
	// profissional não tem agenda própria cadastrada.
	GetStaffWeek(
		ctx context.Context,
		staffID uint,
	) (*schedule.WeekTemplate, error)

	GetShopWeek(
		ctx context.Context,
		shopID uint,
	) (schedule.WeekTemplate, error)

	// GetOverride devolve a exceção da data, ou nil se não houver.
	GetOverride(
		ctx context.Context,
		staffID uint,
		date string,
	) (*schedule.Override, error)

	// -------- Customer --------
	GetOrCreateCustomer(
		ctx context.Context,
		shopID uint,
		name string,
		phone string,
		email string,
	) (*models.Customer, error)

	// -------- Booking (create / conflict) --------

	// InsertBookingIfAbsent grava a reserva em um único passo
	// atômico: o índice único parcial do banco é quem decide o
	// conflito, nunca uma leitura prévia da aplicação.
	InsertBookingIfAbsent(
		ctx context.Context,
		bk *models.Booking,
	) error

	FindActiveBooking(
		ctx context.Context,
		staffID uint,
		date string,
		time string,
	) (*models.Booking, error)

	// -------- Booking (reads) --------
	ListActiveByStaffAndDate(
		ctx context.Context,
		staffID uint,
		date string,
	) ([]models.Booking, error)

	ListByStaffAndDate(
		ctx context.Context,
		staffID uint,
		date string,
	) ([]models.Booking, error)

	// -------- Booking (state change) --------
	GetBookingForStaff(
		ctx context.Context,
		publicID string,
		staffID uint,
	) (*models.Booking, error)

	UpdateBooking(
		ctx context.Context,
		bk *models.Booking,
	) error
}
