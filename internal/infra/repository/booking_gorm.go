package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/shop-agenda/internal/domain/booking"
	"github.com/BruksfildServices01/shop-agenda/internal/httperr"
	"github.com/BruksfildServices01/shop-agenda/internal/models"
)

// BookingGormRepository implementa o Repository do domínio sobre
// gorm/postgres. Cada operação roda com timeout próprio: banco
// fora do ar vira storage_unavailable, nunca requisição pendurada.
type BookingGormRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewBookingGormRepository(db *gorm.DB, timeout time.Duration) *BookingGormRepository {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &BookingGormRepository{db: db, timeout: timeout}
}

func (r *BookingGormRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

// storageErr converte falhas de infraestrutura em códigos de
// negócio; not-found vira not_found para o handler mapear em 404.
func storageErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusiness("not_found")
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return httperr.ErrBusiness("storage_unavailable")
	}
	return err
}

// --------------------------------------------------
// Shop
// --------------------------------------------------

func (r *BookingGormRepository) GetShopByID(
	ctx context.Context,
	id uint,
) (*models.Shop, error) {

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var shop models.Shop
	if err := r.db.WithContext(ctx).First(&shop, id).Error; err != nil {
		return nil, storageErr(err)
	}
	return &shop, nil
}

func (r *BookingGormRepository) GetShopBySlug(
	ctx context.Context,
	slug string,
) (*models.Shop, error) {

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var shop models.Shop
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&shop).Error; err != nil {
		return nil, storageErr(err)
	}
	return &shop, nil
}

// --------------------------------------------------
// Staff / Service
// --------------------------------------------------

func (r *BookingGormRepository) GetStaff(
	ctx context.Context,
	shopID uint,
	staffID uint,
) (*models.StaffMember, error) {

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var staff models.StaffMember
	if err := r.db.WithContext(ctx).
		Where("id = ? AND shop_id = ? AND active = true", staffID, shopID).
		First(&staff).Error; err != nil {
		return nil, storageErr(err)
	}
	return &staff, nil
}

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	shopID uint,
	serviceID uint,
) (*models.Service, error) {

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var service models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND shop_id = ? AND active = true", serviceID, shopID).
		First(&service).Error; err != nil {
		return nil, storageErr(err)
	}
	return &service, nil
}

// --------------------------------------------------
// Customer
// --------------------------------------------------

func (r *BookingGormRepository) GetOrCreateCustomer(
	ctx context.Context,
	shopID uint,
	name string,
	phone string,
	email string,
) (*models.Customer, error) {

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var customer models.Customer
	err := r.db.WithContext(ctx).
		Where("shop_id = ? AND phone = ?", shopID, phone).
		First(&customer).Error

	if err == nil {
		return &customer, nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return nil, httperr.ErrBusiness("storage_unavailable")
	}

	customer = models.Customer{
		ShopID: shopID,
		Name:   name,
		Phone:  phone,
		Email:  email,
	}

	if err := r.db.WithContext(ctx).Create(&customer).Error; err != nil {
		return nil, storageErr(err)
	}

	return &customer, nil
}

// --------------------------------------------------
// Booking (create / conflict)
// --------------------------------------------------

// InsertBookingIfAbsent é o check-and-insert atômico da admissão:
// um único INSERT protegido pelo índice único parcial
// idx_bookings_active_slot. Duplicata de slot ativo vira slot_taken.
// Repetir exatamente a mesma requisição após timeout é seguro: o
// mesmo índice rejeita a segunda gravação.
func (r *BookingGormRepository) InsertBookingIfAbsent(
	ctx context.Context,
	bk *models.Booking,
) error {

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if err := r.db.WithContext(ctx).Create(bk).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return httperr.ErrBusiness("slot_taken")
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return httperr.ErrBusiness("storage_unavailable")
		}
		return err
	}

	return nil
}

func (r *BookingGormRepository) FindActiveBooking(
	ctx context.Context,
	staffID uint,
	date string,
	timeHM string,
) (*models.Booking, error) {

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var bk models.Booking
	if err := r.db.WithContext(ctx).
		Where(
			"staff_id = ? AND date = ? AND time = ? AND status NOT IN ('cancelled', 'rejected')",
			staffID, date, timeHM,
		).
		First(&bk).Error; err != nil {
		return nil, storageErr(err)
	}

	return &bk, nil
}

// --------------------------------------------------
// Booking (reads)
// --------------------------------------------------

func (r *BookingGormRepository) ListActiveByStaffAndDate(
	ctx context.Context,
	staffID uint,
	date string,
) ([]models.Booking, error) {

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var bks []models.Booking
	if err := r.db.WithContext(ctx).
		Select("time", "status", "duration_min").
		Where(
			"staff_id = ? AND date = ? AND status NOT IN ('cancelled', 'rejected')",
			staffID, date,
		).
		Order("time ASC").
		Find(&bks).Error; err != nil {
		return nil, storageErr(err)
	}

	return bks, nil
}

func (r *BookingGormRepository) ListByStaffAndDate(
	ctx context.Context,
	staffID uint,
	date string,
) ([]models.Booking, error) {

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var bks []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Service").
		Where("staff_id = ? AND date = ?", staffID, date).
		Order("time ASC").
		Find(&bks).Error; err != nil {
		return nil, storageErr(err)
	}

	return bks, nil
}

// --------------------------------------------------
// Booking (state change)
// --------------------------------------------------

func (r *BookingGormRepository) GetBookingForStaff(
	ctx context.Context,
	publicID string,
	staffID uint,
) (*models.Booking, error) {

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var bk models.Booking
	if err := r.db.WithContext(ctx).
		Where("public_id = ? AND staff_id = ?", publicID, staffID).
		First(&bk).Error; err != nil {
		return nil, storageErr(err)
	}

	return &bk, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	bk *models.Booking,
) error {

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if err := r.db.WithContext(ctx).Save(bk).Error; err != nil {
		return storageErr(err)
	}
	return nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
