package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/shop-agenda/internal/httperr"
	"github.com/BruksfildServices01/shop-agenda/internal/httpresp"
	"github.com/BruksfildServices01/shop-agenda/internal/middleware"
	ucBooking "github.com/BruksfildServices01/shop-agenda/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	acceptUC   *ucBooking.AcceptBooking
	rejectUC   *ucBooking.RejectBooking
	completeUC *ucBooking.CompleteBooking
	cancelUC   *ucBooking.CancelBooking
	listUC     *ucBooking.ListBookingsByDate
}

func NewBookingHandler(
	acceptUC *ucBooking.AcceptBooking,
	rejectUC *ucBooking.RejectBooking,
	completeUC *ucBooking.CompleteBooking,
	cancelUC *ucBooking.CancelBooking,
	listUC *ucBooking.ListBookingsByDate,
) *BookingHandler {
	return &BookingHandler{
		acceptUC:   acceptUC,
		rejectUC:   rejectUC,
		completeUC: completeUC,
		cancelUC:   cancelUC,
		listUC:     listUC,
	}
}

// ======================================================
// AGENDA DO DIA
// ======================================================

func (h *BookingHandler) ListByDate(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextStaffID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	bookings, err := h.listUC.Execute(c.Request.Context(), staffID, dateStr)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	httpresp.List(c, bookings)
}

// ======================================================
// TRANSIÇÕES DE STATUS
// ======================================================

func (h *BookingHandler) Accept(c *gin.Context) {
	h.transition(c, func(c *gin.Context, shopID, staffID uint, id string) (any, error) {
		return h.acceptUC.Execute(c.Request.Context(), shopID, staffID, id)
	})
}

func (h *BookingHandler) Reject(c *gin.Context) {
	h.transition(c, func(c *gin.Context, shopID, staffID uint, id string) (any, error) {
		return h.rejectUC.Execute(c.Request.Context(), shopID, staffID, id)
	})
}

func (h *BookingHandler) Complete(c *gin.Context) {
	h.transition(c, func(c *gin.Context, shopID, staffID uint, id string) (any, error) {
		return h.completeUC.Execute(c.Request.Context(), shopID, staffID, id)
	})
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	h.transition(c, func(c *gin.Context, shopID, staffID uint, id string) (any, error) {
		return h.cancelUC.Execute(c.Request.Context(), shopID, staffID, id)
	})
}

func (h *BookingHandler) transition(
	c *gin.Context,
	run func(c *gin.Context, shopID, staffID uint, id string) (any, error),
) {
	staffID := c.MustGet(middleware.ContextStaffID).(uint)
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	bookingID := c.Param("id")
	if bookingID == "" {
		httperr.BadRequest(c, "missing_booking_id", "Reserva obrigatória.")
		return
	}

	bk, err := run(c, shopID, staffID, bookingID)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, bk)
}
