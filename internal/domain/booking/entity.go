package booking

import (
	"time"

	"github.com/BruksfildServices01/shop-agenda/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Accept(bk *models.Booking, now time.Time) error {
	if err := CanAccept(Status(bk.Status)); err != nil {
		return err
	}

	bk.Status = string(StatusAccepted)
	bk.AcceptedAt = &now
	return nil
}

func Reject(bk *models.Booking, now time.Time) error {
	if err := CanReject(Status(bk.Status)); err != nil {
		return err
	}

	bk.Status = string(StatusRejected)
	bk.RejectedAt = &now
	return nil
}

func Complete(bk *models.Booking, now time.Time) error {
	if err := CanComplete(Status(bk.Status)); err != nil {
		return err
	}

	bk.Status = string(StatusCompleted)
	bk.CompletedAt = &now
	return nil
}

func Cancel(bk *models.Booking, now time.Time) error {
	if err := CanCancel(Status(bk.Status)); err != nil {
		return err
	}

	bk.Status = string(StatusCancelled)
	bk.CancelledAt = &now
	return nil
}
