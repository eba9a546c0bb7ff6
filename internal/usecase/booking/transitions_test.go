package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/shop-agenda/internal/domain/booking"
	"github.com/BruksfildServices01/shop-agenda/internal/httperr"
	"github.com/BruksfildServices01/shop-agenda/internal/models"
)

func seedPending(repo *fakeRepo, publicID, date, timeHM string) {
	repo.seedBooking(models.Booking{
		PublicID:    publicID,
		ShopID:      repo.shop.ID,
		StaffID:     repo.staff.ID,
		ServiceID:   repo.service.ID,
		CustomerID:  7,
		Date:        date,
		Time:        timeHM,
		DurationMin: repo.service.DurationMin,
		Status:      string(domain.StatusPending),
	})
}

func TestAcceptThenComplete(t *testing.T) {
	repo := newFakeRepo()
	_, dateStr := futureWorkday(repo)
	seedPending(repo, "bk-1", dateStr, "10:00")

	ctx := context.Background()

	accepted, err := NewAcceptBooking(repo, nil, nil).
		Execute(ctx, repo.shop.ID, repo.staff.ID, "bk-1")
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusAccepted), accepted.Status)
	require.NotNil(t, accepted.AcceptedAt)

	completed, err := NewCompleteBooking(repo, nil).
		Execute(ctx, repo.shop.ID, repo.staff.ID, "bk-1")
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), completed.Status)
	require.NotNil(t, completed.CompletedAt)

	// A mudança precisa estar persistida, não só no retorno.
	stored, err := repo.GetBookingForStaff(ctx, "bk-1", repo.staff.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), stored.Status)
}

func TestCompleteWithoutAccept(t *testing.T) {
	repo := newFakeRepo()
	_, dateStr := futureWorkday(repo)
	seedPending(repo, "bk-1", dateStr, "10:00")

	_, err := NewCompleteBooking(repo, nil).
		Execute(context.Background(), repo.shop.ID, repo.staff.ID, "bk-1")
	assert.True(t, httperr.IsBusiness(err, "invalid_transition"))
}

func TestRejectPending(t *testing.T) {
	repo := newFakeRepo()
	_, dateStr := futureWorkday(repo)
	seedPending(repo, "bk-1", dateStr, "10:00")

	ctx := context.Background()

	rejected, err := NewRejectBooking(repo, nil, nil).
		Execute(ctx, repo.shop.ID, repo.staff.ID, "bk-1")
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusRejected), rejected.Status)
	require.NotNil(t, rejected.RejectedAt)

	// Recusada não ocupa mais o horário.
	_, err = repo.FindActiveBooking(ctx, repo.staff.ID, dateStr, "10:00")
	assert.True(t, httperr.IsBusiness(err, "not_found"))
}

func TestCancelTerminalBooking(t *testing.T) {
	repo := newFakeRepo()
	_, dateStr := futureWorkday(repo)
	seedPending(repo, "bk-1", dateStr, "10:00")

	ctx := context.Background()

	_, err := NewAcceptBooking(repo, nil, nil).
		Execute(ctx, repo.shop.ID, repo.staff.ID, "bk-1")
	require.NoError(t, err)
	_, err = NewCompleteBooking(repo, nil).
		Execute(ctx, repo.shop.ID, repo.staff.ID, "bk-1")
	require.NoError(t, err)

	_, err = NewCancelBooking(repo, nil, nil).
		Execute(ctx, repo.shop.ID, repo.staff.ID, "bk-1")
	assert.True(t, httperr.IsBusiness(err, "invalid_transition"))

	// O estado terminal não foi alterado pela tentativa.
	stored, err := repo.GetBookingForStaff(ctx, "bk-1", repo.staff.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), stored.Status)
	assert.Nil(t, stored.CancelledAt)
}

func TestTransitionUnknownBooking(t *testing.T) {
	repo := newFakeRepo()

	_, err := NewAcceptBooking(repo, nil, nil).
		Execute(context.Background(), repo.shop.ID, repo.staff.ID, "nao-existe")
	assert.True(t, httperr.IsBusiness(err, "not_found"))
}

func TestTransitionWrongStaff(t *testing.T) {
	repo := newFakeRepo()
	_, dateStr := futureWorkday(repo)
	seedPending(repo, "bk-1", dateStr, "10:00")

	// Outro profissional não enxerga a reserva.
	_, err := NewAcceptBooking(repo, nil, nil).
		Execute(context.Background(), repo.shop.ID, repo.staff.ID+1, "bk-1")
	assert.True(t, httperr.IsBusiness(err, "not_found"))
}
