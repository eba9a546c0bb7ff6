package booking

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/shop-agenda/internal/domain/booking"
	"github.com/BruksfildServices01/shop-agenda/internal/httperr"
)

func tryBookInput(repo *fakeRepo, date, timeHM string) TryBookInput {
	return TryBookInput{
		ShopID:        repo.shop.ID,
		StaffID:       repo.staff.ID,
		ServiceID:     repo.service.ID,
		CustomerName:  "Joana",
		CustomerPhone: "+55 11 99999-0000",
		Date:          date,
		Time:          timeHM,
	}
}

func TestTryBookHappyPath(t *testing.T) {
	repo := newFakeRepo()
	_, dateStr := futureWorkday(repo)

	uc := NewTryBook(repo, nil, nil)

	bk, err := uc.Execute(context.Background(), tryBookInput(repo, dateStr, "09:00"))
	require.NoError(t, err)

	assert.NotEmpty(t, bk.PublicID)
	assert.Equal(t, string(domain.StatusPending), bk.Status)
	assert.Equal(t, dateStr, bk.Date)
	assert.Equal(t, "09:00", bk.Time)
	assert.Equal(t, 30, bk.DurationMin)

	// O slot some da disponibilidade: 18 viram 17 sem o 09:00.
	availUC := NewGetAvailability(repo, nil)
	slots, err := availUC.Execute(context.Background(), availabilityInput(repo, dateStr))
	require.NoError(t, err)
	assert.Len(t, slots, 17)
	assert.NotContains(t, slotStarts(slots), "09:00")
}

func TestTryBookAutoAcceptPolicy(t *testing.T) {
	repo := newFakeRepo()
	_, dateStr := futureWorkday(repo)
	repo.shop.AutoAccept = true

	uc := NewTryBook(repo, nil, nil)

	bk, err := uc.Execute(context.Background(), tryBookInput(repo, dateStr, "14:00"))
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusAccepted), bk.Status)
}

func TestTryBookConflictIsNormalOutcome(t *testing.T) {
	repo := newFakeRepo()
	_, dateStr := futureWorkday(repo)

	uc := NewTryBook(repo, nil, nil)

	_, err := uc.Execute(context.Background(), tryBookInput(repo, dateStr, "10:00"))
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), tryBookInput(repo, dateStr, "10:00"))
	assert.True(t, httperr.IsBusiness(err, "slot_taken"))
}

// A propriedade central: N tentativas concorrentes no mesmo slot,
// exatamente uma entra, todas as outras recebem slot_taken.
func TestTryBookConcurrentSameSlot(t *testing.T) {
	repo := newFakeRepo()
	_, dateStr := futureWorkday(repo)

	uc := NewTryBook(repo, nil, nil)

	const attempts = 32

	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), tryBookInput(repo, dateStr, "15:00"))
		}(i)
	}
	wg.Wait()

	var succeeded, conflicted int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case httperr.IsBusiness(err, "slot_taken"):
			conflicted++
		default:
			t.Fatalf("erro inesperado: %v", err)
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, conflicted)
}

func TestTryBookCancelledSlotReopens(t *testing.T) {
	repo := newFakeRepo()
	_, dateStr := futureWorkday(repo)

	tryBook := NewTryBook(repo, nil, nil)
	cancel := NewCancelBooking(repo, nil, nil)

	bk, err := tryBook.Execute(context.Background(), tryBookInput(repo, dateStr, "11:00"))
	require.NoError(t, err)

	_, err = cancel.Execute(context.Background(), repo.shop.ID, repo.staff.ID, bk.PublicID)
	require.NoError(t, err)

	// Mesmo slot de novo: a reserva cancelada não ocupa mais.
	bk2, err := tryBook.Execute(context.Background(), tryBookInput(repo, dateStr, "11:00"))
	require.NoError(t, err)
	assert.NotEqual(t, bk.PublicID, bk2.PublicID)
}

func TestTryBookOutsideWorkingHours(t *testing.T) {
	repo := newFakeRepo()
	_, dateStr := futureWorkday(repo)

	uc := NewTryBook(repo, nil, nil)

	for _, hm := range []string{"08:00", "13:00", "18:45", "22:00"} {
		_, err := uc.Execute(context.Background(), tryBookInput(repo, dateStr, hm))
		assert.True(t, httperr.IsBusiness(err, "outside_working_hours"), "horário %s", hm)
	}
}

func TestTryBookTooSoon(t *testing.T) {
	repo := newFakeRepo()
	date, _ := futureWorkday(repo)

	// Mesmo dia da semana (agenda ativa), só que no passado: a
	// antecedência mínima barra antes de qualquer outra checagem.
	past := date.AddDate(0, 0, -21).Format("2006-01-02")

	uc := NewTryBook(repo, nil, nil)

	_, err := uc.Execute(context.Background(), tryBookInput(repo, past, "09:00"))
	assert.True(t, httperr.IsBusiness(err, "too_soon"))
}

func TestTryBookUnknownService(t *testing.T) {
	repo := newFakeRepo()
	_, dateStr := futureWorkday(repo)

	uc := NewTryBook(repo, nil, nil)

	in := tryBookInput(repo, dateStr, "09:00")
	in.ServiceID = 999

	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "not_found"))
}

func TestTryBookInvalidDateTime(t *testing.T) {
	repo := newFakeRepo()
	_, dateStr := futureWorkday(repo)

	uc := NewTryBook(repo, nil, nil)

	in := tryBookInput(repo, dateStr, "9h30")
	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "invalid_date_or_time"))
}
