package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/shop-agenda/internal/httperr"
)

// weekWith monta um template com um único dia ativo, no weekday da
// data alvo, para o teste não depender de calendário mental.
func weekWith(date time.Time, start, end string) *WeekTemplate {
	var week WeekTemplate
	week[date.Weekday()] = DayWindow{Active: true, Start: start, End: end}
	return &week
}

func mustResolve(t *testing.T, cal Calendar, date time.Time) []Interval {
	t.Helper()
	intervals, err := Resolve(cal, date)
	require.NoError(t, err)
	return intervals
}

func TestResolveWeeklyTemplate(t *testing.T) {
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	cal := Calendar{Week: weekWith(date, "09:00", "19:00")}

	intervals := mustResolve(t, cal, date)
	require.Len(t, intervals, 1)
	assert.Equal(t, "09:00", intervals[0].StartHM())
	assert.Equal(t, "19:00", intervals[0].EndHM())
}

func TestResolveInactiveWeekday(t *testing.T) {
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	// Dia ativo é outro weekday qualquer.
	other := date.AddDate(0, 0, 1)
	cal := Calendar{Week: weekWith(other, "09:00", "19:00")}

	intervals := mustResolve(t, cal, date)
	assert.Empty(t, intervals, "dia inativo deve resultar em não-trabalha")
}

func TestResolveShopFallback(t *testing.T) {
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	var shopWeek WeekTemplate
	shopWeek[date.Weekday()] = DayWindow{Active: true, Start: "08:00", End: "18:00"}

	// Sem agenda pessoal: vale o horário da loja.
	cal := Calendar{Week: nil, ShopWeek: shopWeek}

	intervals := mustResolve(t, cal, date)
	require.Len(t, intervals, 1)
	assert.Equal(t, "08:00", intervals[0].StartHM())
	assert.Equal(t, "18:00", intervals[0].EndHM())
}

func TestResolveShopClosed(t *testing.T) {
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	cal := Calendar{} // sem pessoal, loja fechada todos os dias

	intervals := mustResolve(t, cal, date)
	assert.Empty(t, intervals)
}

func TestResolveOffExceptionWinsOverTemplate(t *testing.T) {
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	cal := Calendar{
		Week:     weekWith(date, "09:00", "19:00"),
		Override: &Override{Kind: OverrideOff},
	}

	intervals := mustResolve(t, cal, date)
	assert.Empty(t, intervals, "off vence o template semanal")
}

func TestResolvePartialException(t *testing.T) {
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	t.Run("both bounds", func(t *testing.T) {
		cal := Calendar{
			Week:     weekWith(date, "09:00", "19:00"),
			Override: &Override{Kind: OverridePartial, Start: "11:00", End: "15:00"},
		}

		intervals := mustResolve(t, cal, date)
		require.Len(t, intervals, 1)
		assert.Equal(t, "11:00", intervals[0].StartHM())
		assert.Equal(t, "15:00", intervals[0].EndHM())
	})

	t.Run("missing end falls back to template", func(t *testing.T) {
		cal := Calendar{
			Week:     weekWith(date, "09:00", "19:00"),
			Override: &Override{Kind: OverridePartial, Start: "11:00"},
		}

		intervals := mustResolve(t, cal, date)
		require.Len(t, intervals, 1)
		assert.Equal(t, "11:00", intervals[0].StartHM())
		assert.Equal(t, "19:00", intervals[0].EndHM())
	})

	t.Run("missing bound without active template is config error", func(t *testing.T) {
		other := date.AddDate(0, 0, 1)
		cal := Calendar{
			Week:     weekWith(other, "09:00", "19:00"),
			Override: &Override{Kind: OverridePartial, Start: "11:00"},
		}

		_, err := Resolve(cal, date)
		assert.True(t, httperr.IsBusiness(err, "invalid_schedule_config"))
	})
}

func TestResolveExtraException(t *testing.T) {
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	t.Run("adds availability on inactive weekday", func(t *testing.T) {
		cal := Calendar{
			Override: &Override{Kind: OverrideExtra, Start: "10:00", End: "14:00"},
		}

		intervals := mustResolve(t, cal, date)
		require.Len(t, intervals, 1)
		assert.Equal(t, "10:00", intervals[0].StartHM())
		assert.Equal(t, "14:00", intervals[0].EndHM())
	})

	t.Run("missing bound is config error, not silent fallback", func(t *testing.T) {
		cal := Calendar{
			Override: &Override{Kind: OverrideExtra, Start: "10:00"},
		}

		_, err := Resolve(cal, date)
		assert.True(t, httperr.IsBusiness(err, "invalid_schedule_config"))
	})
}

func TestResolveUnknownOverrideKind(t *testing.T) {
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	cal := Calendar{
		Week:     weekWith(date, "09:00", "19:00"),
		Override: &Override{Kind: "holiday"},
	}

	_, err := Resolve(cal, date)
	assert.True(t, httperr.IsBusiness(err, "invalid_schedule_config"))
}

func TestResolveLunch(t *testing.T) {
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	newCal := func(lunch *Lunch) Calendar {
		return Calendar{
			Week:  weekWith(date, "09:00", "19:00"),
			Lunch: lunch,
		}
	}

	t.Run("splits the day in two", func(t *testing.T) {
		intervals := mustResolve(t, newCal(&Lunch{Start: "13:00", End: "14:00"}), date)

		require.Len(t, intervals, 2)
		assert.Equal(t, "09:00", intervals[0].StartHM())
		assert.Equal(t, "13:00", intervals[0].EndHM())
		assert.Equal(t, "14:00", intervals[1].StartHM())
		assert.Equal(t, "19:00", intervals[1].EndHM())
	})

	t.Run("truncates the start edge", func(t *testing.T) {
		intervals := mustResolve(t, newCal(&Lunch{Start: "08:00", End: "10:00"}), date)

		require.Len(t, intervals, 1)
		assert.Equal(t, "10:00", intervals[0].StartHM())
		assert.Equal(t, "19:00", intervals[0].EndHM())
	})

	t.Run("truncates the end edge", func(t *testing.T) {
		intervals := mustResolve(t, newCal(&Lunch{Start: "18:00", End: "20:00"}), date)

		require.Len(t, intervals, 1)
		assert.Equal(t, "09:00", intervals[0].StartHM())
		assert.Equal(t, "18:00", intervals[0].EndHM())
	})

	t.Run("swallows the whole window", func(t *testing.T) {
		intervals := mustResolve(t, newCal(&Lunch{Start: "08:00", End: "20:00"}), date)
		assert.Empty(t, intervals)
	})

	t.Run("outside the window changes nothing", func(t *testing.T) {
		intervals := mustResolve(t, newCal(&Lunch{Start: "20:00", End: "21:00"}), date)
		require.Len(t, intervals, 1)
		assert.Equal(t, "09:00", intervals[0].StartHM())
		assert.Equal(t, "19:00", intervals[0].EndHM())
	})
}

func TestResolveDropsDegenerateIntervals(t *testing.T) {
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	// Almoço colado na abertura: a "manhã" tem largura zero.
	cal := Calendar{
		Week:  weekWith(date, "09:00", "19:00"),
		Lunch: &Lunch{Start: "09:00", End: "10:00"},
	}

	intervals := mustResolve(t, cal, date)
	require.Len(t, intervals, 1)
	assert.Equal(t, "10:00", intervals[0].StartHM())
}

func TestResolveInvalidTemplateTimes(t *testing.T) {
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	cal := Calendar{Week: weekWith(date, "9h00", "19:00")}

	_, err := Resolve(cal, date)
	assert.True(t, httperr.IsBusiness(err, "invalid_schedule_config"))
}

func TestParseHM(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "00:00", want: 0},
		{in: "09:30", want: 570},
		{in: "23:59", want: 1439},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "9:00", wantErr: true},
		{in: "", wantErr: true},
		{in: "ab:cd", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseHM(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.in, FormatHM(got))
	}
}
