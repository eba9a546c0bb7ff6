package schedule

import (
	"fmt"
	"strings"

	"github.com/BruksfildServices01/shop-agenda/internal/httperr"
)

// ===============================
// Tipos de agenda
// ===============================

// DayWindow é a janela de um dia da semana no template.
type DayWindow struct {
	Active bool   `json:"active"`
	Start  string `json:"start"` // HH:MM
	End    string `json:"end"`   // HH:MM
}

// WeekTemplate indexado por time.Weekday (0 = domingo).
type WeekTemplate [7]DayWindow

type Lunch struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ===============================
// Exceções de data
// ===============================

const (
	OverrideOff     = "off"
	OverridePartial = "partial"
	OverrideExtra   = "extra"
)

// Override substitui o template semanal em uma única data.
type Override struct {
	Kind  string
	Start string
	End   string
}

func ValidOverrideKind(kind string) bool {
	switch kind {
	case OverrideOff, OverridePartial, OverrideExtra:
		return true
	}
	return false
}

// Calendar é toda a configuração de disponibilidade de um
// profissional, já carregada para a data consultada.
type Calendar struct {
	// Agenda semanal pessoal. Nil = profissional sem agenda
	// própria, vale o horário padrão da loja.
	Week *WeekTemplate

	// Horário padrão da loja (fallback).
	ShopWeek WeekTemplate

	// Pausa de almoço aplicada a todos os dias ativos.
	Lunch *Lunch

	// Exceção cadastrada para a data consultada, se houver.
	Override *Override
}

// Interval é um intervalo de trabalho derivado, em minutos
// desde a meia-noite, já líquido de almoço.
type Interval struct {
	Start int
	End   int
}

func (iv Interval) StartHM() string { return FormatHM(iv.Start) }
func (iv Interval) EndHM() string   { return FormatHM(iv.End) }

// ===============================
// HH:MM <-> minutos
// ===============================

// ParseHM converte "HH:MM" em minutos desde a meia-noite.
func ParseHM(hm string) (int, error) {
	parts := strings.SplitN(hm, ":", 2)
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, httperr.ErrBusiness("invalid_schedule_config")
	}

	var h, m int
	if _, err := fmt.Sscanf(hm, "%02d:%02d", &h, &m); err != nil {
		return 0, httperr.ErrBusiness("invalid_schedule_config")
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, httperr.ErrBusiness("invalid_schedule_config")
	}

	return h*60 + m, nil
}

func FormatHM(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
