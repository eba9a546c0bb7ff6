package schedule

import "github.com/BruksfildServices01/shop-agenda/internal/httperr"

// Slots gera os horários candidatos de início ("HH:MM") que cabem
// inteiros dentro dos intervalos de trabalho, em passos fixos da
// duração do serviço. Função pura: nunca consulta reservas.
func Slots(intervals []Interval, durationMin int) ([]string, error) {
	if durationMin <= 0 {
		return nil, httperr.ErrBusiness("invalid_duration")
	}

	var slots []string
	for _, iv := range intervals {
		for cur := iv.Start; cur+durationMin <= iv.End; cur += durationMin {
			slots = append(slots, FormatHM(cur))
		}
	}

	return slots, nil
}
