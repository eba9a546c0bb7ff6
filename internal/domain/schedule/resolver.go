package schedule

import (
	"time"

	"github.com/BruksfildServices01/shop-agenda/internal/httperr"
)

// Resolve calcula os intervalos de trabalho de um profissional em
// uma data. Precedência, da maior para a menor:
//
//  1. exceção de data (off / partial / extra)
//  2. agenda semanal pessoal
//  3. horário padrão da loja
//
// Depois o almoço é subtraído do resultado. Lista vazia = não
// trabalha nesse dia (resultado normal, não é erro).
func Resolve(cal Calendar, date time.Time) ([]Interval, error) {
	weekday := date.Weekday() // 0 = domingo, em todo o sistema

	window, works, err := dayWindow(cal, weekday)
	if err != nil {
		return nil, err
	}
	if !works {
		return nil, nil
	}

	intervals := subtractLunch(window, cal.Lunch)

	// Intervalos degenerados não geram slot nenhum.
	out := intervals[:0]
	for _, iv := range intervals {
		if iv.Start < iv.End {
			out = append(out, iv)
		}
	}

	return out, nil
}

// dayWindow aplica a precedência exceção > pessoal > loja e devolve
// a janela bruta do dia (antes do almoço).
func dayWindow(cal Calendar, weekday time.Weekday) (Interval, bool, error) {
	template := templateFor(cal, weekday)

	if ov := cal.Override; ov != nil {
		switch ov.Kind {
		case OverrideOff:
			return Interval{}, false, nil

		case OverridePartial:
			// Bordas da exceção vencem; borda ausente cai no
			// template do dia. Sem template ativo não há de onde
			// herdar: configuração inválida, não fallback mudo.
			start := ov.Start
			end := ov.End
			if start == "" || end == "" {
				if template == nil || !template.Active {
					return Interval{}, false, httperr.ErrBusiness("invalid_schedule_config")
				}
				if start == "" {
					start = template.Start
				}
				if end == "" {
					end = template.End
				}
			}
			return parseWindow(start, end)

		case OverrideExtra:
			// Dia normalmente inativo: as duas bordas são obrigatórias.
			if ov.Start == "" || ov.End == "" {
				return Interval{}, false, httperr.ErrBusiness("invalid_schedule_config")
			}
			return parseWindow(ov.Start, ov.End)

		default:
			return Interval{}, false, httperr.ErrBusiness("invalid_schedule_config")
		}
	}

	if template == nil || !template.Active {
		return Interval{}, false, nil
	}

	return parseWindow(template.Start, template.End)
}

func templateFor(cal Calendar, weekday time.Weekday) *DayWindow {
	if cal.Week != nil {
		return &cal.Week[weekday]
	}
	return &cal.ShopWeek[weekday]
}

func parseWindow(startHM, endHM string) (Interval, bool, error) {
	start, err := ParseHM(startHM)
	if err != nil {
		return Interval{}, false, err
	}
	end, err := ParseHM(endHM)
	if err != nil {
		return Interval{}, false, err
	}
	return Interval{Start: start, End: end}, true, nil
}

// subtractLunch remove a pausa de almoço da janela: pode truncar
// uma borda, dividir em dois intervalos ou engolir a janela inteira.
func subtractLunch(window Interval, lunch *Lunch) []Interval {
	if lunch == nil || lunch.Start == "" || lunch.End == "" {
		return []Interval{window}
	}

	ls, err1 := ParseHM(lunch.Start)
	le, err2 := ParseHM(lunch.End)
	if err1 != nil || err2 != nil || ls >= le {
		// Almoço mal configurado não derruba o dia inteiro;
		// a tela de configuração valida na escrita.
		return []Interval{window}
	}

	// Sem sobreposição.
	if le <= window.Start || ls >= window.End {
		return []Interval{window}
	}

	// Almoço cobre a janela toda.
	if ls <= window.Start && le >= window.End {
		return nil
	}

	// Sobra só a parte da manhã ou só a da tarde.
	if ls <= window.Start {
		return []Interval{{Start: le, End: window.End}}
	}
	if le >= window.End {
		return []Interval{{Start: window.Start, End: ls}}
	}

	// Almoço no meio: divide em dois.
	return []Interval{
		{Start: window.Start, End: ls},
		{Start: le, End: window.End},
	}
}
