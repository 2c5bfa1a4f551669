package archive

import (
	"time"

	"github.com/dfmartinez/bodega-api/internal/domain"
)

const dateLayout = "2006-01-02"

// Filter criterios de la vista de archivo: a lo sumo una forma de ventana se
// honra, con la precedencia rango explícito > día > año+mes > año > mes del año
// en curso. Sin filtros de fecha significa "todo el tiempo". Search filtra por
// substring sobre código de lote o producto (solo exportaciones).
type Filter struct {
	StartDate string // YYYY-MM-DD, inclusivo
	EndDate   string // YYYY-MM-DD, inclusivo (fin de día)
	Day       string // YYYY-MM-DD
	Year      int
	Month     int // 1-12
	Search    string
}

// Window intervalo semiabierto [From, To). Un extremo nil no acota por ese lado.
type Window struct {
	From *time.Time
	To   *time.Time
}

// Contains indica si t cae dentro de la ventana.
func (w Window) Contains(t time.Time) bool {
	if w.From != nil && t.Before(*w.From) {
		return false
	}
	if w.To != nil && !t.Before(*w.To) {
		return false
	}
	return true
}

// ResolveWindow convierte el filtro en un intervalo [start, end). El fin
// inclusivo de un rango explícito se traduce sumando un día.
func ResolveWindow(f Filter, now time.Time) (Window, error) {
	switch {
	case f.StartDate != "" || f.EndDate != "":
		var w Window
		if f.StartDate != "" {
			start, err := time.ParseInLocation(dateLayout, f.StartDate, time.Local)
			if err != nil {
				return Window{}, domain.NewValidation("start_date", "fecha en formato inválido, se espera YYYY-MM-DD")
			}
			w.From = &start
		}
		if f.EndDate != "" {
			end, err := time.ParseInLocation(dateLayout, f.EndDate, time.Local)
			if err != nil {
				return Window{}, domain.NewValidation("end_date", "fecha en formato inválido, se espera YYYY-MM-DD")
			}
			// El rango se valida sobre las fechas crudas, antes de convertir el
			// fin inclusivo en exclusivo.
			if w.From != nil && end.Before(*w.From) {
				return Window{}, domain.NewValidation("", "el rango de fechas es inválido")
			}
			endExclusive := end.AddDate(0, 0, 1)
			w.To = &endExclusive
		}
		return w, nil

	case f.Day != "":
		start, err := time.ParseInLocation(dateLayout, f.Day, time.Local)
		if err != nil {
			return Window{}, domain.NewValidation("day", "fecha en formato inválido, se espera YYYY-MM-DD")
		}
		end := start.AddDate(0, 0, 1)
		return Window{From: &start, To: &end}, nil

	case f.Year != 0 && f.Month != 0:
		if f.Month < 1 || f.Month > 12 {
			return Window{}, domain.NewValidation("month", "el mes debe estar entre 1 y 12")
		}
		start := time.Date(f.Year, time.Month(f.Month), 1, 0, 0, 0, 0, time.Local)
		end := start.AddDate(0, 1, 0)
		return Window{From: &start, To: &end}, nil

	case f.Year != 0:
		start := time.Date(f.Year, time.January, 1, 0, 0, 0, 0, time.Local)
		end := start.AddDate(1, 0, 0)
		return Window{From: &start, To: &end}, nil

	case f.Month != 0:
		if f.Month < 1 || f.Month > 12 {
			return Window{}, domain.NewValidation("month", "el mes debe estar entre 1 y 12")
		}
		start := time.Date(now.Year(), time.Month(f.Month), 1, 0, 0, 0, 0, time.Local)
		end := start.AddDate(0, 1, 0)
		return Window{From: &start, To: &end}, nil
	}

	return Window{}, nil // sin filtros: todo el tiempo
}
