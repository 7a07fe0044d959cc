package utils

import "time"

// PeriodFormat é o formato de período mensal usado em relatórios (mm-yyyy)
const PeriodFormat = "01-2006"

func ParseDate(dateStr string) (*time.Time, error) {
	var date time.Time

	if dateStr != "" {
		incomingDate, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, err
		}

		date = incomingDate
	}

	return &date, nil
}

// StartOfMonth retorna o primeiro instante do mês da data informada
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// MonthKey retorna o período mensal da data no formato mm-yyyy
func MonthKey(t time.Time) string {
	return t.Format(PeriodFormat)
}

// SameMonth verifica se duas datas pertencem ao mesmo mês calendário
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
