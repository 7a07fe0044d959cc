package domain

import "time"

// EventRecord representa um compromisso do calendário do CRM
type EventRecord struct {
	ID        string     `json:"id"`
	Title     string     `json:"title,omitempty"`
	StartTime *time.Time `json:"start_time,omitempty"`
	Date      *time.Time `json:"date,omitempty"`
	ClientID  string     `json:"client_id,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// When retorna o horário efetivo do evento (start_time tem prioridade sobre date)
func (e EventRecord) When() *time.Time {
	if e.StartTime != nil {
		return e.StartTime
	}
	return e.Date
}
