package domain

import "time"

// InsertAuditEntry resume o desfecho de um lote de criação guardado.
// Gravado pelo caso de uso de registro após o commit, nunca pelo guard.
type InsertAuditEntry struct {
	ID        string    `json:"id"`
	ActorID   int       `json:"actor_id"`
	Total     int       `json:"total"`
	Accepted  int       `json:"accepted"`
	Rejected  int       `json:"rejected"`
	CreatedAt time.Time `json:"created_at"`
}
