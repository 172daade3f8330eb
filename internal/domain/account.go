package domain

import "time"

// Account é a conta contra a qual vendas são registradas.
// O owner é mutável ao longo do tempo e sempre lido no momento da consulta:
// a atribuição histórica segue o dono ATUAL, não o dono na data da venda.
type Account struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerID   int       `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
