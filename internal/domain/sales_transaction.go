package domain

import "time"

// SalesTransaction representa uma venda registrada contra uma conta.
// Imutável após a criação: não existe caminho de update/delete.
type SalesTransaction struct {
	ID        int       `json:"id"`
	AccountID string    `json:"account_id"`
	SaleDate  time.Time `json:"sale_date"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// SalesTransactionInput é um candidato de criação recebido no lote,
// antes de qualquer validação.
type SalesTransactionInput struct {
	AccountID string  `json:"account_id"`
	SaleDate  string  `json:"sale_date"`
	Amount    float64 `json:"amount"`
}

// RecordResult é o resultado individual de cada registro do lote.
// Registros rejeitados carregam a mensagem associada ao registro,
// nunca uma falha do lote inteiro.
type RecordResult struct {
	Index   int    `json:"index"`
	Created bool   `json:"created"`
	ID      int    `json:"id,omitempty"`
	Message string `json:"message,omitempty"`
}

// BatchResult resume o resultado de um lote de criação.
type BatchResult struct {
	Total    int             `json:"total"`
	Accepted int             `json:"accepted"`
	Rejected int             `json:"rejected"`
	Results  []*RecordResult `json:"results"`
}
