package domain

// MonthlyPoint é um ponto derivado da série de vendas, nunca persistido.
// A série completa tem sempre exatamente 12 pontos, em ordem cronológica,
// com meses sem vendas representados como total zero.
type MonthlyPoint struct {
	Year  int     `json:"year"`
	Month int     `json:"month"`
	Total float64 `json:"total"`
}

// MonthlySalesSeries é a resposta da agregação mensal por vendedor.
type MonthlySalesSeries struct {
	Points []MonthlyPoint `json:"points"`
}

// MonthTotal é uma linha esparsa retornada pela query agregada,
// antes do preenchimento denso da janela de 12 meses.
type MonthTotal struct {
	Year  int
	Month int
	Total float64
}
