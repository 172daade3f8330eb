package utils

import "math"

// RoundWithTwoDecimalPlace arredonda valores monetários para duas casas,
// espelhando o NUMERIC(12,2) das colunas de amount.
func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}
