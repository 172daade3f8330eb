package summarizing

import "errors"

// Erros expostos ao chamador. As mensagens são curtas e seguras para o
// usuário final; detalhes internos ficam apenas nos logs.
var (
	// ErrMissingSubject indica que o vendedor alvo não foi informado.
	ErrMissingSubject = errors.New("o vendedor deve ser informado")

	// ErrPermissionDenied indica que o chamador não possui as permissões de
	// leitura exigidas sobre SalesTransaction, seus campos ou Account.
	ErrPermissionDenied = errors.New("você não tem permissão para visualizar o resumo de vendas")

	// ErrSummaryUnavailable encobre falhas internas de consulta.
	ErrSummaryUnavailable = errors.New("não foi possível calcular o resumo de vendas")
)
