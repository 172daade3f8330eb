package accounting

import "errors"

// Erros expostos ao chamador, no mesmo molde do resumo de vendas: mensagens
// curtas e seguras, detalhes internos apenas nos logs.
var (
	ErrMissingName = errors.New("o nome da conta é obrigatório")

	ErrAccountNotFound = errors.New("conta não encontrada")

	// ErrOwnerNotFound cobre dono inexistente e dono desativado.
	ErrOwnerNotFound = errors.New("o dono informado não existe ou está inativo")

	ErrInvalidPeriod = errors.New("o período informado é inválido")

	// ErrPermissionDenied indica que o chamador não possui as permissões de
	// leitura exigidas sobre SalesTransaction, seus campos ou Account.
	ErrPermissionDenied = errors.New("você não tem permissão para visualizar as vendas desta conta")

	// ErrAccountUnavailable encobre falhas internas de consulta.
	ErrAccountUnavailable = errors.New("não foi possível completar a operação de contas")
)
