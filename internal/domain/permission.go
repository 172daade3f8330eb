package domain

// Grants nomeados do modelo de permissão. A filiação do usuário a um
// permission set concede os grants do set; as checagens são sempre feitas
// em código de aplicação, nunca delegadas a camada declarativa.
const (
	// GrantCreateOnAnyAccount isenta o usuário das checagens de ownership
	// e de gerente durante a criação (escape hatch de administradores).
	GrantCreateOnAnyAccount = "create-on-any-account"

	// GrantSalesSummaryAccess marca os usuários elegíveis como vendedores
	// no seletor da UI e no resumo mensal.
	GrantSalesSummaryAccess = "sales-summary-access"

	// Leitura em nível de objeto.
	GrantReadSalesTransaction = "sales-transaction:read"
	GrantReadAccount          = "account:read"

	// Leitura em nível de campo de SalesTransaction.
	GrantReadTransactionAccount  = "sales-transaction:read:account_id"
	GrantReadTransactionSaleDate = "sales-transaction:read:sale_date"
	GrantReadTransactionAmount   = "sales-transaction:read:amount"
)

// SummaryReadGrants é o conjunto completo exigido para consultar o resumo
// mensal: objeto SalesTransaction, seus três campos e o objeto Account.
var SummaryReadGrants = []string{
	GrantReadSalesTransaction,
	GrantReadTransactionAccount,
	GrantReadTransactionSaleDate,
	GrantReadTransactionAmount,
	GrantReadAccount,
}
