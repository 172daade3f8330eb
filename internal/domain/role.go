package domain

// Roles de acesso à API. Roles controlam as rotas administrativas; as
// decisões de negócio (bypass, leitura do resumo) são sempre por grant.
const (
	RoleAdmin    = 1
	RoleManager  = 2
	RoleSalesRep = 3
)
