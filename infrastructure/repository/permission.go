package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/sales-tracker-api/infrastructure/database/postgres"
)

// PermissionRepository consulta a filiação de usuários a grants nomeados.
// É o colaborador de metadados de permissão: o guard usa HasGrant para o
// bypass e o gateway usa MissingGrants para as checagens de leitura em
// nível de objeto e de campo.
type PermissionRepository interface {
	HasGrant(userID int, grant string) (bool, error)
	// MissingGrants devolve, em uma única query, quais dos grants pedidos o
	// usuário NÃO possui. Lista vazia significa acesso completo.
	MissingGrants(userID int, grants []string) ([]string, error)
}

type permissionRepository struct {
	conn *postgres.Connection
}

func NewPermissionRepository(conn *postgres.Connection) PermissionRepository {
	return &permissionRepository{
		conn: conn,
	}
}

func (r *permissionRepository) HasGrant(userID int, grant string) (bool, error) {
	query, args, err := squirrel.
		Select("COUNT(1)").
		From("permission_set_users psu").
		Join("permission_set_grants psg ON psg.permission_set_id = psu.permission_set_id").
		Where(squirrel.Eq{"psu.user_id": userID, "psg.grant_name": grant}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var count int
	if err := r.conn.QueryRow(query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("erro ao executar a query: %w", err)
	}

	return count > 0, nil
}

func (r *permissionRepository) MissingGrants(userID int, grants []string) ([]string, error) {
	if len(grants) == 0 {
		return nil, nil
	}

	query, args, err := squirrel.
		Select("DISTINCT psg.grant_name").
		From("permission_set_users psu").
		Join("permission_set_grants psg ON psg.permission_set_id = psu.permission_set_id").
		Where(squirrel.Eq{"psu.user_id": userID, "psg.grant_name": grants}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return grants, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	held := make(map[string]struct{}, len(grants))
	for rows.Next() {
		var grant string
		if err := rows.Scan(&grant); err != nil {
			return nil, fmt.Errorf("erro ao escanear grant: %w", err)
		}
		held[grant] = struct{}{}
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	missing := make([]string, 0)
	for _, grant := range grants {
		if _, ok := held[grant]; !ok {
			missing = append(missing, grant)
		}
	}

	return missing, nil
}
