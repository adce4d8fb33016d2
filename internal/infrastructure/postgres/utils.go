package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/stockflow/internal/domain"
)

// Querier operaciones comunes a *pgxpool.Pool y pgx.Tx; los repositorios aceptan cualquiera.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// isUniqueViolation verifica si un error es una violación de constraint único.
// Solo se reconocen *pgconn.PgError; errores de red o del pool se propagan sin reclasificar.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// conflictOr traduce una violación de unicidad a domain.ErrConflict; el resto se envuelve con op.
func conflictOr(err error, op, detail string) error {
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", domain.ErrConflict, detail)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// staleOr resuelve un UPDATE con precondición que no afectó filas: el documento no existe
// o su estado/versión cambió desde que se leyó.
func staleOr(ctx context.Context, q Querier, table, doc, id string) error {
	var status string
	var version int
	err := q.QueryRow(ctx, `SELECT status, version FROM `+table+` WHERE id = $1`, id).Scan(&status, &version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: %s %s", domain.ErrNotFound, doc, id)
		}
		return fmt.Errorf("check %s: %w", table, err)
	}
	return fmt.Errorf("%w: %s %s cambió (estado %s, versión %d)", domain.ErrInvalidStateTransition, doc, id, status, version)
}
