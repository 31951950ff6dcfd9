package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/encartes-api/internal/domain"
	"github.com/jhoicas/encartes-api/pkg/textnorm"
)

// Querier es lo común entre *pgxpool.Pool y pgx.Tx; los repos aceptan cualquiera de los dos.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// validID evita mandar a PostgreSQL un id que no es UUID (fallaría con 22P02 en vez de "no encontrado").
func validID(id string) bool {
	return uuid.Validate(id) == nil
}

// classify traduce errores de PostgreSQL a errores de dominio; el resto se envuelve con op.
func classify(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("%s: %w", op, errors.Join(domain.ErrDuplicate, err))
		case "22001", "54000": // string_data_right_truncation, program_limit_exceeded
			return domain.ErrPayloadTooLarge.WithCause(err)
		case "22P02", "22P05": // invalid_text_representation, untranslatable_character
			return domain.ErrInvalidJSON.WithCause(err)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// searchPattern arma el patrón ILIKE para búsquedas parciales, sin acentos.
func searchPattern(s string) string {
	s = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(strings.TrimSpace(textnorm.Fold(s)))
	return "%" + s + "%"
}

var foldFrom, foldTo = textnorm.Translation()

// folded quita los acentos de col en SQL, para compararla con searchPattern.
func folded(col string) string {
	return fmt.Sprintf("translate(%s, '%s', '%s')", col, foldFrom, foldTo)
}

// where acumula condiciones y argumentos posicionales para listados con filtros.
type where struct {
	conds []string
	args  []any
}

func (w *where) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, strings.ReplaceAll(cond, "?", fmt.Sprintf("$%d", len(w.args))))
}

func (w *where) addRaw(cond string) {
	w.conds = append(w.conds, cond)
}

func (w *where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// page devuelve los placeholders de LIMIT/OFFSET y agrega sus argumentos.
func (w *where) page(limit, offset int) (string, []any) {
	args := append(append([]any{}, w.args...), limit, offset)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(w.args)+1, len(w.args)+2), args
}
