package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/encartes-api/internal/domain/entity"
	"github.com/jhoicas/encartes-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, email, password_hash, name, email_verified, role, phone, cpf_cnpj, establishment, avatar_url,
	email_verification_token, email_verification_expires, password_reset_token, password_reset_expires, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario. Email duplicado devuelve domain.ErrDuplicate.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.Name, user.EmailVerified, user.Role, user.Phone,
		user.CPFCNPJ, user.Establishment, user.AvatarURL,
		user.EmailVerificationToken, user.EmailVerificationExp, user.PasswordResetToken, user.PasswordResetExp,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return classify("insert user", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.findOne(ctx, "get user", `id = $1`, id)
}

// GetByEmail obtiene un usuario por email (sin distinguir mayúsculas).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, "get user by email", `lower(email) = lower($1)`, email)
}

func (r *UserRepo) GetByVerificationToken(ctx context.Context, token string) (*entity.User, error) {
	return r.findOne(ctx, "get user by verification token", `email_verification_token = $1`, token)
}

func (r *UserRepo) GetByResetToken(ctx context.Context, token string) (*entity.User, error) {
	return r.findOne(ctx, "get user by reset token", `password_reset_token = $1`, token)
}

func (r *UserRepo) findOne(ctx context.Context, op, cond string, arg any) (*entity.User, error) {
	row := r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE `+cond, arg)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// Update reescribe todos los campos mutables, incluidos los tokens.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users SET email = $2, password_hash = $3, name = $4, email_verified = $5, role = $6, phone = $7,
			cpf_cnpj = $8, establishment = $9, avatar_url = $10,
			email_verification_token = $11, email_verification_expires = $12,
			password_reset_token = $13, password_reset_expires = $14, updated_at = $15
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.Name, user.EmailVerified, user.Role, user.Phone,
		user.CPFCNPJ, user.Establishment, user.AvatarURL,
		user.EmailVerificationToken, user.EmailVerificationExp, user.PasswordResetToken, user.PasswordResetExp,
		user.UpdatedAt,
	)
	if err != nil {
		return classify("update user", err)
	}
	return nil
}

// List lista usuarios con búsqueda por nombre o email y filtro de rol.
func (r *UserRepo) List(ctx context.Context, f repository.UserFilter) ([]*entity.User, int, error) {
	var w where
	if f.Search != "" {
		w.add("("+folded("name")+" ILIKE ? OR email ILIKE ?)", searchPattern(f.Search))
	}
	if f.Role != "" {
		w.add("role = ?", f.Role)
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM users`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	limit, args := w.page(f.Limit, f.Offset())
	rows, err := r.q.Query(ctx, `SELECT `+userColumns+` FROM users`+w.String()+` ORDER BY created_at DESC`+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, total, rows.Err()
}

// Delete elimina un usuario por ID.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.EmailVerified, &u.Role, &u.Phone, &u.CPFCNPJ,
		&u.Establishment, &u.AvatarURL,
		&u.EmailVerificationToken, &u.EmailVerificationExp, &u.PasswordResetToken, &u.PasswordResetExp,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
