package repository

import (
	"context"
	"time"

	"github.com/assistenzplus/backend/internal/domain"
)

func (r *Repository) GetUserByID(id int64) (*domain.User, error) {
	query := `
		SELECT username, password_hash, full_name, email, role,
			night_premium_enabled, sunday_premium_enabled, holiday_premium_enabled,
			is_active, created_at, version
		FROM users WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	user := &domain.User{
		ID: id,
	}

	dst := []any{
		&user.Username, &user.PasswordHash, &user.FullName, &user.Email, &user.Role,
		&user.NightPremiumEnabled, &user.SundayPremiumEnabled, &user.HolidayPremiumEnabled,
		&user.IsActive, &user.CreatedAt, &user.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return user, nil
}

func (r *Repository) GetUserByUsername(username string) (*domain.User, error) {
	query := `
		SELECT id, password_hash, full_name, email, role,
			night_premium_enabled, sunday_premium_enabled, holiday_premium_enabled,
			is_active, created_at, version
		FROM users WHERE username = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	user := &domain.User{
		Username: username,
	}

	dst := []any{
		&user.ID, &user.PasswordHash, &user.FullName, &user.Email, &user.Role,
		&user.NightPremiumEnabled, &user.SundayPremiumEnabled, &user.HolidayPremiumEnabled,
		&user.IsActive, &user.CreatedAt, &user.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, username).Scan(dst...); err != nil {
		return nil, err
	}

	return user, nil
}

func (r *Repository) GetAllUsers() ([]*domain.User, error) {
	query := `
		SELECT id, username, password_hash, full_name, email, role,
			night_premium_enabled, sunday_premium_enabled, holiday_premium_enabled,
			is_active, created_at, version
		FROM users
		ORDER BY full_name
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		user := &domain.User{}
		dst := []any{
			&user.ID, &user.Username, &user.PasswordHash, &user.FullName, &user.Email, &user.Role,
			&user.NightPremiumEnabled, &user.SundayPremiumEnabled, &user.HolidayPremiumEnabled,
			&user.IsActive, &user.CreatedAt, &user.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func (r *Repository) CreateUser(user *domain.User) error {
	query := `
		INSERT INTO users (
			username, password_hash, full_name, email, role,
			night_premium_enabled, sunday_premium_enabled, holiday_premium_enabled
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, is_active, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{
		user.Username, user.PasswordHash, user.FullName, user.Email, user.Role,
		user.NightPremiumEnabled, user.SundayPremiumEnabled, user.HolidayPremiumEnabled,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&user.ID, &user.IsActive, &user.CreatedAt, &user.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateUser(user *domain.User) error {
	query := `
		UPDATE users
		SET
			password_hash = $1,
			email = $2,
			role = $3,
			night_premium_enabled = $4,
			sunday_premium_enabled = $5,
			holiday_premium_enabled = $6,
			is_active = $7,
			version = version + 1
		WHERE id = $8 AND version = $9
		RETURNING username, full_name, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{
		user.PasswordHash, user.Email, user.Role,
		user.NightPremiumEnabled, user.SundayPremiumEnabled, user.HolidayPremiumEnabled,
		user.IsActive, user.ID, user.Version,
	}
	dst := []any{&user.Username, &user.FullName, &user.CreatedAt, &user.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

// DeleteUser removes an employee, but only when no shift records depend on
// it. The count is taken inside the same transaction as the delete, so a
// shift created between check and delete cannot slip through.
func (r *Repository) DeleteUser(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var shiftCount int
	query := `
		SELECT COUNT(*) FROM shifts WHERE employee_id = $1 OR backup_employee_id = $1
	`
	if err := tx.QueryRowContext(ctx, query, id).Scan(&shiftCount); err != nil {
		return err
	}
	if shiftCount > 0 {
		return ErrEmployeeHasShifts
	}

	query = `
		DELETE FROM users WHERE id = $1
	`
	if _, err := tx.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *Repository) CheckEmailIfExists(email string) (bool, error) {
	isExists := false

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)
	`
	if err := r.dbpool.QueryRowContext(ctx, query, email).Scan(&isExists); err != nil {
		return false, err
	}

	return isExists, nil
}
