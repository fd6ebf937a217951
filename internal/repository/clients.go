package repository

import (
	"context"
	"time"

	"github.com/assistenzplus/backend/internal/domain"
)

func (r *Repository) CreateClient(client *domain.Client) error {
	query := `
		INSERT INTO clients (name, email, sheet_file_name, address)
		VALUES ($1, $2, $3, $4)
		RETURNING id, is_active, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{client.Name, client.Email, client.SheetFileName, client.Address}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&client.ID, &client.IsActive, &client.CreatedAt, &client.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetClientByID(id int64) (*domain.Client, error) {
	query := `
		SELECT name, email, sheet_file_name, address, is_active, created_at, version
		FROM clients WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	client := &domain.Client{
		ID: id,
	}

	dst := []any{&client.Name, &client.Email, &client.SheetFileName, &client.Address, &client.IsActive, &client.CreatedAt, &client.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return client, nil
}

func (r *Repository) GetClientBySheetFileName(sheetFileName string) (*domain.Client, error) {
	query := `
		SELECT id, name, email, address, is_active, created_at, version
		FROM clients WHERE sheet_file_name = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	client := &domain.Client{
		SheetFileName: sheetFileName,
	}

	dst := []any{&client.ID, &client.Name, &client.Email, &client.Address, &client.IsActive, &client.CreatedAt, &client.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, sheetFileName).Scan(dst...); err != nil {
		return nil, err
	}

	return client, nil
}

func (r *Repository) GetAllClients() ([]*domain.Client, error) {
	query := `
		SELECT id, name, email, sheet_file_name, address, is_active, created_at, version
		FROM clients
		ORDER BY name
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clients := make([]*domain.Client, 0)
	for rows.Next() {
		client := &domain.Client{}
		dst := []any{&client.ID, &client.Name, &client.Email, &client.SheetFileName, &client.Address, &client.IsActive, &client.CreatedAt, &client.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return clients, nil
}

func (r *Repository) UpdateClient(client *domain.Client) error {
	query := `
		UPDATE clients
		SET
			name = $1,
			email = $2,
			address = $3,
			is_active = $4,
			version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING sheet_file_name, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{client.Name, client.Email, client.Address, client.IsActive, client.ID, client.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&client.SheetFileName, &client.CreatedAt, &client.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteClient(id int64) error {
	query := `
		DELETE FROM clients WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
