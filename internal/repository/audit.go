package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/assistenzplus/backend/internal/domain"
)

func (r *Repository) CreateAuditEntry(entry *domain.AuditEntry) error {
	meta, err := json.Marshal(entry.Meta)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO audit_entries (actor_id, action, entity, entity_id, meta)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, occurred_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{entry.ActorID, entry.Action, entry.Entity, entry.EntityID, meta}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&entry.ID, &entry.OccurredAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAuditEntries(limit int) ([]*domain.AuditEntry, error) {
	query := `
		SELECT id, actor_id, action, entity, entity_id, meta, occurred_at
		FROM audit_entries
		ORDER BY occurred_at DESC
		LIMIT $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*domain.AuditEntry, 0)
	for rows.Next() {
		entry := &domain.AuditEntry{}
		var meta []byte
		if err := rows.Scan(&entry.ID, &entry.ActorID, &entry.Action, &entry.Entity, &entry.EntityID, &meta, &entry.OccurredAt); err != nil {
			return nil, err
		}
		if len(meta) > 0 {
			if err := json.Unmarshal(meta, &entry.Meta); err != nil {
				return nil, err
			}
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
