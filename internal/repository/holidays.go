package repository

import (
	"context"
	"time"

	"github.com/assistenzplus/backend/internal/domain"
)

func (r *Repository) GetHolidaysForYear(year int) ([]*domain.Holiday, error) {
	query := `
		SELECT id, holiday_date, name, region
		FROM holidays
		WHERE EXTRACT(YEAR FROM holiday_date) = $1
		ORDER BY holiday_date
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	holidays := make([]*domain.Holiday, 0)
	for rows.Next() {
		holiday := &domain.Holiday{}
		if err := rows.Scan(&holiday.ID, &holiday.Date, &holiday.Name, &holiday.Region); err != nil {
			return nil, err
		}
		holidays = append(holidays, holiday)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return holidays, nil
}

func (r *Repository) CreateHoliday(holiday *domain.Holiday) error {
	query := `
		INSERT INTO holidays (holiday_date, name, region)
		VALUES ($1, $2, $3)
		ON CONFLICT (holiday_date) DO UPDATE SET name = EXCLUDED.name, region = EXCLUDED.region
		RETURNING id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, holiday.Date, holiday.Name, holiday.Region).Scan(&holiday.ID); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteHoliday(date time.Time) error {
	query := `
		DELETE FROM holidays WHERE holiday_date = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, date); err != nil {
		return err
	}

	return nil
}
