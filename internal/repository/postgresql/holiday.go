package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Syntax-Move/attendance-system-backend/internal/domain/holiday"
	"github.com/Syntax-Move/attendance-system-backend/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

const holidayColumns = `id, date, name, description, created_at, updated_at`

func scanHoliday(row pgx.Row) (holiday.PublicHoliday, error) {
	var h holiday.PublicHoliday
	err := row.Scan(&h.ID, &h.Date, &h.Name, &h.Description, &h.CreatedAt, &h.UpdatedAt)
	return h, err
}

// Create implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Create(ctx context.Context, h holiday.PublicHoliday) (holiday.PublicHoliday, error) {
	q := GetQuerier(ctx, r.db)

	err := q.QueryRow(ctx, `
		INSERT INTO public_holidays (date, name, description)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`,
		h.Date, h.Name, h.Description,
	).Scan(&h.ID, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return holiday.PublicHoliday{}, holiday.ErrHolidayExists
		}
		return holiday.PublicHoliday{}, fmt.Errorf("failed to create public holiday: %w", err)
	}
	return h, nil
}

// GetByID implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) GetByID(ctx context.Context, id string) (holiday.PublicHoliday, error) {
	q := GetQuerier(ctx, r.db)

	h, err := scanHoliday(q.QueryRow(ctx, `SELECT `+holidayColumns+` FROM public_holidays WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return holiday.PublicHoliday{}, holiday.ErrHolidayNotFound
		}
		return holiday.PublicHoliday{}, fmt.Errorf("failed to get public holiday: %w", err)
	}
	return h, nil
}

// GetByDate implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) GetByDate(ctx context.Context, date time.Time) (*holiday.PublicHoliday, error) {
	q := GetQuerier(ctx, r.db)

	h, err := scanHoliday(q.QueryRow(ctx, `SELECT `+holidayColumns+` FROM public_holidays WHERE date = $1`, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get public holiday by date: %w", err)
	}
	return &h, nil
}

// ListBetween implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) ListBetween(ctx context.Context, from, to time.Time) ([]holiday.PublicHoliday, error) {
	return r.list(ctx, `SELECT `+holidayColumns+` FROM public_holidays WHERE date BETWEEN $1 AND $2 ORDER BY date`, from, to)
}

// List implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) List(ctx context.Context) ([]holiday.PublicHoliday, error) {
	return r.list(ctx, `SELECT `+holidayColumns+` FROM public_holidays ORDER BY date`)
}

func (r *holidayRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]holiday.PublicHoliday, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list public holidays: %w", err)
	}
	defer rows.Close()

	var holidays []holiday.PublicHoliday
	for rows.Next() {
		h, err := scanHoliday(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan public holiday: %w", err)
		}
		holidays = append(holidays, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate public holidays: %w", err)
	}
	return holidays, nil
}

// Update implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Update(ctx context.Context, h holiday.PublicHoliday) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE public_holidays
		SET name = $1, description = $2, updated_at = NOW()
		WHERE id = $3`, h.Name, h.Description, h.ID)
	if err != nil {
		return fmt.Errorf("failed to update public holiday: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return holiday.ErrHolidayNotFound
	}
	return nil
}

// Delete implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM public_holidays WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete public holiday: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return holiday.ErrHolidayNotFound
	}
	return nil
}
