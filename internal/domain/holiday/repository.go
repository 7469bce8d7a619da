package holiday

import (
	"context"
	"time"
)

type HolidayRepository interface {
	Create(ctx context.Context, holiday PublicHoliday) (PublicHoliday, error)
	GetByID(ctx context.Context, id string) (PublicHoliday, error)
	// GetByDate returns nil, nil when the date is not a holiday.
	GetByDate(ctx context.Context, date time.Time) (*PublicHoliday, error)
	// ListBetween lists holidays in [from, to] ordered by date.
	ListBetween(ctx context.Context, from, to time.Time) ([]PublicHoliday, error)
	List(ctx context.Context) ([]PublicHoliday, error)
	Update(ctx context.Context, holiday PublicHoliday) error
	Delete(ctx context.Context, id string) error
}
