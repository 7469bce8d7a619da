package holiday

import "time"

// PublicHoliday is an organization-wide non-working date.
type PublicHoliday struct {
	ID          string
	Date        time.Time
	Name        string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
