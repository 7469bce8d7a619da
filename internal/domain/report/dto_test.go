package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMinutesToHours(t *testing.T) {
	assert.Equal(t, "0.00", MinutesToHours(0))
	assert.Equal(t, "8.00", MinutesToHours(480))
	assert.Equal(t, "1.50", MinutesToHours(90))
	assert.Equal(t, "0.33", MinutesToHours(20))
}

func TestPeriodRequest_Validate(t *testing.T) {
	ok := PeriodRequest{Month: 3, Year: time.Now().Year()}
	assert.NoError(t, ok.Validate())

	bad := PeriodRequest{Month: 13, Year: 1999}
	err := bad.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "month")
	assert.Contains(t, err.Error(), "year")
}
