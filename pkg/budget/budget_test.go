package budget

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func monthPtr(m int) *int {
	return &m
}

func TestBudget_PeriodRange(t *testing.T) {
	tests := []struct {
		name     string
		budget   Budget
		expStart time.Time
		expEnd   time.Time
	}{
		{
			name:     "January 2024",
			budget:   Budget{Period: PeriodMonthly, Year: 2024, Month: monthPtr(1)},
			expStart: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			expEnd:   time.Date(2024, time.January, 31, 23, 59, 59, 999999999, time.UTC),
		},
		{
			name:     "February in a leap year",
			budget:   Budget{Period: PeriodMonthly, Year: 2024, Month: monthPtr(2)},
			expStart: time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
			expEnd:   time.Date(2024, time.February, 29, 23, 59, 59, 999999999, time.UTC),
		},
		{
			name:     "February in a common year",
			budget:   Budget{Period: PeriodMonthly, Year: 2023, Month: monthPtr(2)},
			expStart: time.Date(2023, time.February, 1, 0, 0, 0, 0, time.UTC),
			expEnd:   time.Date(2023, time.February, 28, 23, 59, 59, 999999999, time.UTC),
		},
		{
			name:     "December rolls into next year",
			budget:   Budget{Period: PeriodMonthly, Year: 2024, Month: monthPtr(12)},
			expStart: time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC),
			expEnd:   time.Date(2024, time.December, 31, 23, 59, 59, 999999999, time.UTC),
		},
		{
			name:     "yearly budget spans the calendar year",
			budget:   Budget{Period: PeriodYearly, Year: 2024},
			expStart: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			expEnd:   time.Date(2024, time.December, 31, 23, 59, 59, 999999999, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := tt.budget.PeriodRange()

			assert.Equal(t, tt.expStart, start)
			assert.Equal(t, tt.expEnd, end)
		})
	}
}

func TestBudget_InPeriod(t *testing.T) {
	monthly := Budget{Period: PeriodMonthly, Year: 2024, Month: monthPtr(3)}
	yearly := Budget{Period: PeriodYearly, Year: 2024}

	assert.True(t, monthly.InPeriod(2024, 3))
	assert.False(t, monthly.InPeriod(2024, 4))
	assert.False(t, monthly.InPeriod(2023, 3))

	// A yearly budget matches every month of its year.
	assert.True(t, yearly.InPeriod(2024, 3))
	assert.True(t, yearly.InPeriod(2024, 11))
	assert.False(t, yearly.InPeriod(2025, 3))
}

func TestBudget_SameTuple(t *testing.T) {
	a := Budget{Category: "expense-food", Period: PeriodMonthly, Year: 2024, Month: monthPtr(3)}

	assert.True(t, a.sameTuple(Budget{Category: "expense-food", Period: PeriodMonthly, Year: 2024, Month: monthPtr(3)}))
	assert.False(t, a.sameTuple(Budget{Category: "expense-food", Period: PeriodMonthly, Year: 2024, Month: monthPtr(4)}))
	assert.False(t, a.sameTuple(Budget{Category: "expense-rent", Period: PeriodMonthly, Year: 2024, Month: monthPtr(3)}))

	// Yearly tuples ignore the month entirely.
	y := Budget{Category: "expense-food", Period: PeriodYearly, Year: 2024}
	assert.True(t, y.sameTuple(Budget{Category: "expense-food", Period: PeriodYearly, Year: 2024, Month: monthPtr(7)}))
}
