package budget

import (
	"fmt"
	"math"
	"sort"
)

type AlertSeverity string

const (
	SeverityDanger  AlertSeverity = "danger"
	SeverityWarning AlertSeverity = "warning"
)

// UnknownCategoryName is substituted when a budget references a category
// that no longer exists.
const UnknownCategoryName = "unknown category"

// Alert is a user-facing budget warning derived from a usage view.
type Alert struct {
	BudgetID     string        `json:"id"`
	CategoryID   string        `json:"categoryId"`
	CategoryName string        `json:"categoryName"`
	Severity     AlertSeverity `json:"severity"`
	Message      string        `json:"message"`
	Percentage   int           `json:"percentage"`
}

// FormatAlerts maps each view to at most one alert: danger when over budget,
// warning when near the limit, nothing otherwise. Alerts are sorted
// descending by percentage; ties keep their original relative order.
func FormatAlerts(views []UsageView) []Alert {
	alerts := make([]Alert, 0, len(views))

	for _, v := range views {
		name := UnknownCategoryName
		if v.Category != nil {
			name = v.Category.Name
		}
		percentage := int(math.Round(v.Percentage))

		switch {
		case v.IsOverBudget:
			overage := v.UsedAmount.Sub(v.Budget.Amount).Round(0)
			alerts = append(alerts, Alert{
				BudgetID:     v.Budget.ID,
				CategoryID:   v.Budget.Category,
				CategoryName: name,
				Severity:     SeverityDanger,
				Message:      fmt.Sprintf("%s is over budget by %s", name, overage),
				Percentage:   percentage,
			})
		case v.IsNearLimit:
			alerts = append(alerts, Alert{
				BudgetID:     v.Budget.ID,
				CategoryID:   v.Budget.Category,
				CategoryName: name,
				Severity:     SeverityWarning,
				Message:      fmt.Sprintf("%s budget is nearly used up: %d%% spent", name, percentage),
				Percentage:   percentage,
			})
		}
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Percentage > alerts[j].Percentage
	})
	return alerts
}
