package app

import (
	"github.com/fintrack/fintrack/internal/event_bus"
	"github.com/fintrack/fintrack/pkg/budget"
	log "github.com/sirupsen/logrus"
)

// registerAlertLogger recomputes current-period budget alerts after every
// mutation that can change consumption and logs them. Kept synchronous so a
// write request is not acknowledged before its alert is visible in the log.
func registerAlertLogger(bus *event_bus.EventBus, usage budget.UsageService) {
	handler := func(e event_bus.Event) error {
		alerts, err := usage.Alerts(e.Context(), 0, 0)
		if err != nil {
			return err
		}
		for _, alert := range alerts {
			switch alert.Severity {
			case budget.SeverityDanger:
				log.Warnf("budget alert: %s", alert.Message)
			default:
				log.Infof("budget alert: %s", alert.Message)
			}
		}
		return nil
	}

	for _, eventType := range []event_bus.EventType{
		event_bus.TransactionCreated,
		event_bus.TransactionUpdated,
		event_bus.TransactionDeleted,
		event_bus.BudgetSet,
		event_bus.BudgetUpdated,
		event_bus.DataImported,
	} {
		bus.Subscribe(eventType, handler)
	}
}
