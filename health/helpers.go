package health

import (
	"fmt"
	"slices"
	"time"
)

// NewHealthy creates a new healthy status
func NewHealthy(component, message string) Status {
	return newStatus(component, StateHealthy, message)
}

// NewUnhealthy creates a new unhealthy status
func NewUnhealthy(component, message string) Status {
	return newStatus(component, StateUnhealthy, message)
}

// NewDegraded creates a new degraded status
func NewDegraded(component, message string) Status {
	return newStatus(component, StateDegraded, message)
}

func newStatus(component, state, message string) Status {
	return Status{
		Component: component,
		Healthy:   state == StateHealthy,
		Status:    state,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// severity orders states from best to worst.
var severity = map[string]int{StateHealthy: 0, StateDegraded: 1, StateUnhealthy: 2}

// Aggregate reports the worst state among subStatuses and how many
// components share it. With no sub-statuses the result is healthy.
func Aggregate(component string, subStatuses []Status) Status {
	worst, count := StateHealthy, 0
	for _, sub := range subStatuses {
		switch {
		case severity[sub.Status] > severity[worst]:
			worst, count = sub.Status, 1
		case sub.Status == worst:
			count++
		}
	}

	status := newStatus(component, worst, fmt.Sprintf("%d of %d components %s", count, len(subStatuses), worst))
	if len(subStatuses) > 0 {
		status.SubStatuses = slices.Clone(subStatuses)
	}
	return status
}
