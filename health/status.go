package health

import (
	"regexp"
	"time"
)

// Status values.
const (
	StateHealthy   = "healthy"
	StateDegraded  = "degraded"
	StateUnhealthy = "unhealthy"
)

// redactions run in order. URLs go first since they contain paths.
var redactions = []struct {
	re   *regexp.Regexp
	with string
}{
	{regexp.MustCompile(`(https?|wss?|nats|tls)://[^\s]+`), "[URL]"},
	{regexp.MustCompile(`/[a-zA-Z0-9/_.-]+`), "[PATH]"},
	{regexp.MustCompile(`[A-Z]:\\[^:\s]+`), "[PATH]"},
	{regexp.MustCompile(`\b\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}\b`), "[IP]"},
	{regexp.MustCompile(`:\d{2,5}\b`), "[PORT]"},
	{regexp.MustCompile(`(?i)(password|token|key|secret|credential)[^a-zA-Z]*[:=][^,\s}]+`), "[REDACTED]"},
}

// Status is the health of one component, optionally with the statuses of
// the parts it is made of.
type Status struct {
	Component   string    `json:"component"`
	Healthy     bool      `json:"healthy"`
	Status      string    `json:"status"`
	Message     string    `json:"message"`
	Timestamp   time.Time `json:"timestamp"`
	SubStatuses []Status  `json:"sub_statuses,omitempty"`
	Ring        *RingInfo `json:"ring,omitempty"`
}

// RingInfo describes a ring's fill level at the time of a check.
type RingInfo struct {
	Size     int  `json:"size"`
	Capacity int  `json:"capacity"`
	Blocking bool `json:"blocking,omitempty"`
}

// IsHealthy returns true if the status is healthy
func (s Status) IsHealthy() bool {
	return s.Status == StateHealthy
}

// IsDegraded returns true if the status is degraded
func (s Status) IsDegraded() bool {
	return s.Status == StateDegraded
}

// IsUnhealthy returns true if the status is unhealthy
func (s Status) IsUnhealthy() bool {
	return s.Status == StateUnhealthy
}

// WithSubStatus adds a sub-status and returns a copy
func (s Status) WithSubStatus(subStatus Status) Status {
	newSubStatuses := make([]Status, len(s.SubStatuses), len(s.SubStatuses)+1)
	copy(newSubStatuses, s.SubStatuses)
	s.SubStatuses = append(newSubStatuses, subStatus)
	return s
}

// sanitizeErrorMessage strips URLs, paths, addresses, ports and credentials
// from msg before it is served on the health endpoint.
func sanitizeErrorMessage(msg string) string {
	for _, r := range redactions {
		msg = r.re.ReplaceAllString(msg, r.with)
	}
	return msg
}

// FromError reports component as healthy when err is nil and unhealthy
// with a sanitized message otherwise.
func FromError(component string, err error) Status {
	if err == nil {
		return NewHealthy(component, "ok")
	}
	return NewUnhealthy(component, sanitizeErrorMessage(err.Error()))
}

// FromRing reports a ring's fill level. A full ring whose writers block
// until it drains is degraded; a full evicting ring is working as intended.
func FromRing(name string, size, capacity int, blocking bool) Status {
	var s Status
	switch {
	case capacity < 1:
		s = NewUnhealthy(name, "ring has no capacity")
	case blocking && size >= capacity:
		s = NewDegraded(name, "ring full, writers blocked")
	default:
		s = NewHealthy(name, "ring accepting writes")
	}
	s.Ring = &RingInfo{Size: size, Capacity: capacity, Blocking: blocking}
	return s
}
