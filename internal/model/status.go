package model

// SessionStatus describes the lifecycle state of a crawl session.
type SessionStatus int

const (
	// StatusIdle means no session has been started yet, or the last
	// session was reset.
	StatusIdle SessionStatus = iota

	// StatusRunning means workers are actively processing the frontier.
	StatusRunning

	// StatusStopped means the session ended, either by an explicit stop
	// or because the frontier drained and all workers exited.
	StatusStopped
)

// String returns the human-readable name of the status.
func (s SessionStatus) String() string {
	switch s {
	case StatusIdle:
		return "Idle"
	case StatusRunning:
		return "Running"
	case StatusStopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// Stats is a point-in-time snapshot of a crawl session, pushed to
// observers on a fixed interval while the session runs.
type Stats struct {
	// Queued is the number of URLs currently waiting in the frontier.
	// This can transiently over-count: the same URL may sit in the
	// frontier more than once before a worker dedups it at pop time.
	Queued int

	// Visited is the number of unique URLs in the visited set.
	Visited int

	// Status is the session lifecycle state.
	Status SessionStatus
}
