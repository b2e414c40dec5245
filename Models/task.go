package Models

import "time"

// TaskStatus is the progress a staff member records against a scheduled task.
type TaskStatus string

const (
	TaskYetToStart TaskStatus = "yet to start"
	TaskStarted    TaskStatus = "started"
	TaskInProgress TaskStatus = "in progress"
	// TaskPending means paused or awaiting input, not queued.
	TaskPending   TaskStatus = "pending"
	TaskCompleted TaskStatus = "completed"
)

// TaskStatuses lists every status in display order.
var TaskStatuses = []TaskStatus{TaskYetToStart, TaskStarted, TaskInProgress, TaskPending, TaskCompleted}

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskYetToStart, TaskStarted, TaskInProgress, TaskPending, TaskCompleted:
		return true
	default:
		return false
	}
}

// TaskTiming classifies when a task was completed against its scheduled time.
type TaskTiming string

const (
	TimingEarly  TaskTiming = "Early"
	TimingOnTime TaskTiming = "On Time"
	TimingLate   TaskTiming = "Late"
)

// Task is one unit of scheduled work for a (staff, client, date, time) tuple.
// CompletedAt and TimingResult are stamped together when the task is completed.
type Task struct {
	ID           string     `json:"id"`
	StaffID      string     `json:"staff_id"`
	ClientID     string     `json:"client_id"`
	Date         string     `json:"date"` // YYYY-MM-DD
	Time         string     `json:"time"` // HH:MM
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Status       TaskStatus `json:"status"`
	Comments     string     `json:"comments,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	TimingResult TaskTiming `json:"timing_result,omitempty"`
	Version      int64      `json:"version"`
}

// IsCompleted reports whether the task currently sits in the completed status.
func (t Task) IsCompleted() bool {
	return t.Status == TaskCompleted
}

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)
