package domain

import (
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the generation state reported by the upstream API.
type TaskStatus string

// Conventional task status values. The set is not enforced: callbacks may
// report any status string and it is stored as given.
const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
)

// IsKnown reports whether s is one of the conventional status values.
func (s TaskStatus) IsKnown() bool {
	switch s {
	case TaskStatusPending, TaskStatusProcessing, TaskStatusCompleted, TaskStatusFailed:
		return true
	default:
		return false
	}
}

// Task is one image-generation job tracked by the receiver.
//
// Task is a value: updates never mutate an existing Task, they return a new
// one which the store swaps in for the old entry.
type Task struct {
	TaskID    string
	Status    TaskStatus
	ResultURL string // empty means no result yet
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TaskParams holds the optional fields a Task can be constructed from.
// Zero values select the defaults documented on NewTask.
type TaskParams struct {
	TaskID    string
	Status    TaskStatus
	ResultURL string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewTask builds a Task from params. A missing TaskID is replaced with a
// random UUID, a missing status with pending and missing timestamps with now.
// Construction never fails.
func NewTask(params TaskParams, now time.Time) Task {
	now = now.UTC()
	task := Task{
		TaskID:    params.TaskID,
		Status:    params.Status,
		ResultURL: params.ResultURL,
		CreatedAt: params.CreatedAt,
		UpdatedAt: params.UpdatedAt,
	}

	if task.TaskID == "" {
		task.TaskID = NewTaskID()
	}
	if task.Status == "" {
		task.Status = TaskStatusPending
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	if task.UpdatedAt.IsZero() {
		task.UpdatedAt = now
	}

	return task
}

// NewTaskID returns a fresh random task identifier.
func NewTaskID() string {
	return uuid.NewString()
}

// WithStatus returns a copy of t with the status replaced and UpdatedAt set
// to now. The result URL is only replaced when resultURL is non-empty, so an
// update without a result keeps whatever was recorded before.
func (t Task) WithStatus(status TaskStatus, resultURL string, now time.Time) Task {
	t.Status = status
	t.UpdatedAt = now.UTC()
	if resultURL != "" {
		t.ResultURL = resultURL
	}
	return t
}

// HasResult reports whether a result location has been recorded.
func (t Task) HasResult() bool {
	return t.ResultURL != ""
}
