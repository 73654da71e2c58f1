package models

import "time"

// TaskStatus is a kanban column.
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusDone       TaskStatus = "done"
	TaskStatusHistory    TaskStatus = "history"
)

// BoardColumns lists the columns in display order.
var BoardColumns = []TaskStatus{TaskStatusTodo, TaskStatusInProgress, TaskStatusDone, TaskStatusHistory}

// IsBoardColumn reports whether id names a column rather than a task.
func IsBoardColumn(id string) bool {
	for _, col := range BoardColumns {
		if string(col) == id {
			return true
		}
	}
	return false
}

// TaskPriority is the urgency of a task.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// TaskComment is a note attached to a task.
type TaskComment struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	AuthorID  string    `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Task is a card on the task board. Tasks in history are archived copies and never change.
type Task struct {
	ID             string        `json:"id"`
	Title          string        `json:"title"`
	Description    string        `json:"description"`
	Status         TaskStatus    `json:"status"`
	Priority       TaskPriority  `json:"priority"`
	AssigneeID     string        `json:"assignee_id"`
	DueDate        string        `json:"due_date"` // YYYY-MM-DD
	EstimatedHours *float64      `json:"estimated_hours,omitempty"`
	ActualHours    *float64      `json:"actual_hours,omitempty"`
	Tags           []string      `json:"tags"`
	Comments       []TaskComment `json:"comments"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// IsArchived reports whether the task sits in the history column.
func (t Task) IsArchived() bool {
	return t.Status == TaskStatusHistory
}

// Clone returns a deep copy of the task.
func (t Task) Clone() Task {
	c := t
	if t.Tags != nil {
		c.Tags = append([]string(nil), t.Tags...)
	}
	if t.Comments != nil {
		c.Comments = append([]TaskComment(nil), t.Comments...)
	}
	if t.EstimatedHours != nil {
		v := *t.EstimatedHours
		c.EstimatedHours = &v
	}
	if t.ActualHours != nil {
		v := *t.ActualHours
		c.ActualHours = &v
	}
	return c
}

// HistoryGroup is one calendar day of archived tasks.
type HistoryGroup struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Tasks []Task `json:"tasks"`
}

// TaskBoard is the kanban view of all tasks.
type TaskBoard struct {
	Todo       []Task         `json:"todo"`
	InProgress []Task         `json:"in_progress"`
	Done       []Task         `json:"done"`
	History    []HistoryGroup `json:"history"`
}
