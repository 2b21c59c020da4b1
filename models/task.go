package models

type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
)

// ValidStatus proverava da li je status jedna od dozvoljenih vrednosti.
func ValidStatus(s TaskStatus) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

type Task struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     string     `json:"due_date,omitempty"`
	Status      TaskStatus `json:"status"`
	IsCompleted bool       `json:"is_completed"`
	CreatedAt   string     `json:"created_at,omitempty"`
	UpdatedAt   string     `json:"updated_at,omitempty"`
}

// TaskDraft su polja koja klijent šalje pri kreiranju zadatka.
type TaskDraft struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     string     `json:"due_date,omitempty"`
	Status      TaskStatus `json:"status,omitempty"`
}

// TaskPatch su polja za parcijalnu izmenu; nil polja se ne šalju.
type TaskPatch struct {
	Title       *string     `json:"title,omitempty"`
	Description *string     `json:"description,omitempty"`
	DueDate     *string     `json:"due_date,omitempty"`
	Status      *TaskStatus `json:"status,omitempty"`
	IsCompleted *bool       `json:"is_completed,omitempty"`
}
