package models

import "time"

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "Pending"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusCompleted  TaskStatus = "Completed"
	TaskStatusOverdue    TaskStatus = "Overdue"
	TaskStatusCancelled  TaskStatus = "Cancelled"
)

type TaskPriority string

const (
	TaskPriorityHigh   TaskPriority = "High"
	TaskPriorityMedium TaskPriority = "Medium"
	TaskPriorityLow    TaskPriority = "Low"
)

type TaskType string

const (
	TaskTypeCandidate      TaskType = "Candidate Task"
	TaskTypeAgent          TaskType = "Agent Task"
	TaskTypeAdministrative TaskType = "Administrative Task"
	TaskTypeSystem         TaskType = "System Task"
)

type ClientType string

const (
	ClientTypeCandidate ClientType = "candidate"
	ClientTypeAgent     ClientType = "agent"
	ClientTypeNone      ClientType = "none"
)

type RecurringInterval string

const (
	RecurringDaily     RecurringInterval = "daily"
	RecurringWeekly    RecurringInterval = "weekly"
	RecurringMonthly   RecurringInterval = "monthly"
	RecurringQuarterly RecurringInterval = "quarterly"
	RecurringYearly    RecurringInterval = "yearly"
)

// TaskCategories is the closed set of business categories a task may carry
var TaskCategories = []string{
	"Document Collection",
	"Job Placement",
	"Communication",
	"Partnership Management",
	"Business Development",
	"Visa Processing",
	"Financial",
	"Administrative",
	"Training",
	"Assessment",
}

// Attachment is a file reference stored inline on a task
type Attachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type"`
}

// Task is a unit of work tracked by staff. Tasks are removed permanently on
// delete, so there is no soft-delete column. ClientName and ClientType are a
// snapshot of the referenced user at the time of the last task write; they are
// not kept in sync afterwards.
type Task struct {
	ID          uint64       `gorm:"primarykey" json:"id"`
	Title       string       `gorm:"type:varchar(255);not null" json:"title"`
	Description string       `gorm:"type:text;not null" json:"description"`
	Category    string       `gorm:"type:varchar(50);not null;index" json:"category"`
	Type        TaskType     `gorm:"type:varchar(30);not null" json:"type"`
	Priority    TaskPriority `gorm:"type:varchar(10);not null;default:'Medium'" json:"priority"`
	Status      TaskStatus   `gorm:"type:varchar(20);not null;default:'Pending';index:idx_tasks_status_due" json:"status"`
	AssignedTo  string       `gorm:"type:varchar(255);not null;index" json:"assigned_to"`

	ClientID   *uint64    `gorm:"index" json:"client_id"`
	ClientName string     `gorm:"type:varchar(255)" json:"client_name"`
	ClientType ClientType `gorm:"type:varchar(20);default:'none'" json:"client_type"`

	DueDate       time.Time  `gorm:"not null;index:idx_tasks_status_due" json:"due_date"`
	CompletedDate *time.Time `json:"completed_date"`

	Notes             string             `gorm:"type:text" json:"notes"`
	Tags              []string           `gorm:"serializer:json" json:"tags"`
	Recurring         bool               `gorm:"not null;default:false" json:"recurring"`
	RecurringInterval *RecurringInterval `gorm:"type:varchar(20)" json:"recurring_interval"`
	ReminderDate      *time.Time         `json:"reminder_date"`
	EstimatedHours    *float64           `json:"estimated_hours"`
	ActualHours       *float64           `json:"actual_hours"`
	Attachments       []Attachment       `gorm:"serializer:json" json:"attachments"`

	CreatedAt time.Time `json:"created_date"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Client *User `gorm:"foreignKey:ClientID" json:"client,omitempty"`
}

// IsOverdue reports whether the task's due date has passed while it is still
// open. Mirrors the stored Overdue status flip performed before reads.
func (t *Task) IsOverdue(now time.Time) bool {
	return t.Status != TaskStatusCompleted && t.DueDate.Before(now)
}
