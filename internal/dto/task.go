package dto

import (
	"time"

	"github.com/globalreach/crm-api/internal/models"
)

// ClientSummaryDTO is the expanded form of a task's client reference
type ClientSummaryDTO struct {
	ID       uint64          `json:"id"`
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	UserType models.UserType `json:"user_type"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID                uint64                    `json:"id"`
	Title             string                    `json:"title"`
	Description       string                    `json:"description"`
	Category          string                    `json:"category"`
	Type              models.TaskType           `json:"type"`
	Priority          models.TaskPriority       `json:"priority"`
	Status            models.TaskStatus         `json:"status"`
	AssignedTo        string                    `json:"assigned_to"`
	ClientID          *uint64                   `json:"client_id"`
	ClientName        string                    `json:"client_name"`
	ClientType        models.ClientType         `json:"client_type"`
	DueDate           time.Time                 `json:"due_date"`
	CreatedDate       time.Time                 `json:"created_date"`
	CompletedDate     *time.Time                `json:"completed_date"`
	Notes             string                    `json:"notes"`
	Tags              []string                  `json:"tags"`
	Recurring         bool                      `json:"recurring"`
	RecurringInterval *models.RecurringInterval `json:"recurring_interval"`
	ReminderDate      *time.Time                `json:"reminder_date"`
	EstimatedHours    *float64                  `json:"estimated_hours"`
	ActualHours       *float64                  `json:"actual_hours"`
	Attachments       []models.Attachment       `json:"attachments"`
	UpdatedAt         time.Time                 `json:"updated_at"`
	Client            *ClientSummaryDTO         `json:"client,omitempty"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:                task.ID,
		Title:             task.Title,
		Description:       task.Description,
		Category:          task.Category,
		Type:              task.Type,
		Priority:          task.Priority,
		Status:            task.Status,
		AssignedTo:        task.AssignedTo,
		ClientID:          task.ClientID,
		ClientName:        task.ClientName,
		ClientType:        task.ClientType,
		DueDate:           task.DueDate,
		CreatedDate:       task.CreatedAt,
		CompletedDate:     task.CompletedDate,
		Notes:             task.Notes,
		Tags:              task.Tags,
		Recurring:         task.Recurring,
		RecurringInterval: task.RecurringInterval,
		ReminderDate:      task.ReminderDate,
		EstimatedHours:    task.EstimatedHours,
		ActualHours:       task.ActualHours,
		Attachments:       task.Attachments,
		UpdatedAt:         task.UpdatedAt,
	}

	// Expand the client relation only when it resolved; a dangling client_id
	// leaves just the snapshot fields
	if task.Client != nil && task.Client.ID != 0 {
		dto.Client = &ClientSummaryDTO{
			ID:       task.Client.ID,
			Name:     task.Client.Name,
			Email:    task.Client.Email,
			UserType: task.Client.UserType,
		}
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}
