package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/globalreach/crm-api/internal/models"
	"github.com/globalreach/crm-api/internal/repository"
)

var (
	ErrTaskNotFound = errors.New("task not found")
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title             string
	Description       string
	Category          string
	Type              models.TaskType
	Priority          models.TaskPriority
	Status            models.TaskStatus
	AssignedTo        string
	ClientID          *uint64
	ClientName        string
	ClientType        models.ClientType
	DueDate           *time.Time
	Notes             string
	Tags              []string
	Recurring         bool
	RecurringInterval *models.RecurringInterval
	ReminderDate      *time.Time
	EstimatedHours    *float64
	ActualHours       *float64
	Attachments       []models.Attachment
}

// UpdateTaskInput represents input for updating a task. Nil fields are left
// unchanged.
type UpdateTaskInput struct {
	Title             *string
	Description       *string
	Category          *string
	Type              *models.TaskType
	Priority          *models.TaskPriority
	Status            *models.TaskStatus
	AssignedTo        *string
	ClientID          *uint64
	ClientName        *string
	ClientType        *models.ClientType
	DueDate           *time.Time
	Notes             *string
	Tags              []string
	Recurring         *bool
	RecurringInterval *models.RecurringInterval
	ReminderDate      *time.Time
	EstimatedHours    *float64
	ActualHours       *float64
	Attachments       []models.Attachment
}

// TaskStats holds the aggregate counts for the stats endpoint
type TaskStats struct {
	Status   StatusCounts   `json:"status"`
	Priority PriorityCounts `json:"priority"`
}

type StatusCounts struct {
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"in_progress"`
	Completed  int64 `json:"completed"`
	Overdue    int64 `json:"overdue"`
	Total      int64 `json:"total"`
}

type PriorityCounts struct {
	High   int64 `json:"high"`
	Medium int64 `json:"medium"`
	Low    int64 `json:"low"`
	Total  int64 `json:"total"`
}

// taskPreloads are the relations expanded on single-task responses
var taskPreloads = []string{"Client"}

// reconcileOverdue flips open past-due tasks to Overdue. It runs before every
// read so that listing or fetching tasks always reflects passed due dates,
// the same way the data layer behaved historically. The bulk update is
// idempotent, so concurrent reads racing on the same stale task are harmless.
func (s *TaskService) reconcileOverdue() error {
	if _, err := s.taskRepo.MarkOverdue(time.Now()); err != nil {
		return fmt.Errorf("failed to reconcile overdue tasks: %w", err)
	}
	return nil
}

// ListTasks returns every task, newest first
func (s *TaskService) ListTasks() ([]models.Task, error) {
	if err := s.reconcileOverdue(); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.List(repository.TaskFilter{PreloadClient: true})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// GetTask returns a single task with its client relation expanded
func (s *TaskService) GetTask(id uint64) (*models.Task, error) {
	if err := s.reconcileOverdue(); err != nil {
		return nil, err
	}

	task, err := s.taskRepo.FindByID(id, taskPreloads...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// ListTasksByClient returns the tasks linked to one client, newest first
func (s *TaskService) ListTasksByClient(clientID uint64) ([]models.Task, error) {
	if err := s.reconcileOverdue(); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.List(repository.TaskFilter{ClientID: &clientID})
	if err != nil {
		return nil, fmt.Errorf("failed to list client tasks: %w", err)
	}
	return tasks, nil
}

// ListTasksByAssignee returns one assignee's tasks ordered by due date
func (s *TaskService) ListTasksByAssignee(assignee string) ([]models.Task, error) {
	if err := s.reconcileOverdue(); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.List(repository.TaskFilter{
		AssignedTo:    &assignee,
		SortByDueDate: true,
		PreloadClient: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list assigned tasks: %w", err)
	}
	return tasks, nil
}

// ListOverdueTasks returns tasks whose due date has passed while still open
// or already flagged Overdue, ordered by due date
func (s *TaskService) ListOverdueTasks() ([]models.Task, error) {
	if err := s.reconcileOverdue(); err != nil {
		return nil, err
	}

	now := time.Now()
	tasks, err := s.taskRepo.List(repository.TaskFilter{
		OverdueBefore: &now,
		SortByDueDate: true,
		PreloadClient: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list overdue tasks: %w", err)
	}
	return tasks, nil
}

// CreateTask validates input, resolves the client snapshot, and persists
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if input.Priority == "" {
		input.Priority = models.TaskPriorityMedium
	}
	if input.Status == "" {
		input.Status = models.TaskStatusPending
	}
	if input.ClientType == "" {
		input.ClientType = models.ClientTypeNone
	}

	if err := validateTaskFields(taskFieldSet{
		Title:             input.Title,
		Description:       input.Description,
		Category:          input.Category,
		Type:              input.Type,
		Priority:          input.Priority,
		Status:            input.Status,
		AssignedTo:        input.AssignedTo,
		ClientType:        input.ClientType,
		DueDate:           input.DueDate,
		RecurringInterval: input.RecurringInterval,
		EstimatedHours:    input.EstimatedHours,
		ActualHours:       input.ActualHours,
	}); err != nil {
		return nil, err
	}

	clientName, clientType := s.resolveClientSnapshot(input.ClientID, input.ClientName, input.ClientType)

	task := &models.Task{
		Title:             input.Title,
		Description:       input.Description,
		Category:          input.Category,
		Type:              input.Type,
		Priority:          input.Priority,
		Status:            input.Status,
		AssignedTo:        input.AssignedTo,
		ClientID:          input.ClientID,
		ClientName:        clientName,
		ClientType:        clientType,
		DueDate:           *input.DueDate,
		Notes:             input.Notes,
		Tags:              input.Tags,
		Recurring:         input.Recurring,
		RecurringInterval: input.RecurringInterval,
		ReminderDate:      input.ReminderDate,
		EstimatedHours:    input.EstimatedHours,
		ActualHours:       input.ActualHours,
		Attachments:       input.Attachments,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, taskPreloads...)
}

// UpdateTask merges the provided fields into an existing task
func (s *TaskService) UpdateTask(id uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	previousStatus := task.Status

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Category != nil {
		task.Category = *input.Category
	}
	if input.Type != nil {
		task.Type = *input.Type
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.Status != nil {
		task.Status = *input.Status
	}
	if input.AssignedTo != nil {
		task.AssignedTo = *input.AssignedTo
	}
	if input.DueDate != nil {
		task.DueDate = *input.DueDate
	}
	if input.Notes != nil {
		task.Notes = *input.Notes
	}
	if input.Tags != nil {
		task.Tags = input.Tags
	}
	if input.Recurring != nil {
		task.Recurring = *input.Recurring
	}
	if input.RecurringInterval != nil {
		task.RecurringInterval = input.RecurringInterval
	}
	if input.ReminderDate != nil {
		task.ReminderDate = input.ReminderDate
	}
	if input.EstimatedHours != nil {
		task.EstimatedHours = input.EstimatedHours
	}
	if input.ActualHours != nil {
		task.ActualHours = input.ActualHours
	}
	if input.Attachments != nil {
		task.Attachments = input.Attachments
	}

	// Re-resolve the denormalized client snapshot whenever the link changes
	if input.ClientID != nil {
		task.ClientID = input.ClientID
		fallbackName := task.ClientName
		fallbackType := task.ClientType
		if input.ClientName != nil {
			fallbackName = *input.ClientName
		}
		if input.ClientType != nil {
			fallbackType = *input.ClientType
		}
		task.ClientName, task.ClientType = s.resolveClientSnapshot(input.ClientID, fallbackName, fallbackType)
	} else {
		if input.ClientName != nil {
			task.ClientName = *input.ClientName
		}
		if input.ClientType != nil {
			task.ClientType = *input.ClientType
		}
	}

	if err := validateTaskFields(taskFieldSet{
		Title:             task.Title,
		Description:       task.Description,
		Category:          task.Category,
		Type:              task.Type,
		Priority:          task.Priority,
		Status:            task.Status,
		AssignedTo:        task.AssignedTo,
		ClientType:        task.ClientType,
		DueDate:           &task.DueDate,
		RecurringInterval: task.RecurringInterval,
		EstimatedHours:    task.EstimatedHours,
		ActualHours:       task.ActualHours,
	}); err != nil {
		return nil, err
	}

	if task.Status == models.TaskStatusCompleted && previousStatus != models.TaskStatusCompleted {
		now := time.Now()
		task.CompletedDate = &now
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, taskPreloads...)
}

// UpdateStatus performs a status-only transition. Any status may move to any
// other; reaching Completed stamps the completion time.
func (s *TaskService) UpdateStatus(id uint64, status models.TaskStatus) (*models.Task, error) {
	if !isValidStatus(status) {
		return nil, newValidationError([]string{fmt.Sprintf("invalid status: %s", status)})
	}

	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	task.Status = status
	if status == models.TaskStatusCompleted {
		now := time.Now()
		task.CompletedDate = &now
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, taskPreloads...)
}

// DeleteTask permanently removes a task
func (s *TaskService) DeleteTask(id uint64) error {
	if _, err := s.taskRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.taskRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// Stats aggregates task counts by status and priority. The counts are
// independent queries; totals are summed from the component counts.
func (s *TaskService) Stats() (*TaskStats, error) {
	pending, err := s.taskRepo.CountByStatus(models.TaskStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}
	inProgress, err := s.taskRepo.CountByStatus(models.TaskStatusInProgress)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}
	completed, err := s.taskRepo.CountByStatus(models.TaskStatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}
	overdue, err := s.taskRepo.CountByStatus(models.TaskStatusOverdue)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}
	high, err := s.taskRepo.CountByPriority(models.TaskPriorityHigh)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}
	medium, err := s.taskRepo.CountByPriority(models.TaskPriorityMedium)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}
	low, err := s.taskRepo.CountByPriority(models.TaskPriorityLow)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	return &TaskStats{
		Status: StatusCounts{
			Pending:    pending,
			InProgress: inProgress,
			Completed:  completed,
			Overdue:    overdue,
			Total:      pending + inProgress + completed + overdue,
		},
		Priority: PriorityCounts{
			High:   high,
			Medium: medium,
			Low:    low,
			Total:  high + medium + low,
		},
	}, nil
}

// resolveClientSnapshot copies the referenced user's display fields onto the
// task. When the reference is missing or dangling, the caller-supplied
// fallback values are kept; the snapshot is never synced afterwards.
func (s *TaskService) resolveClientSnapshot(clientID *uint64, fallbackName string, fallbackType models.ClientType) (string, models.ClientType) {
	if clientID == nil {
		return fallbackName, fallbackType
	}

	client, err := s.userRepo.FindByID(*clientID)
	if err != nil {
		return fallbackName, fallbackType
	}

	name := client.Name
	if name == "" {
		name = strings.TrimSpace(client.Firstname + " " + client.Lastname)
	}

	clientType := models.ClientType(client.UserType)
	if clientType == "" {
		clientType = models.ClientTypeNone
	}

	return name, clientType
}

type taskFieldSet struct {
	Title             string
	Description       string
	Category          string
	Type              models.TaskType
	Priority          models.TaskPriority
	Status            models.TaskStatus
	AssignedTo        string
	ClientType        models.ClientType
	DueDate           *time.Time
	RecurringInterval *models.RecurringInterval
	EstimatedHours    *float64
	ActualHours       *float64
}

func validateTaskFields(f taskFieldSet) error {
	var messages []string

	if strings.TrimSpace(f.Title) == "" {
		messages = append(messages, "title is required")
	}
	if strings.TrimSpace(f.Description) == "" {
		messages = append(messages, "description is required")
	}
	if f.Category == "" {
		messages = append(messages, "category is required")
	} else if !isValidCategory(f.Category) {
		messages = append(messages, fmt.Sprintf("invalid category: %s", f.Category))
	}
	if f.Type == "" {
		messages = append(messages, "type is required")
	} else if !isValidType(f.Type) {
		messages = append(messages, fmt.Sprintf("invalid type: %s", f.Type))
	}
	if !isValidPriority(f.Priority) {
		messages = append(messages, fmt.Sprintf("invalid priority: %s", f.Priority))
	}
	if !isValidStatus(f.Status) {
		messages = append(messages, fmt.Sprintf("invalid status: %s", f.Status))
	}
	if strings.TrimSpace(f.AssignedTo) == "" {
		messages = append(messages, "assignedTo is required")
	}
	if !isValidClientType(f.ClientType) {
		messages = append(messages, fmt.Sprintf("invalid clientType: %s", f.ClientType))
	}
	if f.DueDate == nil || f.DueDate.IsZero() {
		messages = append(messages, "dueDate is required")
	}
	if f.RecurringInterval != nil && !isValidRecurringInterval(*f.RecurringInterval) {
		messages = append(messages, fmt.Sprintf("invalid recurringInterval: %s", *f.RecurringInterval))
	}
	if f.EstimatedHours != nil && *f.EstimatedHours < 0 {
		messages = append(messages, "estimatedHours must be non-negative")
	}
	if f.ActualHours != nil && *f.ActualHours < 0 {
		messages = append(messages, "actualHours must be non-negative")
	}

	if len(messages) > 0 {
		return newValidationError(messages)
	}
	return nil
}

func isValidCategory(category string) bool {
	for _, c := range models.TaskCategories {
		if c == category {
			return true
		}
	}
	return false
}

func isValidType(t models.TaskType) bool {
	switch t {
	case models.TaskTypeCandidate, models.TaskTypeAgent, models.TaskTypeAdministrative, models.TaskTypeSystem:
		return true
	}
	return false
}

func isValidPriority(p models.TaskPriority) bool {
	switch p {
	case models.TaskPriorityHigh, models.TaskPriorityMedium, models.TaskPriorityLow:
		return true
	}
	return false
}

func isValidStatus(s models.TaskStatus) bool {
	switch s {
	case models.TaskStatusPending, models.TaskStatusInProgress, models.TaskStatusCompleted,
		models.TaskStatusOverdue, models.TaskStatusCancelled:
		return true
	}
	return false
}

func isValidClientType(ct models.ClientType) bool {
	switch ct {
	case models.ClientTypeCandidate, models.ClientTypeAgent, models.ClientTypeNone:
		return true
	}
	return false
}

func isValidRecurringInterval(ri models.RecurringInterval) bool {
	switch ri {
	case models.RecurringDaily, models.RecurringWeekly, models.RecurringMonthly,
		models.RecurringQuarterly, models.RecurringYearly:
		return true
	}
	return false
}
