package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/globalreach/crm-api/internal/dto"
	apierrors "github.com/globalreach/crm-api/internal/errors"
	"github.com/globalreach/crm-api/internal/models"
	"github.com/globalreach/crm-api/internal/services"
)

// TaskHandler coordinates task-related HTTP handlers
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// CreateTaskRequest is the JSON body for creating a task
type CreateTaskRequest struct {
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
	DueDate           *time.Time                `json:"due_date"`
	Notes             string                    `json:"notes"`
	Tags              []string                  `json:"tags"`
	Recurring         bool                      `json:"recurring"`
	RecurringInterval *models.RecurringInterval `json:"recurring_interval"`
	ReminderDate      *time.Time                `json:"reminder_date"`
	EstimatedHours    *float64                  `json:"estimated_hours"`
	ActualHours       *float64                  `json:"actual_hours"`
	Attachments       []models.Attachment       `json:"attachments"`
}

// UpdateTaskRequest is the JSON body for a full task update
type UpdateTaskRequest struct {
	Title             *string                   `json:"title"`
	Description       *string                   `json:"description"`
	Category          *string                   `json:"category"`
	Type              *models.TaskType          `json:"type"`
	Priority          *models.TaskPriority      `json:"priority"`
	Status            *models.TaskStatus        `json:"status"`
	AssignedTo        *string                   `json:"assigned_to"`
	ClientID          *uint64                   `json:"client_id"`
	ClientName        *string                   `json:"client_name"`
	ClientType        *models.ClientType        `json:"client_type"`
	DueDate           *time.Time                `json:"due_date"`
	Notes             *string                   `json:"notes"`
	Tags              []string                  `json:"tags"`
	Recurring         *bool                     `json:"recurring"`
	RecurringInterval *models.RecurringInterval `json:"recurring_interval"`
	ReminderDate      *time.Time                `json:"reminder_date"`
	EstimatedHours    *float64                  `json:"estimated_hours"`
	ActualHours       *float64                  `json:"actual_hours"`
	Attachments       []models.Attachment       `json:"attachments"`
}

// ListTasks returns all tasks, newest first
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.taskService.ListTasks()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// GetTask returns a single task by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(id)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// ListTasksByClient returns tasks linked to one client
func (h *TaskHandler) ListTasksByClient(c *gin.Context) {
	clientID, ok := parseID(c, "clientId")
	if !ok {
		return
	}

	tasks, err := h.taskService.ListTasksByClient(clientID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch client tasks")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// ListTasksByAssignee returns one assignee's tasks ordered by due date
func (h *TaskHandler) ListTasksByAssignee(c *gin.Context) {
	assignee := c.Param("assignee")

	tasks, err := h.taskService.ListTasksByAssignee(assignee)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch assigned tasks")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// ListOverdueTasks returns overdue tasks ordered by due date
func (h *TaskHandler) ListOverdueTasks(c *gin.Context) {
	tasks, err := h.taskService.ListOverdueTasks()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch overdue tasks")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Title:             req.Title,
		Description:       req.Description,
		Category:          req.Category,
		Type:              req.Type,
		Priority:          req.Priority,
		Status:            req.Status,
		AssignedTo:        req.AssignedTo,
		ClientID:          req.ClientID,
		ClientName:        req.ClientName,
		ClientType:        req.ClientType,
		DueDate:           req.DueDate,
		Notes:             req.Notes,
		Tags:              req.Tags,
		Recurring:         req.Recurring,
		RecurringInterval: req.RecurringInterval,
		ReminderDate:      req.ReminderDate,
		EstimatedHours:    req.EstimatedHours,
		ActualHours:       req.ActualHours,
		Attachments:       req.Attachments,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask performs a full task update
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTask(id, services.UpdateTaskInput{
		Title:             req.Title,
		Description:       req.Description,
		Category:          req.Category,
		Type:              req.Type,
		Priority:          req.Priority,
		Status:            req.Status,
		AssignedTo:        req.AssignedTo,
		ClientID:          req.ClientID,
		ClientName:        req.ClientName,
		ClientType:        req.ClientType,
		DueDate:           req.DueDate,
		Notes:             req.Notes,
		Tags:              req.Tags,
		Recurring:         req.Recurring,
		RecurringInterval: req.RecurringInterval,
		ReminderDate:      req.ReminderDate,
		EstimatedHours:    req.EstimatedHours,
		ActualHours:       req.ActualHours,
		Attachments:       req.Attachments,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// UpdateTaskStatus performs a status-only transition
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Status models.TaskStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateStatus(id, req.Status)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask permanently removes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(id); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// TaskStats returns the status/priority count summary
func (h *TaskHandler) TaskStats(c *gin.Context) {
	stats, err := h.taskService.Stats()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch task statistics")
		return
	}

	c.JSON(http.StatusOK, stats)
}

func respondTaskError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		apierrors.ValidationFailed(c, validationErr.Messages)
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	default:
		apierrors.InternalError(c, "")
	}
}

func parseID(c *gin.Context, param string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid id")
		return 0, false
	}
	return id, true
}
