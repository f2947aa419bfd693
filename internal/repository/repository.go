package repository

import (
	"time"

	"github.com/globalreach/crm-api/internal/models"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks matching the filter
	List(filter TaskFilter) ([]models.Task, error)

	// Update saves the full task record
	Update(task *models.Task) error

	// Delete permanently removes a task
	Delete(id uint64) error

	// MarkOverdue flips open tasks with a passed due date to Overdue.
	// Returns the number of rows updated.
	MarkOverdue(now time.Time) (int64, error)

	// CountByStatus counts tasks with the given status
	CountByStatus(status models.TaskStatus) (int64, error)

	// CountByPriority counts tasks with the given priority
	CountByPriority(priority models.TaskPriority) (int64, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	ClientID      *uint64
	AssignedTo    *string
	OverdueBefore *time.Time // open or Overdue tasks due before this instant
	SortByDueDate bool       // due date ascending; default is newest first
	PreloadClient bool
}

// UserRepository defines the interface for client record data access
type UserRepository interface {
	// Create creates a new user together with any child records
	Create(user *models.User) error

	// FindByID finds a user by ID, preloading child records
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// List retrieves users matching the filter with pagination
	List(filter UserFilter) ([]models.User, int64, error)

	// Update saves the full user record
	Update(user *models.User) error

	// Delete permanently removes a user and their child records.
	// Tasks referencing the user are left untouched.
	Delete(id uint64) error

	// AddSavedJob attaches a saved-job record to a user
	AddSavedJob(job *models.SavedJob) error

	// RemoveSavedJob detaches a saved-job record by job reference
	RemoveSavedJob(userID uint64, jobRef string) error

	// HasSavedJob reports whether the user already saved the job reference
	HasSavedJob(userID uint64, jobRef string) (bool, error)

	// AddManagedCandidate attaches a managed-candidate record to a user
	AddManagedCandidate(candidate *models.ManagedCandidate) error
}

// UserFilter holds filtering options for listing users
type UserFilter struct {
	UserType *models.UserType
	Page     int
	PageSize int
}

// AdminRepository defines the interface for staff account data access
type AdminRepository interface {
	// Create creates a new staff account
	Create(admin *models.Admin) error

	// FindByID finds a staff account by ID
	FindByID(id uint64) (*models.Admin, error)

	// FindByEmail finds a staff account by email
	FindByEmail(email string) (*models.Admin, error)

	// List retrieves all staff accounts
	List() ([]models.Admin, error)

	// Update saves the full staff account record
	Update(admin *models.Admin) error

	// Delete permanently removes a staff account
	Delete(id uint64) error
}
