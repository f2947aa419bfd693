package repository

import (
	"gorm.io/gorm"

	"github.com/globalreach/crm-api/internal/database"
	"github.com/globalreach/crm-api/internal/models"
	"github.com/globalreach/crm-api/internal/utils"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user together with any child records
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID, preloading child records
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	err := r.db.
		Preload("AppliedJobs").
		Preload("SavedJobs").
		Preload("ManagedCandidates").
		First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List retrieves users matching the filter with pagination
func (r *GormUserRepository) List(filter UserFilter) ([]models.User, int64, error) {
	var users []models.User

	query := r.db.Model(&models.User{})
	if filter.UserType != nil {
		query = query.Where("user_type = ?", *filter.UserType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("created_at DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		listQuery = listQuery.Scopes(database.Paginate(utils.PaginationParams{
			Page:   filter.Page,
			Limit:  filter.PageSize,
			Offset: (filter.Page - 1) * filter.PageSize,
		}))
	}

	if err := listQuery.Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// Update saves the full user record
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// Delete permanently removes a user and their child records. Tasks that
// reference the user keep their denormalized client fields.
func (r *GormUserRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.AppliedJob{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.SavedJob{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.ManagedCandidate{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.User{}, id).Error
	})
}

// AddSavedJob attaches a saved-job record to a user
func (r *GormUserRepository) AddSavedJob(job *models.SavedJob) error {
	return r.db.Create(job).Error
}

// RemoveSavedJob detaches a saved-job record by job reference
func (r *GormUserRepository) RemoveSavedJob(userID uint64, jobRef string) error {
	return r.db.Where("user_id = ? AND job_ref = ?", userID, jobRef).
		Delete(&models.SavedJob{}).Error
}

// HasSavedJob reports whether the user already saved the job reference
func (r *GormUserRepository) HasSavedJob(userID uint64, jobRef string) (bool, error) {
	var count int64
	err := r.db.Model(&models.SavedJob{}).
		Where("user_id = ? AND job_ref = ?", userID, jobRef).
		Count(&count).Error
	return count > 0, err
}

// AddManagedCandidate attaches a managed-candidate record to a user
func (r *GormUserRepository) AddManagedCandidate(candidate *models.ManagedCandidate) error {
	return r.db.Create(candidate).Error
}
