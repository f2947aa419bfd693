package models

import "time"

type UserType string

const (
	UserTypeCandidate UserType = "candidate"
	UserTypeAgent     UserType = "agent"
)

type UserPriority string

const (
	UserPriorityLow    UserPriority = "Low"
	UserPriorityMedium UserPriority = "Medium"
	UserPriorityHigh   UserPriority = "High"
)

// PipelineStatuses is the closed set of stages a client record moves through
var PipelineStatuses = []string{
	"New Lead",
	"Contacted",
	"Profile Assessed",
	"Document Collection",
	"Application Submitted",
	"Interview Scheduled",
	"Visa Processed",
	"Placed",
	"Rejected",
}

// User is a candidate or agent client record. Candidate records require
// firstname/lastname; agent records require the company fields.
type User struct {
	ID           uint64   `gorm:"primarykey" json:"id"`
	Name         string   `gorm:"type:varchar(255);not null" json:"name"`
	Firstname    string   `gorm:"type:varchar(255)" json:"firstname"`
	Lastname     string   `gorm:"type:varchar(255)" json:"lastname"`
	Email        string   `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"type:varchar(255);not null" json:"-"`
	UserType     UserType `gorm:"type:varchar(20);not null;default:'candidate'" json:"user_type"`
	PhoneNumber  string   `gorm:"type:varchar(50)" json:"phone_number"`

	// Candidate-specific fields
	Picture string `gorm:"type:varchar(512)" json:"picture"`
	CV      string `gorm:"type:varchar(512)" json:"cv"`
	Address string `gorm:"type:varchar(512)" json:"address"`
	Country string `gorm:"type:varchar(100)" json:"country"`

	Priority UserPriority `gorm:"type:varchar(10);not null;default:'Low'" json:"priority"`
	Status   string       `gorm:"type:varchar(50);not null;default:'New Lead'" json:"status"`

	// Agent-specific fields
	CompanyName    string `gorm:"type:varchar(255)" json:"company_name"`
	CompanyAddress string `gorm:"type:varchar(512)" json:"company_address"`
	ContactPerson  string `gorm:"type:varchar(255)" json:"contact_person"`
	CompanyLogo    string `gorm:"type:varchar(512)" json:"company_logo"`
	IsVerified     bool   `gorm:"not null;default:false" json:"is_verified"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	AppliedJobs       []AppliedJob       `gorm:"foreignKey:UserID" json:"applied_jobs,omitempty"`
	SavedJobs         []SavedJob         `gorm:"foreignKey:UserID" json:"saved_jobs,omitempty"`
	ManagedCandidates []ManagedCandidate `gorm:"foreignKey:UserID" json:"managed_candidates,omitempty"`
}

// AppliedJob records a candidate's application to an external job posting
type AppliedJob struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	UserID    uint64    `gorm:"not null;index" json:"user_id"`
	JobRef    string    `gorm:"type:varchar(64);not null" json:"job_ref"`
	Status    string    `gorm:"type:varchar(50);not null;default:'Applied'" json:"status"`
	AppliedAt time.Time `json:"applied_at"`
}

// SavedJob records a candidate's bookmarked job posting
type SavedJob struct {
	ID      uint64    `gorm:"primarykey" json:"id"`
	UserID  uint64    `gorm:"not null;index" json:"user_id"`
	JobRef  string    `gorm:"type:varchar(64);not null" json:"job_ref"`
	SavedAt time.Time `json:"saved_at"`
}

// ManagedCandidate is a lightweight candidate record kept by an agent
type ManagedCandidate struct {
	ID         uint64       `gorm:"primarykey" json:"id"`
	UserID     uint64       `gorm:"not null;index" json:"user_id"`
	Name       string       `gorm:"type:varchar(255);not null" json:"name"`
	Email      string       `gorm:"type:varchar(255)" json:"email"`
	Phone      string       `gorm:"type:varchar(50)" json:"phone"`
	CV         string       `gorm:"type:varchar(512)" json:"cv"`
	Skills     []string     `gorm:"serializer:json" json:"skills"`
	Experience string       `gorm:"type:varchar(255)" json:"experience"`
	Priority   UserPriority `gorm:"type:varchar(10);not null;default:'Low'" json:"priority"`
	AddedAt    time.Time    `json:"added_at"`
}
