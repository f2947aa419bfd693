package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/globalreach/crm-api/internal/models"
	"github.com/globalreach/crm-api/internal/repository"
)

func setupUserTestEnv(t *testing.T) (*gorm.DB, *UserService) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.AppliedJob{},
		&models.SavedJob{},
		&models.ManagedCandidate{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db, NewUserService(repository.NewUserRepository(db))
}

func candidateInput(email string) CreateUserInput {
	return CreateUserInput{
		Name:      "Maria Lopez",
		Firstname: "Maria",
		Lastname:  "Lopez",
		Email:     email,
		Password:  "supersecret",
		UserType:  models.UserTypeCandidate,
	}
}

func agentInput(email string) CreateUserInput {
	return CreateUserInput{
		Name:           "Acme Recruiting",
		Email:          email,
		Password:       "supersecret",
		UserType:       models.UserTypeAgent,
		CompanyName:    "Acme Recruiting Ltd",
		CompanyAddress: "1 Main Street",
		ContactPerson:  "John Smith",
	}
}

func TestCreateUser_CandidateDefaults(t *testing.T) {
	_, svc := setupUserTestEnv(t)

	user, err := svc.CreateUser(candidateInput("maria@example.com"))
	require.NoError(t, err)

	require.Equal(t, models.UserTypeCandidate, user.UserType)
	require.Equal(t, models.UserPriorityLow, user.Priority)
	require.Equal(t, "New Lead", user.Status)
	require.NotEqual(t, "supersecret", user.PasswordHash)
}

func TestCreateUser_CandidateRequiresNameParts(t *testing.T) {
	_, svc := setupUserTestEnv(t)

	input := candidateInput("maria@example.com")
	input.Firstname = ""
	input.Lastname = ""

	_, err := svc.CreateUser(input)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Contains(t, validationErr.Messages, "firstname is required for candidates")
	require.Contains(t, validationErr.Messages, "lastname is required for candidates")
}

func TestCreateUser_AgentRequiresCompanyFields(t *testing.T) {
	_, svc := setupUserTestEnv(t)

	input := agentInput("acme@example.com")
	input.CompanyName = ""

	_, err := svc.CreateUser(input)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Contains(t, validationErr.Messages, "companyName is required for agents")

	input.CompanyName = "Acme Recruiting Ltd"
	_, err = svc.CreateUser(input)
	require.NoError(t, err)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	_, svc := setupUserTestEnv(t)

	_, err := svc.CreateUser(candidateInput("maria@example.com"))
	require.NoError(t, err)

	_, err = svc.CreateUser(candidateInput("maria@example.com"))
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestUpdateUser_RehashesOnlyWhenPasswordSupplied(t *testing.T) {
	_, svc := setupUserTestEnv(t)

	user, err := svc.CreateUser(candidateInput("maria@example.com"))
	require.NoError(t, err)
	originalHash := user.PasswordHash

	phone := "+34 600 000 000"
	updated, err := svc.UpdateUser(user.ID, UpdateUserInput{PhoneNumber: &phone})
	require.NoError(t, err)
	require.Equal(t, originalHash, updated.PasswordHash)
	require.True(t, svc.VerifyPassword(updated, "supersecret"))

	newPassword := "evenmoresecret"
	updated, err = svc.UpdateUser(user.ID, UpdateUserInput{Password: &newPassword})
	require.NoError(t, err)
	require.NotEqual(t, originalHash, updated.PasswordHash)
	require.True(t, svc.VerifyPassword(updated, "evenmoresecret"))
	require.False(t, svc.VerifyPassword(updated, "supersecret"))
}

func TestUpdateUser_RejectsInvalidPipelineStatus(t *testing.T) {
	_, svc := setupUserTestEnv(t)

	user, err := svc.CreateUser(candidateInput("maria@example.com"))
	require.NoError(t, err)

	bad := "On Hold"
	_, err = svc.UpdateUser(user.ID, UpdateUserInput{Status: &bad})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)

	good := "Interview Scheduled"
	updated, err := svc.UpdateUser(user.ID, UpdateUserInput{Status: &good})
	require.NoError(t, err)
	require.Equal(t, "Interview Scheduled", updated.Status)
}

func TestUpdateUser_DuplicateEmail(t *testing.T) {
	_, svc := setupUserTestEnv(t)

	_, err := svc.CreateUser(candidateInput("first@example.com"))
	require.NoError(t, err)
	second, err := svc.CreateUser(candidateInput("second@example.com"))
	require.NoError(t, err)

	taken := "first@example.com"
	_, err = svc.UpdateUser(second.ID, UpdateUserInput{Email: &taken})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestSaveJob_OnlyCandidates(t *testing.T) {
	_, svc := setupUserTestEnv(t)

	agent, err := svc.CreateUser(agentInput("acme@example.com"))
	require.NoError(t, err)

	_, err = svc.SaveJob(agent.ID, "JOB-1")
	require.ErrorIs(t, err, ErrOnlyCandidatesSaveJobs)
}

func TestSaveJob_Idempotent(t *testing.T) {
	_, svc := setupUserTestEnv(t)

	candidate, err := svc.CreateUser(candidateInput("maria@example.com"))
	require.NoError(t, err)

	user, err := svc.SaveJob(candidate.ID, "JOB-1")
	require.NoError(t, err)
	require.Len(t, user.SavedJobs, 1)

	user, err = svc.SaveJob(candidate.ID, "JOB-1")
	require.NoError(t, err)
	require.Len(t, user.SavedJobs, 1)

	user, err = svc.SaveJob(candidate.ID, "JOB-2")
	require.NoError(t, err)
	require.Len(t, user.SavedJobs, 2)
}

func TestUnsaveJob(t *testing.T) {
	_, svc := setupUserTestEnv(t)

	candidate, err := svc.CreateUser(candidateInput("maria@example.com"))
	require.NoError(t, err)

	_, err = svc.SaveJob(candidate.ID, "JOB-1")
	require.NoError(t, err)

	user, err := svc.UnsaveJob(candidate.ID, "JOB-1")
	require.NoError(t, err)
	require.Empty(t, user.SavedJobs)
}

func TestAddManagedCandidate_OnlyAgents(t *testing.T) {
	_, svc := setupUserTestEnv(t)

	candidate, err := svc.CreateUser(candidateInput("maria@example.com"))
	require.NoError(t, err)

	_, err = svc.AddManagedCandidate(candidate.ID, ManagedCandidateInput{Name: "Pedro"})
	require.ErrorIs(t, err, ErrOnlyAgentsManage)

	agent, err := svc.CreateUser(agentInput("acme@example.com"))
	require.NoError(t, err)

	user, err := svc.AddManagedCandidate(agent.ID, ManagedCandidateInput{
		Name:   "Pedro Alvarez",
		Skills: []string{"welding", "forklift"},
	})
	require.NoError(t, err)
	require.Len(t, user.ManagedCandidates, 1)
	require.Equal(t, models.UserPriorityLow, user.ManagedCandidates[0].Priority)
	require.Equal(t, []string{"welding", "forklift"}, user.ManagedCandidates[0].Skills)
}

func TestDeleteUser_RemovesChildRecords(t *testing.T) {
	db, svc := setupUserTestEnv(t)

	candidate, err := svc.CreateUser(candidateInput("maria@example.com"))
	require.NoError(t, err)
	_, err = svc.SaveJob(candidate.ID, "JOB-1")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(candidate.ID))
	require.ErrorIs(t, svc.DeleteUser(candidate.ID), ErrUserNotFound)

	var count int64
	require.NoError(t, db.Model(&models.SavedJob{}).Count(&count).Error)
	require.Zero(t, count)
}
