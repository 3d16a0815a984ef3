package database

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	m "institute-backend/internal/model"
	"institute-backend/internal/utilities"
)

var testDBInstance *DBinstanceStruct
var teardown func(context.Context, ...testcontainers.TerminateOption) error

// Exported seed data for handler tests.
var (
	TestAdminUser m.User
	// TestSeedPassword is the plain password of the seeded admin.
	TestSeedPassword = "SeedPass123!"

	// TestJobOpen carries a form with required email + resume fields.
	TestJobOpen m.JobRole
	// TestJobClosed is inactive and must reject submissions.
	TestJobClosed m.JobRole
	// TestJobPlain has only optional fields: a textarea and a checkbox.
	TestJobPlain m.JobRole
)

// GetTestDB starts a PostgreSQL test container and returns a teardown function,
// the DB instance, and any error encountered during setup.
func GetTestDB() (func(context.Context, ...testcontainers.TerminateOption) error, *DBinstanceStruct, error) {

	if testDBInstance != nil && teardown != nil {
		return teardown, testDBInstance, nil
	}

	var (
		dbName = "database"
		dbPwd  = "password"
		dbUser = "user"
	)

	dbContainer, err := postgres.Run(
		context.Background(),
		"postgres:latest",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		return nil, nil, err
	}

	dbHost, err := dbContainer.Host(context.Background())
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	dbPort, err := dbContainer.MappedPort(context.Background(), nat.Port("5432/tcp"))
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	config := &DBConfig{
		useConstr: true,
		Constr:    fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", dbHost, dbPort.Port(), dbUser, dbPwd, dbName),
	}

	db, err := NewDBInstance(config)
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	if err := seedTestData(db); err != nil {
		_ = dbContainer.Terminate(context.Background())
		return nil, nil, err
	}

	testDBInstance = db
	teardown = dbContainer.Terminate

	return dbContainer.Terminate, db, nil
}

// seedTestData inserts the admin user and three job roles if absent.
func seedTestData(db *DBinstanceStruct) error {
	var userCount int64
	if err := db.Model(&m.User{}).Count(&userCount).Error; err != nil {
		return err
	}

	if userCount == 0 {
		utilities.CreateAdmin(TestSeedPassword, "admin_user", db.DB)
	}
	if err := db.Where("role = ?", m.RoleAdmin).First(&TestAdminUser).Error; err != nil {
		return err
	}

	var jobCount int64
	if err := db.Model(&m.JobRole{}).Count(&jobCount).Error; err != nil {
		return err
	}
	if jobCount > 0 {
		return loadTestJobs(db)
	}

	jobs := []m.JobRole{
		{
			ID: "job-open",
			EditableJobInfo: m.EditableJobInfo{
				Title:        "Research Software Engineer",
				Type:         "Full-time",
				Location:     "Cambridge, MA",
				Department:   "Computational Science",
				SalaryRange:  "$110k - $140k",
				Description:  "Build and maintain the lab's simulation tooling.",
				Requirements: []string{"Go or Python", "Linux fluency"},
				Benefits:     []string{"Healthcare", "Conference budget"},
				PostedDate:   time.Now().Format("2006-01-02"),
				Urgency:      m.UrgencyHigh,
				Active:       true,
				FormFields: []m.JobFormField{
					{ID: "f1", Name: "firstName", Label: "First name", Type: "text", Required: true},
					{ID: "f2", Name: "email", Label: "Email", Type: "email", Required: true},
					{ID: "f3", Name: "resume", Label: "Resume", Type: "file", Required: true},
					{ID: "f4", Name: "coverLetter", Label: "Cover letter", Type: "textarea", Required: false},
				},
			},
		},
		{
			ID: "job-closed",
			EditableJobInfo: m.EditableJobInfo{
				Title:       "Lab Coordinator",
				Type:        "Part-time",
				Location:    "Remote",
				Department:  "Operations",
				Description: "Coordinate lab scheduling and outreach.",
				PostedDate:  time.Now().Format("2006-01-02"),
				Urgency:     m.UrgencyLow,
				Active:      false,
				FormFields: []m.JobFormField{
					{ID: "f1", Name: "email", Label: "Email", Type: "email", Required: true},
				},
			},
		},
		{
			ID: "job-plain",
			EditableJobInfo: m.EditableJobInfo{
				Title:       "Visiting Fellow",
				Type:        "Contract",
				Location:    "Cambridge, MA",
				Department:  "Policy Lab",
				Description: "Short-term research fellowship.",
				PostedDate:  time.Now().Format("2006-01-02"),
				Urgency:     m.UrgencyMedium,
				Active:      true,
				FormFields: []m.JobFormField{
					{ID: "f1", Name: "statement", Label: "Statement of interest", Type: "textarea", Required: false},
					{ID: "f2", Name: "relocate", Label: "Willing to relocate", Type: "checkbox", Required: false},
				},
			},
		},
	}

	if err := db.Create(&jobs).Error; err != nil {
		return err
	}
	TestJobOpen = jobs[0]
	TestJobClosed = jobs[1]
	TestJobPlain = jobs[2]

	return nil
}

// loadTestJobs populates exported variables when records already exist.
func loadTestJobs(db *DBinstanceStruct) error {
	if err := db.First(&TestJobOpen, "id = ?", "job-open").Error; err != nil {
		return err
	}
	if err := db.First(&TestJobClosed, "id = ?", "job-closed").Error; err != nil {
		return err
	}
	return db.First(&TestJobPlain, "id = ?", "job-plain").Error
}
