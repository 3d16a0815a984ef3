package database

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"

	"institute-backend/internal/model"
)

var testDB *DBinstanceStruct

func TestMain(m *testing.M) {
	var err error
	var midTeardown func(context.Context, ...testcontainers.TerminateOption) error
	midTeardown, testDB, err = GetTestDB()
	if err != nil {
		os.Exit(1)
	}
	m.Run()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if midTeardown != nil {
		_ = midTeardown(ctx)
	}
}

func TestHealth(t *testing.T) {
	stats := testDB.Health()
	assert.Equal(t, "up", stats["status"])
}

func TestMigrationCreatedTables(t *testing.T) {
	for _, m := range model.MigrateAble {
		assert.True(t, testDB.Migrator().HasTable(m), "missing table for %T", m)
	}
}

func TestSeededAdminExists(t *testing.T) {
	var admin model.User
	assert.NoError(t, testDB.Where("role = ?", model.RoleAdmin).First(&admin).Error)
	assert.Equal(t, TestAdminUser.ID, admin.ID)
	assert.NotEqual(t, TestSeedPassword, admin.Password)
}
