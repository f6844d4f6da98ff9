package testhelpers

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"simontech/internal/config"
	"simontech/internal/database"
)

// PostgresImage is the image used for integration tests. gen_random_uuid()
// is built in from PostgreSQL 13 on.
const PostgresImage = "postgres:16-alpine"

// TestDB holds a shared PostgreSQL container and a pool connected to it.
type TestDB struct {
	Container testcontainers.Container
	DB        *database.DB
	ConnStr   string
}

var (
	sharedTestDB     *TestDB
	sharedTestDBOnce sync.Once
	sharedTestDBErr  error
)

// GetTestDB returns a PostgreSQL container shared by every test in the
// package, with the inquiries table created. Tests are skipped in short
// mode or when no Docker provider is reachable.
func GetTestDB(t *testing.T) *TestDB {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode (requires Docker)")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	sharedTestDBOnce.Do(func() {
		sharedTestDB, sharedTestDBErr = setupTestDB()
	})

	if sharedTestDBErr != nil {
		t.Skipf("Failed to setup test database: %v", sharedTestDBErr)
	}

	return sharedTestDB
}

// Truncate empties the inquiries table.
func (tdb *TestDB) Truncate(t *testing.T) {
	t.Helper()
	if err := tdb.DB.Exec("TRUNCATE TABLE inquiries").Error; err != nil {
		t.Fatalf("Failed to truncate inquiries: %v", err)
	}
}

// CountInquiries returns the number of stored inquiries.
func (tdb *TestDB) CountInquiries(t *testing.T) int64 {
	t.Helper()
	var n int64
	if err := tdb.DB.Table("inquiries").Count(&n).Error; err != nil {
		t.Fatalf("Failed to count inquiries: %v", err)
	}
	return n
}

func setupTestDB() (*TestDB, error) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        PostgresImage,
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "simontechsolutions",
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "test_password",
		},
		// The official image restarts once after running init scripts.
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start test container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}

	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}

	connStr := fmt.Sprintf("postgres://postgres:test_password@%s:%s/simontechsolutions?sslmode=disable",
		host, port.Port())

	cfg := &config.DatabaseConfig{
		URL:            connStr,
		MaxConnections: 5,
		MaxIdleConns:   2,
		QueryTimeout:   5 * time.Second,
	}

	var db *database.DB
	for i := 0; i < 10; i++ {
		db, err = database.Open(ctx, cfg, zap.NewNop())
		if err == nil {
			break
		}
		time.Sleep(500 * time.Millisecond)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to test database: %w", err)
	}

	if err := database.EnsureSchema(ctx, db.DB, zap.NewNop()); err != nil {
		return nil, err
	}

	return &TestDB{
		Container: container,
		DB:        db,
		ConnStr:   connStr,
	}, nil
}
