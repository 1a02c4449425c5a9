//go:build integration
// +build integration

package repository_test

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/unsw-cse-comp99-3900/APIOverflow-sub000/internal/database"
	"github.com/unsw-cse-comp99-3900/APIOverflow-sub000/internal/repository"
	"github.com/unsw-cse-comp99-3900/APIOverflow-sub000/internal/retry"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	db      *pgxpool.Pool
	retrier retry.Retrier
)

func TestMain(m *testing.M) {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("marketplace"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		log.Fatalf("start postgres container: %v", err)
	}

	databaseURL, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		log.Fatalf("container connection string: %v", err)
	}

	if err := database.Migrate(filepath.Join("..", "..", "migrations"), databaseURL); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	db, err = database.Connect(ctx, databaseURL)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}

	retrier = retry.New(
		retry.WithMaxAttempts(3),
		retry.WithIsRetryableFunc(repository.IsRetryable),
	)

	code := m.Run()

	db.Close()
	if err := testcontainers.TerminateContainer(container); err != nil {
		log.Printf("terminate container: %v", err)
	}

	os.Exit(code)
}
