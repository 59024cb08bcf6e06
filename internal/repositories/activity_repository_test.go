package repositories

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"outreach-backend/internal/database"
	"outreach-backend/internal/models"
	"outreach-backend/migrations"
)

// testPool connects to the database named by TEST_DATABASE_URL and ensures
// the schema is migrated. Tests that need Postgres are skipped when the
// variable is unset.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)

	migrator := database.NewMigratorWithFS(pool, migrations.FS, ".")
	if err := migrator.RunMigrations(ctx); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	return pool
}

// testUserID allocates a user id unlikely to collide between packages or
// runs, and registers cleanup of that user's rows.
func testUserID(t *testing.T, pool *pgxpool.Pool) int {
	t.Helper()
	id := int(time.Now().UnixNano()%1_000_000) + 1_000_000
	t.Cleanup(func() {
		pool.Exec(context.Background(), "DELETE FROM staff_activity WHERE user_id = $1", id)
	})
	return id
}

func openActivity(userID int, name string) *models.Activity {
	date := "2026-03-10"
	return &models.Activity{
		UserID:       userID,
		Team:         "R1 Tirupati",
		Role:         models.RoleCMCredit,
		ClientName:   name,
		Type:         models.TypeNewCustomerVisit,
		Status:       models.StatusInProgress,
		Gallery:      []string{},
		FollowUpDate: &date,
	}
}

func countActivities(t *testing.T, pool *pgxpool.Pool, userID int) int {
	t.Helper()
	var n int
	err := pool.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM staff_activity WHERE user_id = $1", userID).Scan(&n)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func TestCreateClosingPriorCompletesPrior(t *testing.T) {
	pool := testPool(t)
	repo := NewActivityRepository(pool)
	ctx := context.Background()
	userID := testUserID(t, pool)

	prior := openActivity(userID, "Prior Client")
	if err := repo.Create(ctx, prior); err != nil {
		t.Fatalf("create prior: %v", err)
	}

	followUp := openActivity(userID, "Prior Client")
	followUp.Type = models.TypeFollowUp
	if err := repo.CreateClosingPrior(ctx, followUp, prior.ID); err != nil {
		t.Fatalf("CreateClosingPrior: %v", err)
	}
	if followUp.ID == 0 {
		t.Fatal("follow-up record not assigned an id")
	}

	closed, err := repo.GetByID(ctx, prior.ID)
	if err != nil {
		t.Fatalf("reload prior: %v", err)
	}
	if closed.Status != models.StatusCompleted {
		t.Errorf("prior status = %q, want %q", closed.Status, models.StatusCompleted)
	}
	if closed.FollowUpDate != nil {
		t.Errorf("prior follow-up date not cleared: %v", *closed.FollowUpDate)
	}
	if n := countActivities(t, pool, userID); n != 2 {
		t.Errorf("row count = %d, want 2", n)
	}
}

func TestCreateClosingPriorRollsBackWhenPriorUnavailable(t *testing.T) {
	pool := testPool(t)
	repo := NewActivityRepository(pool)
	ctx := context.Background()

	cases := []struct {
		name  string
		setup func(t *testing.T, userID int) int // returns prior id
	}{
		{
			name: "prior already closed",
			setup: func(t *testing.T, userID int) int {
				prior := openActivity(userID, "Closed Client")
				prior.Status = models.StatusCompleted
				prior.FollowUpDate = nil
				if err := repo.Create(ctx, prior); err != nil {
					t.Fatalf("create prior: %v", err)
				}
				return prior.ID
			},
		},
		{
			name: "prior owned by someone else",
			setup: func(t *testing.T, userID int) int {
				other := testUserID(t, pool)
				prior := openActivity(other, "Other Owner")
				if err := repo.Create(ctx, prior); err != nil {
					t.Fatalf("create prior: %v", err)
				}
				return prior.ID
			},
		},
		{
			name:  "prior missing",
			setup: func(t *testing.T, userID int) int { return 0 },
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			userID := testUserID(t, pool)
			priorID := tc.setup(t, userID)
			before := countActivities(t, pool, userID)

			followUp := openActivity(userID, fmt.Sprintf("Follow %s", tc.name))
			followUp.Type = models.TypeFollowUp
			err := repo.CreateClosingPrior(ctx, followUp, priorID)
			if !errors.Is(err, ErrNotFound) {
				t.Fatalf("err = %v, want ErrNotFound", err)
			}

			// All-or-nothing: the rejected closure must not leave the
			// inserted follow-up behind.
			if after := countActivities(t, pool, userID); after != before {
				t.Errorf("row count changed %d -> %d, insert not rolled back", before, after)
			}
		})
	}
}
