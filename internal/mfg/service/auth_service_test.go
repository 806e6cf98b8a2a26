package service

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/thorntonmirandajane/beast-inventory-system-sub001/internal/mfg/entity"
	"github.com/thorntonmirandajane/beast-inventory-system-sub001/internal/mfg/repository"
	"github.com/thorntonmirandajane/beast-inventory-system-sub001/internal/mfg/testutil"
)

func setupAuthTest(t *testing.T) (*AuthService, *redis.Client) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	rdb := testutil.NewTestRedis()
	return NewAuthService(repos.User, rdb, testutil.TestConfig()), rdb
}

func requireRedis(t *testing.T, rdb *redis.Client) {
	t.Helper()
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		t.Skipf("redis not available: %v", err)
	}
}

func TestCreateUserValidation(t *testing.T) {
	svc, _ := setupAuthTest(t)
	ctx := context.Background()

	if _, err := svc.CreateUser(ctx, "", "secret", "No Name", "", entity.RolePlanner); err == nil {
		t.Error("Expected error for empty username")
	}
	if _, err := svc.CreateUser(ctx, "sam", "", "Sam", "", entity.RolePlanner); err == nil {
		t.Error("Expected error for empty password")
	}
	if _, err := svc.CreateUser(ctx, "sam", "secret", "Sam", "", "superuser"); err == nil {
		t.Error("Expected error for unknown role")
	}

	user, err := svc.CreateUser(ctx, "sam", "secret", "Sam", "sam@example.com", entity.RolePlanner)
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if user.PasswordHash == "secret" {
		t.Error("Expected password to be hashed")
	}
	if user.Status != "active" {
		t.Errorf("Expected active status, got %q", user.Status)
	}

	// Duplicate username rejected by the unique index.
	if _, err := svc.CreateUser(ctx, "sam", "other", "Sam 2", "", entity.RoleViewer); err == nil {
		t.Error("Expected error for duplicate username")
	}
}

func TestLogin(t *testing.T) {
	svc, rdb := setupAuthTest(t)
	requireRedis(t, rdb)
	ctx := context.Background()

	if _, err := svc.CreateUser(ctx, "planner1", "correct-horse", "Planner One", "", entity.RolePlanner); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	if _, _, err := svc.Login(ctx, "planner1", "wrong"); err == nil {
		t.Error("Expected error for wrong password")
	}
	if _, _, err := svc.Login(ctx, "nobody", "whatever"); err == nil {
		t.Error("Expected error for unknown username")
	}

	user, pair, err := svc.Login(ctx, "planner1", "correct-horse")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Error("Expected both tokens in the pair")
	}

	fresh, err := svc.GetCurrentUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetCurrentUser failed: %v", err)
	}
	if fresh.LastLoginAt == nil {
		t.Error("Expected last login timestamp to be set")
	}
}

func TestRefreshTokenRotation(t *testing.T) {
	svc, rdb := setupAuthTest(t)
	requireRedis(t, rdb)
	ctx := context.Background()

	if _, err := svc.CreateUser(ctx, "planner2", "pw123456", "Planner Two", "", entity.RolePlanner); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	_, pair, err := svc.Login(ctx, "planner2", "pw123456")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	rotated, err := svc.RefreshToken(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshToken failed: %v", err)
	}
	if rotated.RefreshToken == pair.RefreshToken {
		t.Error("Expected a new refresh token after rotation")
	}

	// The old token is single use.
	if _, err := svc.RefreshToken(ctx, pair.RefreshToken); err == nil {
		t.Error("Expected reused refresh token to be rejected")
	}

	// Logout revokes the current one.
	if err := svc.Logout(ctx, rotated.RefreshToken); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if _, err := svc.RefreshToken(ctx, rotated.RefreshToken); err == nil {
		t.Error("Expected refresh after logout to be rejected")
	}

	// Garbage tokens never pass.
	if _, err := svc.RefreshToken(ctx, "not-a-token"); err == nil {
		t.Error("Expected error for malformed token")
	}
}
