package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/spec-kit/school-service/internal/auth"
	"github.com/spec-kit/school-service/internal/domain"
	apperrors "github.com/spec-kit/school-service/pkg/util/errorutil"
)

func newUserFixture() (*UserService, *fakeUserRepository) {
	users := newFakeUserRepository()
	return NewUserService(users, 4), users
}

func domainErrorCode(t *testing.T, err error) (string, int) {
	t.Helper()

	var de *apperrors.DomainError
	if !errors.As(err, &de) {
		t.Fatalf("error %v is not a DomainError", err)
	}
	return de.Code, de.HTTPStatus
}

func TestCreateUserHashesPassword(t *testing.T) {
	svc, users := newUserFixture()
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, "bob", "Bob", "Rossi", "hunter2", domain.RoleParent)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if user.ID == "" {
		t.Fatal("created user has no id")
	}
	if user.Role != domain.RoleParent {
		t.Errorf("role = %v, want parent", user.Role)
	}

	stored, err := users.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("lookup created user: %v", err)
	}
	if stored.PasswordHash == "hunter2" {
		t.Fatal("password stored in the clear")
	}
	if err := auth.ComparePassword(stored.PasswordHash, "hunter2"); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	svc, _ := newUserFixture()
	ctx := context.Background()

	if _, err := svc.CreateUser(ctx, "bob", "Bob", "Rossi", "hunter2", domain.RoleParent); err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, err := svc.CreateUser(ctx, "bob", "Other", "Bob", "pw", domain.RoleTeacher)
	if code, status := domainErrorCode(t, err); code != "CONFLICT" || status != http.StatusConflict {
		t.Fatalf("duplicate username: code %s status %d, want CONFLICT 409", code, status)
	}
}

func TestCreateUserRejectsInvalidInput(t *testing.T) {
	svc, _ := newUserFixture()
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, "bob", "Bob", "Rossi", "pw", domain.Role(9))
	if code, _ := domainErrorCode(t, err); code != "VALIDATION_FAILED" {
		t.Errorf("bad role: code %s, want VALIDATION_FAILED", code)
	}

	_, err = svc.CreateUser(ctx, "", "Bob", "Rossi", "pw", domain.RoleParent)
	if code, _ := domainErrorCode(t, err); code != "VALIDATION_FAILED" {
		t.Errorf("empty username: code %s, want VALIDATION_FAILED", code)
	}
}

func TestUpdateUser(t *testing.T) {
	svc, users := newUserFixture()
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, "bob", "Bob", "Rossi", "pw", domain.RoleParent)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.UpdateUser(ctx, created.ID, "Robert", "Rossi", domain.RoleTeacher); err != nil {
		t.Fatalf("update: %v", err)
	}
	stored, err := users.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if stored.Name != "Robert" || stored.Role != domain.RoleTeacher {
		t.Errorf("update not persisted: %+v", stored)
	}
}

func TestUpdateUserMissing(t *testing.T) {
	svc, _ := newUserFixture()

	_, err := svc.UpdateUser(context.Background(), "no-such-id", "A", "B", domain.RoleParent)
	if code, status := domainErrorCode(t, err); code != "NOT_FOUND" || status != http.StatusNotFound {
		t.Fatalf("missing user: code %s status %d, want NOT_FOUND 404", code, status)
	}
}

func TestChangePassword(t *testing.T) {
	svc, users := newUserFixture()
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, "bob", "Bob", "Rossi", "old-pw", domain.RoleParent)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	err = svc.ChangePassword(ctx, created.ID, "wrong", "new-pw")
	if _, status := domainErrorCode(t, err); status != http.StatusUnauthorized {
		t.Fatalf("wrong current password: status %d, want 401", status)
	}

	if err := svc.ChangePassword(ctx, created.ID, "old-pw", "new-pw"); err != nil {
		t.Fatalf("change password: %v", err)
	}
	stored, err := users.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if err := auth.ComparePassword(stored.PasswordHash, "new-pw"); err != nil {
		t.Errorf("new password does not verify: %v", err)
	}
	if err := auth.ComparePassword(stored.PasswordHash, "old-pw"); err == nil {
		t.Error("old password still verifies")
	}
}
