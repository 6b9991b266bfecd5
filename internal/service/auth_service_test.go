package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/anastheace/faultandtms/config"
	"github.com/anastheace/faultandtms/internal/dto"
	"github.com/anastheace/faultandtms/internal/model"
	"github.com/anastheace/faultandtms/pkg/jwt"
)

type fakeRevoker struct {
	jti string
	ttl time.Duration
	err error
}

func (f *fakeRevoker) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	f.jti, f.ttl = jti, ttl
	return f.err
}

func newTestJWT() *jwt.Manager {
	return jwt.NewManager(&config.AuthConfig{
		JWTSecret:      "test-secret-key-for-unit-testing-2026",
		AccessTokenTTL: time.Hour,
	})
}

func setupTestAuthService(revoker TokenRevoker) (AuthService, *mockStore) {
	repo, store := newMockRepository()
	return NewAuthService(repo, newTestJWT(), revoker, zap.NewNop()), store
}

func TestRegister_DefaultsToStudent(t *testing.T) {
	svc, _ := setupTestAuthService(nil)

	result, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:     "New Student",
		Email:    "New@TMS.com ",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if result.Token == "" {
		t.Error("token should not be empty")
	}
	if result.User.Role != model.RoleStudent {
		t.Errorf("expected role student, got %s", result.User.Role)
	}
	if result.User.Email != "new@tms.com" {
		t.Errorf("expected normalised email, got %s", result.User.Email)
	}
	if result.ExpiresIn != 3600 {
		t.Errorf("expected expires_in 3600, got %d", result.ExpiresIn)
	}
}

func TestRegister_PrivilegedRoleRejected(t *testing.T) {
	svc, _ := setupTestAuthService(nil)

	for _, role := range []string{model.RoleAdmin, model.RoleTechnician} {
		_, err := svc.Register(context.Background(), &dto.RegisterRequest{
			Name: "Mallory", Email: role + "@evil.com", Password: "secret123", Role: role,
		})
		if !errors.Is(err, ErrRoleNotAllowed) {
			t.Errorf("role %s: expected ErrRoleNotAllowed, got %v", role, err)
		}
	}
}

func TestRegister_Duplicate(t *testing.T) {
	svc, store := setupTestAuthService(nil)
	store.addUser("Student", "student@tms.com", model.RoleStudent)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name: "Again", Email: "student@tms.com", Password: "secret123",
	})
	if !errors.Is(err, ErrUserExists) {
		t.Errorf("expected ErrUserExists, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	svc, _ := setupTestAuthService(nil)
	ctx := context.Background()

	if _, err := svc.Register(ctx, &dto.RegisterRequest{
		Name: "Staff Member", Email: "staff@tms.com", Password: "staff123", Role: model.RoleStaff,
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	result, err := svc.Login(ctx, &dto.LoginRequest{Email: "staff@tms.com", Password: "staff123"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if result.User.Role != model.RoleStaff {
		t.Errorf("expected staff role, got %s", result.User.Role)
	}

	claims, err := newTestJWT().ParseToken(result.Token)
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.UserID != result.User.ID {
		t.Errorf("token user %d does not match %d", claims.UserID, result.User.ID)
	}

	if _, err := svc.Login(ctx, &dto.LoginRequest{Email: "staff@tms.com", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, &dto.LoginRequest{Email: "ghost@tms.com", Password: "staff123"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogout(t *testing.T) {
	revoker := &fakeRevoker{}
	svc, _ := setupTestAuthService(revoker)

	if err := svc.Logout(context.Background(), "jti-1", time.Now().Add(30*time.Minute)); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if revoker.jti != "jti-1" {
		t.Errorf("expected jti-1 to be blacklisted, got %q", revoker.jti)
	}
	if revoker.ttl <= 29*time.Minute || revoker.ttl > 30*time.Minute {
		t.Errorf("unexpected blacklist ttl %v", revoker.ttl)
	}

	revoker.err = errors.New("redis down")
	if err := svc.Logout(context.Background(), "jti-2", time.Now().Add(time.Minute)); err == nil {
		t.Error("expected revoker error to surface")
	}
}

func TestLogout_WithoutRevoker(t *testing.T) {
	svc, _ := setupTestAuthService(nil)
	if err := svc.Logout(context.Background(), "jti-1", time.Now().Add(time.Minute)); err != nil {
		t.Errorf("Logout without revoker should succeed, got %v", err)
	}
}

func TestMe(t *testing.T) {
	svc, store := setupTestAuthService(nil)
	u := store.addUser("Anas", "admin@tms.com", model.RoleAdmin)

	me, err := svc.Me(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("Me failed: %v", err)
	}
	if me.Name != "Anas" || me.Role != model.RoleAdmin {
		t.Errorf("unexpected profile %+v", me)
	}

	if _, err := svc.Me(context.Background(), 999); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestListTechnicians(t *testing.T) {
	svc, store := setupTestAuthService(nil)
	store.addUser("Tharun Technician", "tharun@tms.com", model.RoleTechnician)
	store.addUser("Rajesh Technician", "rajesh@tms.com", model.RoleTechnician)
	store.addUser("Student", "student@tms.com", model.RoleStudent)

	techs, err := svc.ListTechnicians(context.Background())
	if err != nil {
		t.Fatalf("ListTechnicians failed: %v", err)
	}
	if len(techs) != 2 {
		t.Fatalf("expected 2 technicians, got %d", len(techs))
	}
	if techs[0].Name != "Rajesh Technician" {
		t.Errorf("expected technicians sorted by name, got %s first", techs[0].Name)
	}
}

func TestCreateUser_AnyRole(t *testing.T) {
	svc, _ := setupTestAuthService(nil)

	u, err := svc.CreateUser(context.Background(), &dto.CreateUserRequest{
		Name: "Susu", Email: "susu@tms.com", Password: "susu123", Role: model.RoleTechnician,
	})
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if u.Role != model.RoleTechnician {
		t.Errorf("expected technician, got %s", u.Role)
	}

	if _, err := svc.CreateUser(context.Background(), &dto.CreateUserRequest{
		Name: "Bad", Email: "bad@tms.com", Password: "secret1", Role: "superuser",
	}); !errors.Is(err, ErrRoleNotAllowed) {
		t.Errorf("expected ErrRoleNotAllowed, got %v", err)
	}
}

func TestRegister_MultibytePasswordOverBcryptLimit(t *testing.T) {
	svc, store := setupTestAuthService(nil)

	// 40 runes passes max=72 but is 80 bytes
	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name: "Accented", Email: "accent@tms.com", Password: strings.Repeat("é", 40),
	})
	if !errors.Is(err, ErrPasswordTooLong) {
		t.Fatalf("expected ErrPasswordTooLong, got %v", err)
	}
	if len(store.users) != 0 {
		t.Errorf("user should not have been created, got %d users", len(store.users))
	}

	_, err = svc.Register(context.Background(), &dto.RegisterRequest{
		Name: "Accented", Email: "accent@tms.com", Password: strings.Repeat("é", 36),
	})
	if err != nil {
		t.Errorf("72-byte password should be accepted, got %v", err)
	}
}
