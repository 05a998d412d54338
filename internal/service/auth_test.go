package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"assistor/internal/apperror"
	"assistor/internal/auth"
	"assistor/internal/form"
)

func newTestAuthService(t *testing.T) (*AuthService, *mockStore) {
	t.Helper()
	store := newMockStore()
	passwords := auth.NewPasswordService(bcrypt.MinCost)
	tokens, err := auth.NewTokenService("test-secret-test-secret", 0)
	if err != nil {
		t.Fatalf("creating token service: %v", err)
	}
	return NewAuthService(store, passwords, tokens, testLogger()), store
}

func registrationForm() *form.Registration {
	return &form.Registration{
		FirstName:       "Ada",
		Username:        "ada",
		Email:           "ada@example.com",
		Password:        "correct horse",
		PasswordConfirm: "correct horse",
	}
}

func TestRegister(t *testing.T) {
	svc, store := newTestAuthService(t)

	user, token, err := svc.Register(context.Background(), registrationForm())
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if user.ID == "" {
		t.Error("Register() did not assign a user ID")
	}
	if token == "" {
		t.Error("Register() did not return a session token")
	}
	// The plaintext must never be stored.
	if user.PasswordHash == "correct horse" {
		t.Error("Register() stored the plaintext password")
	}
	if len(store.users) != 1 {
		t.Errorf("store holds %d users, want 1", len(store.users))
	}
}

func TestRegister_PasswordMismatch(t *testing.T) {
	svc, store := newTestAuthService(t)

	f := registrationForm()
	f.PasswordConfirm = "something else"

	_, _, err := svc.Register(context.Background(), f)
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("Register() error = %v, want ErrValidation", err)
	}

	// The mismatch is reported on the password field, not the
	// confirmation field.
	var verr *apperror.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Register() error = %T, want *ValidationError", err)
	}
	if _, ok := verr.Fields["password"]; !ok {
		t.Errorf("field errors = %v, want an entry for password", verr.Fields)
	}

	if len(store.users) != 0 {
		t.Errorf("store holds %d users after failed registration, want 0", len(store.users))
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc, store := newTestAuthService(t)

	if _, _, err := svc.Register(context.Background(), registrationForm()); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}

	f := registrationForm()
	f.Email = "other@example.com"
	_, _, err := svc.Register(context.Background(), f)

	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Field != "username" {
		t.Fatalf("Register() error = %v, want duplicate on username field", err)
	}
	if len(store.users) != 1 {
		t.Errorf("store holds %d users, want 1", len(store.users))
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newTestAuthService(t)

	registered, _, err := svc.Register(context.Background(), registrationForm())
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	user, token, err := svc.Login(context.Background(), &form.Login{
		Username: "ada",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("Login() user ID = %q, want %q", user.ID, registered.ID)
	}
	if token == "" {
		t.Error("Login() did not return a session token")
	}
}

// Both failure modes must be indistinguishable: the caller learns only
// that the credentials as a pair were wrong.
func TestLogin_BadCredentials(t *testing.T) {
	svc, _ := newTestAuthService(t)

	if _, _, err := svc.Register(context.Background(), registrationForm()); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "ada", "wrong"},
		{"unknown username", "nobody", "correct horse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Login(context.Background(), &form.Login{
				Username: tt.username,
				Password: tt.password,
			})
			if !errors.Is(err, apperror.ErrUnauthenticated) {
				t.Errorf("Login() error = %v, want ErrUnauthenticated", err)
			}
		})
	}
}

func TestLogin_UsernameCaseInsensitive(t *testing.T) {
	svc, _ := newTestAuthService(t)

	if _, _, err := svc.Register(context.Background(), registrationForm()); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	// Usernames are lowercased on the way in, both at registration and
	// login, so the stored "ada" matches a submitted "Ada".
	_, _, err := svc.Login(context.Background(), &form.Login{
		Username: "Ada",
		Password: "correct horse",
	})
	if err != nil {
		t.Errorf("Login() with mixed-case username error = %v", err)
	}
}
