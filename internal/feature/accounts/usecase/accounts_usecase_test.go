package usecase

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"member_portal/internal/feature/accounts/domain/entity"
)

// mockUserRepository is a mock implementation of the UserRepository interface.
// It simulates database operations during testing.
type mockUserRepository struct {
	// CreateFunc is called when the Create method is invoked.
	CreateFunc func(ctx context.Context, user *entity.User) error
	// FindByEmailFunc is called when the FindByEmail method is invoked.
	FindByEmailFunc func(ctx context.Context, email string) (*entity.User, error)
	// FindByUsernameFunc is called when the FindByUsername method is invoked.
	FindByUsernameFunc func(ctx context.Context, username string) (*entity.User, error)
	// FindByIDFunc is called when the FindByID method is invoked.
	FindByIDFunc func(ctx context.Context, id uint) (*entity.User, error)
}

// Create is the mock implementation of the Create method.
func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil // Default: success
}

// FindByEmail is the mock implementation of the FindByEmail method.
func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, ErrUserNotFound // Default: not found
}

// FindByUsername is the mock implementation of the FindByUsername method.
func (m *mockUserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	if m.FindByUsernameFunc != nil {
		return m.FindByUsernameFunc(ctx, username)
	}
	return nil, ErrUserNotFound // Default: not found
}

// FindByID is the mock implementation of the FindByID method.
func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ErrUserNotFound // Default: not found
}

func TestAccountsUsecase_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("successful registration", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				// Verify that the password is hashed
				if len(user.PasswordHash) == 0 || user.PasswordHash == "secret1" {
					t.Errorf("password is not hashed")
				}
				// Verify that it's a valid bcrypt hash
				if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret1")); err != nil {
					t.Errorf("invalid bcrypt hash: %v", err)
				}
				if !user.IsActive {
					t.Error("new users should be active by default")
				}
				user.ID = 1
				return nil
			},
		}

		uc := NewAccountsUsecase(mockRepo)
		user, err := uc.Register(ctx, "alice", "alice@example.com", "secret1")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user == nil || user.Username != "alice" || user.Email != "alice@example.com" {
			t.Errorf("unexpected user returned: %+v", user)
		}
	})

	t.Run("password too short", func(t *testing.T) {
		uc := NewAccountsUsecase(&mockUserRepository{})
		_, err := uc.Register(ctx, "alice", "alice@example.com", "short")

		if !errors.Is(err, ErrPasswordTooShort) {
			t.Errorf("expected ErrPasswordTooShort, got: %v", err)
		}
	})

	t.Run("username already taken", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			FindByUsernameFunc: func(ctx context.Context, username string) (*entity.User, error) {
				return &entity.User{ID: 1, Username: username}, nil
			},
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				t.Error("Create should not be called when the username pre-check fails")
				return nil
			},
		}

		uc := NewAccountsUsecase(mockRepo)
		_, err := uc.Register(ctx, "alice", "other@example.com", "secret1")

		if !errors.Is(err, ErrUsernameTaken) {
			t.Errorf("expected ErrUsernameTaken, got: %v", err)
		}
	})

	t.Run("email already registered", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return &entity.User{ID: 1, Email: email}, nil
			},
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				t.Error("Create should not be called when the email pre-check fails")
				return nil
			},
		}

		uc := NewAccountsUsecase(mockRepo)
		_, err := uc.Register(ctx, "bob", "alice@example.com", "secret1")

		if !errors.Is(err, ErrEmailTaken) {
			t.Errorf("expected ErrEmailTaken, got: %v", err)
		}
	})

	t.Run("concurrent duplicate username caught by storage constraint", func(t *testing.T) {
		// The pre-check passes, the insert loses the race and the re-probe
		// finds the competing record.
		usernameCalls := 0
		mockRepo := &mockUserRepository{
			FindByUsernameFunc: func(ctx context.Context, username string) (*entity.User, error) {
				usernameCalls++
				if usernameCalls == 1 {
					return nil, ErrUserNotFound
				}
				return &entity.User{ID: 2, Username: username}, nil
			},
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				return ErrDuplicateKey
			},
		}

		uc := NewAccountsUsecase(mockRepo)
		_, err := uc.Register(ctx, "alice", "alice@example.com", "secret1")

		if !errors.Is(err, ErrUsernameTaken) {
			t.Errorf("expected ErrUsernameTaken, got: %v", err)
		}
		if usernameCalls != 2 {
			t.Errorf("expected username re-probe after constraint violation, got %d lookups", usernameCalls)
		}
	})

	t.Run("concurrent duplicate email caught by storage constraint", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				return ErrDuplicateKey
			},
		}

		uc := NewAccountsUsecase(mockRepo)
		_, err := uc.Register(ctx, "alice", "alice@example.com", "secret1")

		if !errors.Is(err, ErrEmailTaken) {
			t.Errorf("expected ErrEmailTaken, got: %v", err)
		}
	})

	t.Run("repository create failure", func(t *testing.T) {
		expectedErr := errors.New("database error")
		mockRepo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				return expectedErr
			},
		}

		uc := NewAccountsUsecase(mockRepo)
		_, err := uc.Register(ctx, "alice", "alice@example.com", "secret1")

		if !errors.Is(err, expectedErr) {
			t.Errorf("expected error '%v', got: %v", expectedErr, err)
		}
	})
}

func TestAccountsUsecase_Authenticate(t *testing.T) {
	ctx := context.Background()

	// Hashed password for testing
	password := "secret1"
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	testUser := &entity.User{
		ID:           1,
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: string(hashedPassword),
	}

	t.Run("successful login", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				if email == testUser.Email {
					return testUser, nil
				}
				return nil, ErrUserNotFound
			},
		}

		uc := NewAccountsUsecase(mockRepo)
		user, err := uc.Authenticate(ctx, "alice@example.com", "secret1")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user == nil || user.ID != testUser.ID {
			t.Errorf("unexpected user: %+v", user)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		uc := NewAccountsUsecase(&mockUserRepository{})
		_, err := uc.Authenticate(ctx, "nobody@example.com", "secret1")

		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got: %v", err)
		}
	})

	t.Run("incorrect password", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return testUser, nil
			},
		}

		uc := NewAccountsUsecase(mockRepo)
		_, err := uc.Authenticate(ctx, "alice@example.com", "wrong-password")

		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got: %v", err)
		}
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				if email == testUser.Email {
					return testUser, nil
				}
				return nil, ErrUserNotFound
			},
		}

		uc := NewAccountsUsecase(mockRepo)
		_, errUnknown := uc.Authenticate(ctx, "nobody@example.com", "secret1")
		_, errWrong := uc.Authenticate(ctx, "alice@example.com", "wrong-password")

		if errUnknown == nil || errWrong == nil {
			t.Fatal("expected both attempts to fail")
		}
		if errUnknown.Error() != errWrong.Error() {
			t.Errorf("error messages leak the failure cause: %q vs %q", errUnknown, errWrong)
		}
	})
}
