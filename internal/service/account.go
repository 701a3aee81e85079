package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	"wordtrainer/internal/domain"
	"wordtrainer/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// registration is the validated shape of Register input
type registration struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,emailshape"`
	Password string `json:"password" validate:"required,alphanum,min=6"`
}

var fieldMessages = map[string]map[string]string{
	"name": {
		"required": "Name is required",
	},
	"email": {
		"required":   "Email is required",
		"emailshape": "Invalid email format",
	},
	"password": {
		"required": "Password is required",
		"alphanum": "Password must be at least 6 characters and contain only letters and numbers",
		"min":      "Password must be at least 6 characters and contain only letters and numbers",
	},
}

// AccountService handles registration, login and session lifecycle
type AccountService struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	validate *validator.Validate
	logger   *zap.Logger

	now   func() time.Time
	newID func() string

	// mu serialises read-modify-write cycles on the user collection
	mu sync.Mutex
}

// NewAccountService creates a new account service
func NewAccountService(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	logger *zap.Logger,
) *AccountService {
	validate, err := newRegistrationValidator()
	if err != nil {
		panic(err)
	}

	return &AccountService{
		users:    users,
		sessions: sessions,
		validate: validate,
		logger:   logger,
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
	}
}

func newRegistrationValidator() (*validator.Validate, error) {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	})
	err := registerValidations(validate, map[string]validator.Func{
		"emailshape": func(fl validator.FieldLevel) bool {
			return emailPattern.MatchString(fl.Field().String())
		},
	})
	if err != nil {
		return nil, err
	}
	return validate, nil
}

func registerValidations(validate *validator.Validate, funcs map[string]validator.Func) error {
	for tag, fn := range funcs {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %q validation: %w", tag, err)
		}
	}
	return nil
}

// Restore loads the session marker of clientID. A marker that cannot be
// decoded is deleted and an inactive session is returned.
func (s *AccountService) Restore(ctx context.Context, clientID string) (*Session, error) {
	session := &Session{clientID: clientID}

	user, err := s.sessions.Session(ctx, clientID)
	if errors.Is(err, domain.ErrCorruptRecord) {
		s.logger.Warn("Discarding corrupt session marker",
			zap.String("client_id", clientID),
			zap.Error(err),
		)
		if clearErr := s.sessions.ClearSession(ctx, clientID); clearErr != nil {
			s.logger.Error("Failed to clear corrupt session marker", zap.Error(clearErr))
		}
		return session, nil
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "restore session", Err: err}
	}

	session.user = user
	return session, nil
}

// Register creates an account and activates it on session
func (s *AccountService) Register(ctx context.Context, session *Session, name, email, password string) (domain.User, error) {
	input := registration{
		Name:     strings.TrimSpace(name),
		Email:    domain.NormalizeEmail(email),
		Password: password,
	}
	if err := s.validateRegistration(input); err != nil {
		return domain.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.users.Users(ctx)
	if err != nil {
		return domain.User{}, &domain.StorageError{Op: "load users", Err: err}
	}

	if _, exists := users[input.Email]; exists {
		return domain.User{}, domain.ErrDuplicateAccount
	}

	user := domain.User{
		ID:        s.newID(),
		Name:      input.Name,
		Email:     input.Email,
		Password:  input.Password,
		CreatedAt: s.now().UTC(),
	}
	users[user.Email] = user

	if err := s.users.SaveUsers(ctx, users); err != nil {
		return domain.User{}, &domain.StorageError{Op: "save users", Err: err}
	}

	s.logger.Info("User registered", zap.String("user_id", user.ID))

	if err := s.activate(ctx, session, user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// Login activates the account matching email and password on session
func (s *AccountService) Login(ctx context.Context, session *Session, email, password string) (domain.User, error) {
	users, err := s.users.Users(ctx)
	if err != nil {
		return domain.User{}, &domain.StorageError{Op: "load users", Err: err}
	}

	user, ok := users[domain.NormalizeEmail(email)]
	if !ok || user.Password != password {
		return domain.User{}, domain.ErrAuthentication
	}

	if err := s.activate(ctx, session, user); err != nil {
		return domain.User{}, err
	}

	s.logger.Info("User logged in", zap.String("user_id", user.ID))
	return user, nil
}

// Logout clears the session marker. Progress, selections and visits stay.
func (s *AccountService) Logout(ctx context.Context, session *Session) error {
	if err := s.sessions.ClearSession(ctx, session.clientID); err != nil {
		return &domain.StorageError{Op: "clear session", Err: err}
	}
	session.user = nil
	return nil
}

func (s *AccountService) activate(ctx context.Context, session *Session, user domain.User) error {
	if err := s.sessions.SaveSession(ctx, session.clientID, user); err != nil {
		return &domain.StorageError{Op: "save session", Err: err}
	}
	session.user = &user
	return nil
}

func (s *AccountService) validateRegistration(input registration) error {
	err := s.validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	vErr := &domain.ValidationError{Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		msg, ok := fieldMessages[fe.Field()][fe.Tag()]
		if !ok {
			msg = "is invalid"
		}
		vErr.Fields[fe.Field()] = msg
	}
	return vErr
}
