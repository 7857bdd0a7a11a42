package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/mercadito/commerce-api/internal/core/domain"
	"github.com/mercadito/commerce-api/internal/core/ports"
)

// UserService implements registration and admin-side user CRUD.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// Register creates a new user. The password strength policy is checked before
// hashing; a weak password never reaches bcrypt or the store.
func (s *UserService) Register(ctx context.Context, input ports.RegisterUserInput) (*domain.User, error) {
	if !domain.StrongPassword(input.Pass) {
		return nil, domain.FieldErrors{"pass": domain.ErrWeakPassword.Error()}
	}

	role := input.Role
	if role == "" {
		role = domain.RoleClient
	}
	if !domain.ValidRole(role) {
		return nil, domain.FieldErrors{"role": role + " no es un rol válido"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Pass), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         role,
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("email", created.Email).Msg("user registered")
	return created, nil
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.FindAll(ctx)
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// Update applies a partial update restricted to name, email, role and
// password. A new password runs through the same strength policy and is
// re-hashed before storage.
func (s *UserService) Update(ctx context.Context, id string, input ports.UpdateUserInput) (*domain.User, error) {
	var update domain.UserUpdate

	if input.Name != "" {
		update.Name = &input.Name
	}
	if input.Email != "" {
		update.Email = &input.Email
	}
	if input.Role != "" {
		if !domain.ValidRole(input.Role) {
			return nil, domain.FieldErrors{"role": input.Role + " no es un rol válido"}
		}
		update.Role = &input.Role
	}
	if input.Pass != "" {
		if !domain.StrongPassword(input.Pass) {
			return nil, domain.FieldErrors{"pass": domain.ErrWeakPassword.Error()}
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Pass), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		hashed := string(hash)
		update.PasswordHash = &hashed
	}

	updated, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", id).Msg("user updated")
	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return nil
}
