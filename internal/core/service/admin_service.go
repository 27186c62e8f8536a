package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/interiorfitout/backoffice/internal/core/domain"
	"github.com/interiorfitout/backoffice/internal/core/ports"
)

const minPasswordLength = 8

// AdminService backs the seed and activation commands. There is no HTTP
// route that creates admins.
type AdminService struct {
	repo ports.AdminRepository
	log  zerolog.Logger
	now  func() time.Time
}

func NewAdminService(repo ports.AdminRepository, log zerolog.Logger) *AdminService {
	return &AdminService{repo: repo, log: log, now: time.Now}
}

// Create seeds a new active admin with a bcrypt-hashed password.
func (s *AdminService) Create(ctx context.Context, name, email, password string) (*domain.Admin, error) {
	email = domain.NormalizeEmail(email)
	name = strings.TrimSpace(name)
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid email address %q", email)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	created, err := s.repo.Create(ctx, &domain.Admin{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("admin_id", created.ID).Str("email", created.Email).Msg("admin created")
	return created, nil
}

// List returns every admin, newest first.
func (s *AdminService) List(ctx context.Context) ([]*domain.Admin, error) {
	return s.repo.List(ctx)
}

// SetActive toggles whether an admin may log in. Outstanding tokens stop
// passing the gate on their next request.
func (s *AdminService) SetActive(ctx context.Context, email string, active bool) error {
	email = domain.NormalizeEmail(email)
	if err := s.repo.SetActive(ctx, email, active); err != nil {
		return err
	}
	s.log.Info().Str("email", email).Bool("active", active).Msg("admin activation changed")
	return nil
}
