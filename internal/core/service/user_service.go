package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/zeecare/hospital-system/internal/core/domain"
	"github.com/zeecare/hospital-system/internal/core/ports"
)

// UserService implements credential verification and the registration flows.
type UserService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewUserService(repo ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

// Verify checks the submitted credentials against the stored identity.
// Unknown email and password mismatch yield the same ErrInvalidCredentials so
// the response never reveals which part was wrong. A correct password with
// the wrong claimed role is the distinct ErrRoleMismatch.
func (s *UserService) Verify(ctx context.Context, email, password, claimedRole string) (*domain.User, error) {
	if email == "" || password == "" || claimedRole == "" {
		return nil, domain.ErrMissingFields
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if claimedRole != user.Role {
		return nil, domain.ErrRoleMismatch
	}

	return user.Public(), nil
}

// RegisterPatient creates a Patient identity from the public site.
func (s *UserService) RegisterPatient(ctx context.Context, in ports.RegisterUserInput) (*domain.User, error) {
	return s.create(ctx, in, domain.RolePatient, "", "")
}

// CreateAdmin creates an Admin identity from the dashboard.
func (s *UserService) CreateAdmin(ctx context.Context, in ports.RegisterUserInput) (*domain.User, error) {
	return s.create(ctx, in, domain.RoleAdmin, "", "")
}

// CreateDoctor creates a Doctor identity with its department. Doctors are
// data for the booking flow; they do not log in through a surface of their own.
func (s *UserService) CreateDoctor(ctx context.Context, in ports.RegisterDoctorInput) (*domain.User, error) {
	if in.Department == "" {
		return nil, domain.ErrMissingFields
	}
	return s.create(ctx, in.RegisterUserInput, domain.RoleDoctor, in.Department, in.AvatarURL)
}

// Doctors lists every Doctor identity for the public directory.
func (s *UserService) Doctors(ctx context.Context) ([]domain.User, error) {
	doctors, err := s.repo.FindByRole(ctx, domain.RoleDoctor)
	if err != nil {
		return nil, err
	}
	for i := range doctors {
		doctors[i].PasswordHash = ""
	}
	return doctors, nil
}

func (s *UserService) create(ctx context.Context, in ports.RegisterUserInput, role, department, avatarURL string) (*domain.User, error) {
	if in.FirstName == "" || in.LastName == "" || in.Email == "" || in.Phone == "" ||
		in.Password == "" || in.Gender == "" || in.DOB == "" || in.NIC == "" {
		return nil, domain.ErrMissingFields
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Phone:        in.Phone,
		NIC:          in.NIC,
		DOB:          in.DOB,
		Gender:       in.Gender,
		PasswordHash: string(hash),
		Role:         role,
		Department:   department,
		AvatarURL:    avatarURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("email", created.Email).Str("role", role).Msg("user registered")
	return created.Public(), nil
}
