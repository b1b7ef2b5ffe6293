package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/Karthikeya277/robot-lab-pass/internal/core/domain"
	"github.com/Karthikeya277/robot-lab-pass/internal/core/ports"
)

// AuthService implements registration, login by login id, and sign-out.
type AuthService struct {
	identities ports.IdentityRepository
	profiles   ports.ProfileRepository
	revoker    ports.TokenRevoker
	jwtSecret  string
	tokenTTL   time.Duration
	log        zerolog.Logger
}

func NewAuthService(
	identities ports.IdentityRepository,
	profiles ports.ProfileRepository,
	revoker ports.TokenRevoker,
	jwtSecret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		identities: identities,
		profiles:   profiles,
		revoker:    revoker,
		jwtSecret:  jwtSecret,
		tokenTTL:   tokenTTL,
		log:        log,
	}
}

func (s *AuthService) RegisterStudent(ctx context.Context, input ports.RegisterStudentInput) (*ports.RegistrationResult, error) {
	return s.register(ctx, domain.RoleStudent, input.PhoneNumber, input.Email, input.Password,
		func(loginID, userID string, now time.Time) *domain.Profile {
			return &domain.Profile{
				UserID:         userID,
				Role:           domain.RoleStudent,
				LoginID:        loginID,
				Name:           input.Name,
				PhoneNumber:    input.PhoneNumber,
				RegisterNumber: input.RegisterNumber,
				Year:           input.Year,
				Branch:         input.Branch,
				CreatedAt:      now,
				UpdatedAt:      now,
			}
		})
}

func (s *AuthService) RegisterFaculty(ctx context.Context, input ports.RegisterFacultyInput) (*ports.RegistrationResult, error) {
	return s.register(ctx, domain.RoleFaculty, input.PhoneNumber, input.Email, input.Password,
		func(loginID, userID string, now time.Time) *domain.Profile {
			return &domain.Profile{
				UserID:      userID,
				Role:        domain.RoleFaculty,
				LoginID:     loginID,
				Name:        input.Name,
				PhoneNumber: input.PhoneNumber,
				Department:  input.Department,
				Designation: input.Designation,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
		})
}

// register runs the two dependent writes behind every registration:
// identity first, profile second. The login-id pre-check is only a
// fast-fail shortcut; the store's unique index is authoritative. When the
// profile insert fails, the just-created identity is deleted so the
// caller can retry instead of being left with an orphaned account.
func (s *AuthService) register(
	ctx context.Context,
	role domain.Role,
	phone, email, password string,
	build func(loginID, userID string, now time.Time) *domain.Profile,
) (*ports.RegistrationResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if !domain.ValidPhone(phone) {
		return nil, domain.ErrInvalidPhone
	}

	loginID, err := domain.DeriveLoginID(role, phone)
	if err != nil {
		return nil, err
	}

	if _, err := s.profiles.FindByLoginID(ctx, loginID); err == nil {
		return nil, domain.ErrLoginIDTaken
	} else if !errors.Is(err, domain.ErrProfileNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	identity, err := s.identities.Create(ctx, &domain.Identity{
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	profile := build(loginID, identity.ID, now)
	if err := profile.Validate(); err != nil {
		s.compensateIdentity(ctx, identity.ID)
		return nil, err
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		s.compensateIdentity(ctx, identity.ID)
		return nil, err
	}

	s.log.Info().
		Str("login_id", loginID).
		Str("role", string(role)).
		Msg("registration completed")

	return &ports.RegistrationResult{LoginID: loginID, Profile: profile}, nil
}

func (s *AuthService) compensateIdentity(ctx context.Context, identityID string) {
	if err := s.identities.Delete(ctx, identityID); err != nil {
		// Orphaned identity; needs manual cleanup.
		s.log.Error().Err(err).Str("identity_id", identityID).Msg("compensating identity delete failed")
	}
}

// Login resolves the login id to a role and profile, looks up the
// identity email behind it, and verifies the password. Every failure maps
// to ErrInvalidCredentials so the response never reveals which step broke.
func (s *AuthService) Login(ctx context.Context, loginID, password string) (*ports.LoginResult, error) {
	if loginID == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	role, ok := domain.ResolveRole(loginID)
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	profile, err := s.profiles.FindByLoginID(ctx, loginID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if profile.Role != role {
		return nil, domain.ErrInvalidCredentials
	}

	identity, err := s.identities.FindByID(ctx, profile.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrIdentityNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(s.tokenTTL)
	token, err := s.generateToken(identity, profile, expiresAt)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("login_id", loginID).Str("role", string(role)).Msg("login succeeded")

	return &ports.LoginResult{Token: token, ExpiresAt: expiresAt, Profile: profile}, nil
}

// Logout revokes the token until its natural expiry.
func (s *AuthService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return nil
	}
	return s.revoker.Revoke(ctx, tokenID, expiresAt)
}

func (s *AuthService) generateToken(identity *domain.Identity, profile *domain.Profile, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":      identity.ID,
		"login_id": profile.LoginID,
		"role":     string(profile.Role),
		"jti":      newTokenID(),
		"exp":      expiresAt.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// newTokenID returns a random token identifier for the revocation list.
func newTokenID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return hex.EncodeToString([]byte(time.Now().UTC().Format(time.RFC3339Nano)))
	}
	return hex.EncodeToString(b)
}
