package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/wellport/wellport/internal/platform/auth"
)

// ErrBadCredentials is returned for both unknown email and wrong password,
// so a caller cannot probe which accounts exist.
var ErrBadCredentials = errors.New("incorrect email or password")

type Service struct {
	users  UserRepository
	tokens *auth.TokenService
}

func NewService(users UserRepository, tokens *auth.TokenService) *Service {
	return &Service{users: users, tokens: tokens}
}

// Register creates a new account and returns a session token for it.
// The email must be unused; the password is stored only as a bcrypt digest.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	digest, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &User{
		Email:            req.Email,
		FullName:         req.FullName,
		Role:             req.Role,
		LicenseNo:        req.LicenseNo,
		Allergies:        req.Allergies,
		Medications:      req.Medications,
		DataUsageConsent: req.DataUsageConsent,
		HashedPassword:   digest,
	}
	if user.Allergies == nil {
		user.Allergies = []string{}
	}
	if user.Medications == nil {
		user.Medications = []string{}
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issueToken(user)
}

// Login verifies the credentials and returns a fresh session token. The
// stored role, not anything in the request, determines the token's role.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*TokenResponse, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))

	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrBadCredentials
	}
	if err != nil {
		return nil, err
	}

	if !auth.CheckPassword(req.Password, user.HashedPassword) {
		return nil, ErrBadCredentials
	}

	return s.issueToken(user)
}

func (s *Service) issueToken(u *User) (*TokenResponse, error) {
	token, err := s.tokens.Issue(u.Email, string(u.Role))
	if err != nil {
		return nil, err
	}
	return &TokenResponse{AccessToken: token, TokenType: "bearer"}, nil
}

// Profile returns the read view of the user's own record.
func (s *Service) Profile(ctx context.Context, email string) (*Profile, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return ProfileOf(user), nil
}

// UpdateProfile applies a partial patch and returns the fields that were
// written. An empty patch writes nothing and returns an empty map.
func (s *Service) UpdateProfile(ctx context.Context, email string, patch *ProfileUpdate) (map[string]interface{}, error) {
	fields := patch.Fields()
	if len(fields) == 0 {
		return fields, nil
	}
	if err := s.users.UpdateProfile(ctx, email, fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// ResolveAccount implements auth.AccountResolver: it maps a verified token
// subject to the stored account, or fails when the account no longer exists.
func (s *Service) ResolveAccount(ctx context.Context, email string) (*auth.Principal, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	principal := &auth.Principal{Email: user.Email, Role: string(user.Role)}
	if user.FullName != nil {
		principal.FullName = *user.FullName
	}
	return principal, nil
}
