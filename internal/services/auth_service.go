package services

import (
	"context"

	"aipromptweb_backend/internal/auth"
	"aipromptweb_backend/internal/models"
	"aipromptweb_backend/internal/repositories"
	"aipromptweb_backend/internal/services/dto"
	"aipromptweb_backend/pkg/apperrors"
)

const googleProvider = "google"

type AuthService interface {
	// Signup creates a password account with role user and returns it with
	// a signed session token.
	Signup(req *dto.SignupRequest) (*models.User, string, error)
	Login(req *dto.LoginRequest) (*models.User, string, error)
	// GoogleLogin verifies the provider token and finds, links or creates
	// the matching account.
	GoogleLogin(ctx context.Context, credential string) (*models.User, string, error)
	// ListUsers returns all accounts. Admin only.
	ListUsers(principal dto.Principal) ([]dto.UserSummary, error)
}

type AuthServiceImpl struct {
	userRepo repositories.UserRepository
	tokens   *auth.TokenManager
	google   *auth.GoogleVerifier
}

func NewAuthService(
	userRepo repositories.UserRepository,
	tokens *auth.TokenManager,
	google *auth.GoogleVerifier,
) AuthService {
	return &AuthServiceImpl{
		userRepo: userRepo,
		tokens:   tokens,
		google:   google,
	}
}

func (s *AuthServiceImpl) Signup(req *dto.SignupRequest) (*models.User, string, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, "", apperrors.NewBadRequestError(err.Error())
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, "", apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.UserRoleUser,
		Status:       models.UserStatusActive,
	}

	if err := s.userRepo.Create(user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, "", apperrors.ErrEmailAlreadyExists
		}
		return nil, "", apperrors.InternalError(err)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthServiceImpl) Login(req *dto.LoginRequest) (*models.User, string, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, "", apperrors.ErrInvalidCredentials
		}
		return nil, "", apperrors.InternalError(err)
	}

	if user.PasswordHash == "" || !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	if user.Status != models.UserStatusActive {
		return nil, "", apperrors.ErrUserBlocked
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthServiceImpl) GoogleLogin(ctx context.Context, credential string) (*models.User, string, error) {
	identity, err := s.google.Verify(ctx, credential)
	if err != nil {
		if apperrors.Is(err, auth.ErrInvalidGoogleToken) {
			return nil, "", apperrors.NewUnauthorizedError("Invalid credential")
		}
		return nil, "", apperrors.UpstreamError(err, "identity_provider")
	}

	user, err := s.findOrCreateGoogleUser(identity)
	if err != nil {
		return nil, "", err
	}

	if user.Status != models.UserStatusActive {
		return nil, "", apperrors.ErrUserBlocked
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthServiceImpl) ListUsers(principal dto.Principal) ([]dto.UserSummary, error) {
	if !principal.IsAdmin() {
		return nil, apperrors.ErrInsufficientRole
	}

	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	summaries := make([]dto.UserSummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, dto.UserSummary{
			ID:    u.ID,
			Email: u.Email,
			Role:  string(u.Role),
		})
	}
	return summaries, nil
}

// findOrCreateGoogleUser resolves a verified identity to an account: by
// external id first, then by email (linking the identity to an existing
// password account), creating a fresh federated account otherwise.
func (s *AuthServiceImpl) findOrCreateGoogleUser(identity *auth.GoogleIdentity) (*models.User, error) {
	user, err := s.userRepo.FindByExternalID(googleProvider, identity.ExternalID)
	if err == nil {
		return user, nil
	}
	if !apperrors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.InternalError(err)
	}

	user, err = s.userRepo.FindByEmail(identity.Email)
	if err == nil {
		user.ExternalID = identity.ExternalID
		user.ExternalProvider = googleProvider
		user.AvatarURL = identity.Picture
		if err := s.userRepo.Update(user); err != nil {
			return nil, apperrors.InternalError(err)
		}
		return user, nil
	}
	if !apperrors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.InternalError(err)
	}

	user = &models.User{
		Email:            identity.Email,
		Role:             models.UserRoleUser,
		Status:           models.UserStatusActive,
		ExternalID:       identity.ExternalID,
		ExternalProvider: googleProvider,
		AvatarURL:        identity.Picture,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

func (s *AuthServiceImpl) issueToken(user *models.User) (string, error) {
	token, err := s.tokens.Generate(user.ID, user.Email, string(user.Role))
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	return token, nil
}
