package newsfeed

import (
	"context"
	"strings"

	"github.com/VitaminP8/newsfeed/internal/apperr"
	"github.com/VitaminP8/newsfeed/internal/auth"
	"github.com/VitaminP8/newsfeed/models"
	"github.com/pkg/errors"
)

type AuthPayload struct {
	Token string
	User  *models.User
}

type SignupInput struct {
	Username  string
	Password  string
	Email     string
	FirstName string
	LastName  string
}

type LoginInput struct {
	Username string
	Password string
}

func (s *Service) Signup(ctx context.Context, input SignupInput) (*AuthPayload, error) {
	if strings.TrimSpace(input.Username) == "" {
		return nil, errors.Wrap(apperr.ErrValidation, "username is required")
	}
	if input.Password == "" {
		return nil, errors.Wrap(apperr.ErrValidation, "password is required")
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Password:  hash,
	}
	// занятый username -> apperr.ErrConflict из хранилища
	if err := s.users.CreateUser(ctx, u); err != nil {
		return nil, err
	}

	return s.issue(u)
}

func (s *Service) Login(ctx context.Context, input LoginInput) (*AuthPayload, error) {
	u, err := s.users.GetUserByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, errors.Wrap(apperr.ErrUnauthenticated, "invalid username or password")
		}
		return nil, err
	}
	if !auth.CheckPassword(u.Password, input.Password) {
		return nil, errors.Wrap(apperr.ErrUnauthenticated, "invalid username or password")
	}

	return s.issue(u)
}

// VerifyToken: true, если токен валиден и его пользователь существует.
// Ошибка возвращается только при сбое хранилища.
func (s *Service) VerifyToken(ctx context.Context, token string) (bool, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return false, nil
	}
	return s.userExists(ctx, claims.UserID)
}

// RefreshToken выпускает новый токен по старому: подпись проверяется, срок действия нет
func (s *Service) RefreshToken(ctx context.Context, token string) (string, error) {
	claims, err := s.tokens.DecodeIgnoringExpiry(token)
	if err != nil {
		return "", err
	}

	u, err := s.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return "", errors.Wrapf(apperr.ErrInvalidToken, "user %d no longer exists", claims.UserID)
		}
		return "", err
	}

	return s.tokens.Issue(u)
}

func (s *Service) issue(u *models.User) (*AuthPayload, error) {
	token, err := s.tokens.Issue(u)
	if err != nil {
		return nil, err
	}
	return &AuthPayload{Token: token, User: u}, nil
}

func (s *Service) userExists(ctx context.Context, id uint) (bool, error) {
	_, err := s.users.GetUserByID(ctx, id)
	if errors.Is(err, apperr.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
