package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"quickchat/internal/domain"
	"quickchat/internal/repository"
)

// UserService coordina lecturas y updates parciales del perfil singleton.
type UserService struct {
	logger *zap.Logger
	users  repository.UserRepository
}

func NewUserService(logger *zap.Logger, users repository.UserRepository) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{
		logger: logger,
		users:  users,
	}
}

func (s *UserService) Profile(ctx context.Context) (domain.User, error) {
	return s.users.Get(ctx)
}

// UpdateProfile pisa solo los campos presentes y no vacios del input;
// un update vacio deja el registro intacto.
func (s *UserService) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (domain.User, error) {
	user, err := s.users.Get(ctx)
	if err != nil {
		return domain.User{}, err
	}

	if v := strings.TrimSpace(update.Name); v != "" {
		user.Name = v
	}
	if v := strings.TrimSpace(update.About); v != "" {
		user.About = v
	}
	if v := strings.TrimSpace(update.Phone); v != "" {
		user.Phone = v
	}
	if v := strings.TrimSpace(update.Avatar); v != "" {
		user.Avatar = v
	}

	if err := s.users.Save(ctx, user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}
