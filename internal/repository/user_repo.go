package repository

import (
	"context"
	"sync"

	"quickchat/internal/domain"
)

// UserRepository define el contrato de almacenamiento para el perfil
// singleton; el registro se muta en el lugar, nunca se recrea.
type UserRepository interface {
	Get(ctx context.Context) (domain.User, error)
	Save(ctx context.Context, user domain.User) error
}

// MemoryUserRepository implementa UserRepository en memoria.
type MemoryUserRepository struct {
	mu   sync.Mutex
	user domain.User
}

func NewMemoryUserRepository(user domain.User) *MemoryUserRepository {
	return &MemoryUserRepository{user: user}
}

// SeedUser devuelve el perfil inicial del demo.
func SeedUser() domain.User {
	return domain.User{
		Name:   "Guest User",
		About:  "Hey there! I am using this chat app.",
		Phone:  "+1 555 0100",
		Avatar: "/assets/avatars/default.png",
	}
}

func (r *MemoryUserRepository) Get(_ context.Context) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.user, nil
}

func (r *MemoryUserRepository) Save(_ context.Context, user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.user = user
	return nil
}
