package repository

import (
	"context"
	"sync"

	"quickchat/internal/domain"
)

// ContactRepository define el contrato de lectura para contactos.
type ContactRepository interface {
	List(ctx context.Context) ([]domain.Contact, error)
	GetByID(ctx context.Context, id string) (domain.Contact, error)
}

// MemoryContactRepository implementa ContactRepository sobre un seed fijo.
type MemoryContactRepository struct {
	mu       sync.Mutex
	contacts []domain.Contact
}

func NewMemoryContactRepository(contacts []domain.Contact) *MemoryContactRepository {
	return &MemoryContactRepository{contacts: contacts}
}

// SeedContacts devuelve el set estatico de contactos del demo.
func SeedContacts() []domain.Contact {
	return []domain.Contact{
		{ID: "1", Name: "Alice Johnson", Avatar: "/assets/avatars/1.png"},
		{ID: "2", Name: "Bob Martinez", Avatar: "/assets/avatars/2.png"},
		{ID: "3", Name: "Carol Chen", Avatar: "/assets/avatars/3.png"},
		{ID: "4", Name: "David Kim", Avatar: "/assets/avatars/4.png"},
		{ID: "5", Name: "Erin Patel", Avatar: "/assets/avatars/5.png"},
		{ID: "6", Name: "Frank Novak", Avatar: "/assets/avatars/6.png"},
		{ID: "7", Name: "Grace Lee", Avatar: "/assets/avatars/7.png"},
		{ID: "8", Name: "Hannah Weber", Avatar: "/assets/avatars/8.png"},
	}
}

func (r *MemoryContactRepository) List(_ context.Context) ([]domain.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Contact, len(r.contacts))
	copy(out, r.contacts)
	return out, nil
}

func (r *MemoryContactRepository) GetByID(_ context.Context, id string) (domain.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, contact := range r.contacts {
		if contact.ID == id {
			return contact, nil
		}
	}
	return domain.Contact{}, ErrNotFound
}
