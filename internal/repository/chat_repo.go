package repository

import (
	"context"
	"sync"

	"quickchat/internal/domain"
)

// ChatRepository define el contrato de almacenamiento para chats.
type ChatRepository interface {
	Insert(ctx context.Context, chat domain.Chat) error
	Update(ctx context.Context, chat domain.Chat) error
	GetByID(ctx context.Context, id string) (domain.Chat, error)
	GetByContact(ctx context.Context, contactID string) (domain.Chat, error)
	List(ctx context.Context) ([]domain.Chat, error)
}

// MemoryChatRepository implementa ChatRepository en memoria,
// preservando el orden de insercion para los listados.
type MemoryChatRepository struct {
	mu    sync.Mutex
	chats map[string]domain.Chat
	order []string
}

func NewMemoryChatRepository() *MemoryChatRepository {
	return &MemoryChatRepository{
		chats: make(map[string]domain.Chat),
	}
}

func (r *MemoryChatRepository) Insert(_ context.Context, chat domain.Chat) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.chats[chat.ID]; !ok {
		r.order = append(r.order, chat.ID)
	}
	r.chats[chat.ID] = cloneChat(chat)
	return nil
}

func (r *MemoryChatRepository) Update(_ context.Context, chat domain.Chat) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.chats[chat.ID]; !ok {
		return ErrNotFound
	}
	r.chats[chat.ID] = cloneChat(chat)
	return nil
}

func (r *MemoryChatRepository) GetByID(_ context.Context, id string) (domain.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	chat, ok := r.chats[id]
	if !ok {
		return domain.Chat{}, ErrNotFound
	}
	return cloneChat(chat), nil
}

// GetByContact devuelve el primer chat del contacto en orden de insercion.
// La unicidad por contacto la garantiza el caller con lookup previo a crear.
func (r *MemoryChatRepository) GetByContact(_ context.Context, contactID string) (domain.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.order {
		if chat := r.chats[id]; chat.ContactID == contactID {
			return cloneChat(chat), nil
		}
	}
	return domain.Chat{}, ErrNotFound
}

func (r *MemoryChatRepository) List(_ context.Context) ([]domain.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Chat, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, cloneChat(r.chats[id]))
	}
	return out, nil
}

func cloneChat(chat domain.Chat) domain.Chat {
	messages := make([]domain.Message, len(chat.Messages))
	copy(messages, chat.Messages)
	chat.Messages = messages
	return chat
}
