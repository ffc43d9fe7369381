package repository

import (
	"context"
	"sync"

	"quickchat/internal/domain"
)

// OtpRepository define el contrato de almacenamiento para codigos OTP.
type OtpRepository interface {
	Put(ctx context.Context, key string, record domain.OtpRecord) error
	Get(ctx context.Context, key string) (domain.OtpRecord, error)
	Delete(ctx context.Context, key string) error
}

// OtpKey arma la clave compuesta de un telefono.
func OtpKey(countryCode, phoneNumber string) string {
	return countryCode + "|" + phoneNumber
}

// MemoryOtpRepository implementa OtpRepository en memoria.
type MemoryOtpRepository struct {
	mu    sync.Mutex
	items map[string]domain.OtpRecord
}

func NewMemoryOtpRepository() *MemoryOtpRepository {
	return &MemoryOtpRepository{
		items: make(map[string]domain.OtpRecord),
	}
}

func (r *MemoryOtpRepository) Put(_ context.Context, key string, record domain.OtpRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[key] = record
	return nil
}

func (r *MemoryOtpRepository) Get(_ context.Context, key string) (domain.OtpRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.items[key]
	if !ok {
		return domain.OtpRecord{}, ErrNotFound
	}
	return record, nil
}

func (r *MemoryOtpRepository) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, key)
	return nil
}
