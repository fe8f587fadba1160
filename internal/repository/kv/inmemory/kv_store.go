package inmemory

import (
	"context"
	"sync"

	repo "kanbanBoard/internal/repository"
)

type KVStorage struct {
	values map[string]string
	mtx    *sync.RWMutex
}

func NewKVStorage() *KVStorage {
	return &KVStorage{
		values: make(map[string]string),
		mtx:    &sync.RWMutex{},
	}
}

func (s *KVStorage) Get(ctx context.Context, key string) (string, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	value, ok := s.values[key]
	if !ok {
		return "", repo.ErrNotFound
	}
	return value, nil
}

func (s *KVStorage) Set(ctx context.Context, key, value string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.values[key] = value
	return nil
}

func (s *KVStorage) Delete(ctx context.Context, key string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	delete(s.values, key)
	return nil
}
