package ratelimit

import (
	"sync"
	"time"
)

// Store — хранилище счётчиков запросов с истечением по окну.
// Явно внедряется в компоненты вместо модульного синглтона,
// чтобы тесты могли конструировать изолированные экземпляры.
type Store struct {
	mu      sync.Mutex
	entries map[string]*entry
	limit   int
	window  time.Duration
	// now подменяется в тестах
	now func() time.Time
}

type entry struct {
	count     int
	expiresAt time.Time
}

// New создаёт хранилище: не более limit запросов на ключ за окно window.
func New(limit int, window time.Duration) *Store {
	return &Store{
		entries: make(map[string]*entry),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
}

// Allow регистрирует запрос по ключу и сообщает, укладывается ли он в лимит.
func (s *Store) Allow(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	e, ok := s.entries[key]
	if !ok || now.After(e.expiresAt) {
		s.entries[key] = &entry{count: 1, expiresAt: now.Add(s.window)}
		s.prune(now)
		return s.limit >= 1
	}

	e.count++
	return e.count <= s.limit
}

// Remaining возвращает остаток лимита по ключу.
func (s *Store) Remaining(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok || s.now().After(e.expiresAt) {
		return s.limit
	}

	remaining := s.limit - e.count
	if remaining < 0 {
		return 0
	}
	return remaining
}

// prune убирает истёкшие записи; вызывается под мьютексом.
func (s *Store) prune(now time.Time) {
	for key, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, key)
		}
	}
}
