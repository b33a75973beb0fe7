// Package credential persists the optional Gemini API key that switches the
// guide from simulated to live answers.
package credential

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/alexanderramin/kashimitra/internal/repository"
)

// Key is the fixed storage key for the credential.
const Key = "GEMINI_API_KEY"

// Credential is an opaque API token. Its shape is never validated locally.
type Credential string

// ErrEmptyCredential is returned by Set for blank values.
var ErrEmptyCredential = errors.New("credential must not be empty")

// Store reads and writes the credential. Get reports absence with ok=false.
type Store interface {
	Get(ctx context.Context) (cred Credential, ok bool, err error)
	Set(ctx context.Context, value string) error
	Clear(ctx context.Context) error
}

// KVStore keeps the credential under Key in a durable KV.
type KVStore struct {
	kv repository.KVRepo
}

// NewKVStore creates a Store backed by kv.
func NewKVStore(kv repository.KVRepo) *KVStore {
	return &KVStore{kv: kv}
}

func (s *KVStore) Get(ctx context.Context) (Credential, bool, error) {
	v, err := s.kv.Read(ctx, Key)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("reading credential: %w", err)
	}
	if v == "" {
		return "", false, nil
	}
	return Credential(v), true, nil
}

func (s *KVStore) Set(ctx context.Context, value string) error {
	if strings.TrimSpace(value) == "" {
		return ErrEmptyCredential
	}
	if err := s.kv.Write(ctx, Key, value); err != nil {
		return fmt.Errorf("storing credential: %w", err)
	}
	return nil
}

func (s *KVStore) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, Key); err != nil {
		return fmt.Errorf("clearing credential: %w", err)
	}
	return nil
}

// MemoryStore is a process-local Store.
type MemoryStore struct {
	mu    sync.RWMutex
	value Credential
	set   bool
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Get(context.Context) (Credential, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value, s.set, nil
}

func (s *MemoryStore) Set(_ context.Context, value string) error {
	if strings.TrimSpace(value) == "" {
		return ErrEmptyCredential
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = Credential(value)
	s.set = true
	return nil
}

func (s *MemoryStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = ""
	s.set = false
	return nil
}

// Mask hides all but the first and last four characters of c.
func Mask(c Credential) string {
	s := string(c)
	if len(s) <= 8 {
		return strings.Repeat("*", len(s))
	}
	return s[:4] + strings.Repeat("*", len(s)-8) + s[len(s)-4:]
}
