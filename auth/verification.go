package auth

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"
)

const (
	// DefaultCodeTTL is how long an issued verification code stays valid.
	DefaultCodeTTL = 15 * time.Minute
)

type codeEntry struct {
	code      string
	expiresAt time.Time
}

// VerificationStore holds one-time email verification codes in memory.
// A code is bound to an email, expires after the TTL, and is consumed
// on first successful match; issuing a new code replaces any pending
// one for the same email.
type VerificationStore struct {
	mu    sync.Mutex
	ttl   time.Duration
	codes map[string]codeEntry
}

func NewVerificationStore(ttl time.Duration) *VerificationStore {
	if ttl <= 0 {
		ttl = DefaultCodeTTL
	}
	return &VerificationStore{
		ttl:   ttl,
		codes: make(map[string]codeEntry),
	}
}

func generateCode() string {
	bytes := make([]byte, 4)
	if _, err := rand.Read(bytes); err != nil {
		return "00000000"
	}
	return hex.EncodeToString(bytes)
}

// Issue creates a fresh code for the email, replacing any pending one.
func (s *VerificationStore) Issue(email string) string {
	code := generateCode()
	s.mu.Lock()
	s.codes[email] = codeEntry{code: code, expiresAt: time.Now().Add(s.ttl)}
	s.mu.Unlock()
	return code
}

// Consume checks the code for the email and removes it on success.
// Expired or mismatched codes fail; a failed attempt does not burn the
// pending code.
func (s *VerificationStore) Consume(email, code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.codes[email]
	if !ok {
		return false
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.codes, email)
		return false
	}
	if entry.code != code {
		return false
	}
	delete(s.codes, email)
	return true
}

// Sweep drops expired entries; called periodically so abandoned
// signups do not accumulate.
func (s *VerificationStore) Sweep() {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for email, entry := range s.codes {
		if now.After(entry.expiresAt) {
			delete(s.codes, email)
		}
	}
}

// StartSweeper runs Sweep on the interval until stop is closed.
func (s *VerificationStore) StartSweeper(interval time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.Sweep()
			case <-stop:
				return
			}
		}
	}()
}
