package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/nakama-dev/auth-backend/internal/domain"
)

/*
Fakes for ports
*/

type fakeUserRepo struct {
	mu sync.Mutex

	byID    map[string]domain.User
	byEmail map[string]domain.User

	// injected errors (if set, method returns error)
	getByIDErr    error
	getByEmailErr error
	createErr     error

	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    map[string]domain.User{},
		byEmail: map[string]domain.User{},
	}
}

func (f *fakeUserRepo) put(u domain.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[u.ID] = u
	f.byEmail[domain.NormalizeEmail(u.Email)] = u
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string, includeHash bool) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getByEmailErr != nil {
		return domain.User{}, f.getByEmailErr
	}
	u, ok := f.byEmail[domain.NormalizeEmail(email)]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	if !includeHash {
		u.PasswordHash = ""
	}
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getByIDErr != nil {
		return domain.User{}, f.getByIDErr
	}
	u, ok := f.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	u.PasswordHash = ""
	return u, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return domain.User{}, f.createErr
	}

	key := domain.NormalizeEmail(u.Email)
	if _, exists := f.byEmail[key]; exists {
		return domain.User{}, domain.ErrEmailAlreadyExists()
	}

	f.nextID++
	u.ID = fmt.Sprintf("u%d", f.nextID)
	u.Email = key
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	f.byID[u.ID] = u
	f.byEmail[key] = u
	return u, nil
}

func (f *fakeUserRepo) UpdatePasswordHash(ctx context.Context, userID string, newHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.byID[userID]
	if !ok {
		return domain.ErrUserNotFound()
	}
	u.PasswordHash = newHash
	f.byID[userID] = u
	f.byEmail[u.Email] = u
	return nil
}

type fakeHasher struct {
	hashFn   func(pw string) (string, error)
	verifyFn func(pw, hash string) (bool, error)
}

func (f *fakeHasher) Hash(pw string) (string, error) {
	if f.hashFn != nil {
		return f.hashFn(pw)
	}
	return "hash:" + pw, nil
}

func (f *fakeHasher) Verify(pw, hash string) (bool, error) {
	if f.verifyFn != nil {
		return f.verifyFn(pw, hash)
	}
	return hash == "hash:"+pw, nil
}

type fakeSigner struct {
	issueFn  func(userID, email, role string, ttl time.Duration) (string, error)
	verifyFn func(token string) (TokenClaims, error)
}

func (f *fakeSigner) Issue(userID, email, role string, ttl time.Duration) (string, error) {
	if f.issueFn != nil {
		return f.issueFn(userID, email, role, ttl)
	}
	return strings.Join([]string{"tok", userID, email, role}, ":"), nil
}

func (f *fakeSigner) Verify(token string) (TokenClaims, error) {
	if f.verifyFn != nil {
		return f.verifyFn(token)
	}
	parts := strings.Split(token, ":")
	if len(parts) != 4 || parts[0] != "tok" {
		return TokenClaims{}, domain.ErrTokenInvalid()
	}
	now := time.Now()
	return TokenClaims{
		UserID:    parts[1],
		Email:     parts[2],
		Role:      parts[3],
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	}, nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []UserRegisteredEvent
	err    error
}

func (f *fakePublisher) PublishUserRegistered(ctx context.Context, evt UserRegisteredEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, evt)
	return nil
}

/*
Helpers
*/

func nopLogger() zerolog.Logger { return zerolog.Nop() }

func newSvcForTest(t *testing.T) (*Service, *fakeUserRepo, *fakeHasher, *fakeSigner, *fakePublisher) {
	t.Helper()

	users := newFakeUserRepo()
	hasher := &fakeHasher{}
	signer := &fakeSigner{}
	pub := &fakePublisher{}

	svc := NewService(users, hasher, signer, signer, pub, Config{TokenTTL: time.Hour}, zerolog.Nop())
	return svc, users, hasher, signer, pub
}

func requireErrCode(t *testing.T, err error, code string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected error with code %q, got nil", code)
	}
	var de *domain.Error
	if !errors.As(err, &de) {
		t.Fatalf("expected *domain.Error, got %T: %v", err, err)
	}
	if de.Code != code {
		t.Fatalf("expected code %q, got %q (%v)", code, de.Code, err)
	}
}
