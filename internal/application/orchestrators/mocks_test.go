package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	emailAdapter "flotenn/internal/adapters/email"
	"flotenn/internal/adapters/storage"
	"flotenn/internal/domain/account"
	"flotenn/internal/domain/audit"
	"flotenn/internal/domain/outbox"
)

var fixedNow = time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)

func nowFn() time.Time { return fixedNow }

// idSeq returns a GenerateID func yielding prefix-1, prefix-2, ...
func idSeq(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

// --- Mock activity store ---

type mockActivityStore struct {
	entries []audit.Entry
	err     error
}

func (m *mockActivityStore) Record(_ context.Context, e audit.Entry) error {
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, e)
	return nil
}

func activityDeps(store *mockActivityStore) RecordActivityDeps {
	return RecordActivityDeps{ActivityStore: store, GenerateID: idSeq("log"), Now: nowFn}
}

// --- Mock record store ---

// mockRecords is an in-memory storage.Records keyed by keyFn.
type mockRecords[T any] struct {
	items     map[string]T
	keyFn     func(T) string
	slugFn    func(T) string
	createErr error
	updateErr error
}

func newMockRecords[T any](keyFn func(T) string) *mockRecords[T] {
	return &mockRecords[T]{items: make(map[string]T), keyFn: keyFn}
}

func (m *mockRecords[T]) List(_ context.Context, _ storage.ListOptions) ([]T, error) {
	keys := make([]string, 0, len(m.items))
	for k := range m.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]T, 0, len(keys))
	for _, k := range keys {
		out = append(out, m.items[k])
	}
	return out, nil
}

func (m *mockRecords[T]) Count(_ context.Context, _ storage.ListOptions) (int, error) {
	return len(m.items), nil
}

func (m *mockRecords[T]) Get(_ context.Context, key string) (T, error) {
	rec, ok := m.items[key]
	if !ok {
		var zero T
		return zero, storage.ErrNotFound
	}
	return rec, nil
}

func (m *mockRecords[T]) GetBySlug(_ context.Context, slug string, _ bool) (T, error) {
	var zero T
	if m.slugFn == nil {
		return zero, storage.ErrNoSlug
	}
	for _, rec := range m.items {
		if m.slugFn(rec) == slug {
			return rec, nil
		}
	}
	return zero, storage.ErrNotFound
}

func (m *mockRecords[T]) Create(_ context.Context, rec T) (T, error) {
	var zero T
	if m.createErr != nil {
		return zero, m.createErr
	}
	key := m.keyFn(rec)
	if key == "" {
		return zero, storage.ErrEmptyKey
	}
	if _, dup := m.items[key]; dup {
		return zero, storage.ErrDuplicate
	}
	m.items[key] = rec
	return rec, nil
}

func (m *mockRecords[T]) Update(_ context.Context, key string, rec T) (T, error) {
	var zero T
	if m.updateErr != nil {
		return zero, m.updateErr
	}
	if _, ok := m.items[key]; !ok {
		return zero, storage.ErrNotFound
	}
	m.items[key] = rec
	return rec, nil
}

func (m *mockRecords[T]) Delete(_ context.Context, key string) error {
	if _, ok := m.items[key]; !ok {
		return storage.ErrNotFound
	}
	delete(m.items, key)
	return nil
}

// --- Mock account store ---

type mockAccountStore struct {
	*mockRecords[account.Account]
	tokens map[string]account.ResetToken
}

func newMockAccountStore() *mockAccountStore {
	return &mockAccountStore{
		mockRecords: newMockRecords(func(a account.Account) string { return a.ID }),
		tokens:      make(map[string]account.ResetToken),
	}
}

func (m *mockAccountStore) GetByEmail(_ context.Context, email string) (account.Account, error) {
	for _, a := range m.items {
		if strings.EqualFold(a.Email, email) {
			return a, nil
		}
	}
	return account.Account{}, storage.ErrNotFound
}

func (m *mockAccountStore) SaveResetToken(_ context.Context, t account.ResetToken) error {
	m.tokens[t.Token] = t
	return nil
}

func (m *mockAccountStore) GetResetToken(_ context.Context, token string) (account.ResetToken, error) {
	t, ok := m.tokens[token]
	if !ok {
		return account.ResetToken{}, storage.ErrNotFound
	}
	return t, nil
}

func (m *mockAccountStore) InvalidateResetTokens(_ context.Context, accountID string) error {
	for k, t := range m.tokens {
		if t.AccountID == accountID {
			t.Used = true
			m.tokens[k] = t
		}
	}
	return nil
}

// seed stores an account with password pw.
func (m *mockAccountStore) seed(id, email, pw string, role account.Role) account.Account {
	a := account.Account{ID: id, Name: "User " + id, Email: email, Role: role, CreatedAt: fixedNow}
	if err := a.SetPassword(pw); err != nil {
		panic(err)
	}
	m.items[id] = a
	return a
}

// --- Mock email sender ---

type mockSender struct {
	mu   sync.Mutex
	sent []emailAdapter.Message
	err  error
}

func (m *mockSender) Send(_ context.Context, msg emailAdapter.Message) (emailAdapter.Receipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return emailAdapter.Receipt{}, m.err
	}
	m.sent = append(m.sent, msg)
	return emailAdapter.Receipt{MessageID: fmt.Sprintf("msg-%d", len(m.sent)), SentAt: fixedNow}, nil
}

// --- Mock outbox store ---

type mockOutboxStore struct {
	entries map[string]outbox.Entry
	saveErr error
}

func newMockOutboxStore() *mockOutboxStore {
	return &mockOutboxStore{entries: make(map[string]outbox.Entry)}
}

func (m *mockOutboxStore) GetByID(_ context.Context, id string) (outbox.Entry, error) {
	e, ok := m.entries[id]
	if !ok {
		return outbox.Entry{}, storage.ErrNotFound
	}
	return e, nil
}

func (m *mockOutboxStore) Save(_ context.Context, e outbox.Entry) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.entries[e.ID] = e
	return nil
}

func (m *mockOutboxStore) ListPending(_ context.Context, limit int) ([]outbox.Entry, error) {
	var out []outbox.Entry
	for _, e := range m.entries {
		if e.Status == outbox.StatusPending || e.Status == outbox.StatusRetrying {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockOutboxStore) ListFailed(_ context.Context, limit int) ([]outbox.Entry, error) {
	var out []outbox.Entry
	for _, e := range m.entries {
		if e.Status == outbox.StatusFailed {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockOutboxStore) CountFailed(_ context.Context) (int, error) {
	n := 0
	for _, e := range m.entries {
		if e.Status == outbox.StatusFailed {
			n++
		}
	}
	return n, nil
}

// --- Mock file storage ---

type mockFiles struct {
	files     map[string][]byte
	uploadErr error
}

func newMockFiles() *mockFiles { return &mockFiles{files: make(map[string][]byte)} }

func (m *mockFiles) Upload(_ context.Context, name string, r io.Reader) (string, error) {
	if m.uploadErr != nil {
		return "", m.uploadErr
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.files[name] = b
	return "/uploads/" + name, nil
}

func (m *mockFiles) Remove(_ context.Context, name string) error {
	delete(m.files, name)
	return nil
}

var errBoom = errors.New("boom")
