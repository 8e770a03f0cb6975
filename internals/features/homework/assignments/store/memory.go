package store

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"mindsprint_backend/internals/features/homework/assignments/model"
)

type memoryRow struct {
	seq uint64
	a   model.Assignment
}

// MemoryStore keeps assignments in process memory. It backs local
// development and tests.
type MemoryStore struct {
	mu   sync.RWMutex
	rows map[string]*memoryRow
	seq  uint64
	now  func() time.Time
}

type MemoryOption func(*MemoryStore)

// WithMemoryClock overrides the timestamp source.
func WithMemoryClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) { s.now = now }
}

func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		rows: make(map[string]*memoryRow),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) Insert(_ context.Context, a *model.Assignment) (string, error) {
	id, err := newID()
	if err != nil {
		return "", err
	}
	now := s.now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()

	a.ID = id
	a.CreatedAt = now
	a.UpdatedAt = now
	s.seq++
	s.rows[id] = &memoryRow{seq: s.seq, a: a.Clone()}
	return id, nil
}

func (s *MemoryStore) FindByID(_ context.Context, id string) (*model.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.rows[id]
	if !ok {
		return nil, notFound(id)
	}
	out := row.a.Clone()
	return &out, nil
}

func (s *MemoryStore) FindByAssignee(_ context.Context, assignee string) ([]model.Assignment, error) {
	return s.collect(func(a *model.Assignment) bool { return a.AssignedTo == assignee }), nil
}

func (s *MemoryStore) FindAll(_ context.Context) ([]model.Assignment, error) {
	return s.collect(nil), nil
}

func (s *MemoryStore) Update(_ context.Context, id string, mutate Mutator) (*model.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.rows[id]
	if !ok {
		return nil, notFound(id)
	}
	next, err := applyMutation(row.a, mutate)
	if err != nil {
		var me mutatorError
		if errors.As(err, &me) {
			return nil, me.err
		}
		return nil, err
	}
	next.UpdatedAt = s.now().UTC()
	row.a = next
	out := next.Clone()
	return &out, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rows[id]; !ok {
		return notFound(id)
	}
	delete(s.rows, id)
	return nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

// Len returns the number of stored assignments.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}

func (s *MemoryStore) collect(keep func(a *model.Assignment) bool) []model.Assignment {
	s.mu.RLock()
	rows := make([]*memoryRow, 0, len(s.rows))
	for _, row := range s.rows {
		if keep == nil || keep(&row.a) {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].a.CreatedAt.Equal(rows[j].a.CreatedAt) {
			return rows[i].a.CreatedAt.After(rows[j].a.CreatedAt)
		}
		return rows[i].seq > rows[j].seq
	})
	out := make([]model.Assignment, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.a.Clone())
	}
	s.mu.RUnlock()
	return out
}
