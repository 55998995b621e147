// Package memstore keeps the four collections in process memory. Records are returned in
// insertion order.
package memstore

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/sushihentaime/bloggraph/internal/store"
)

type Options struct {
	// UniquePairs rejects a second reader or vote record for the same (blog, user) pair
	// with store.ErrConflict, like the unique constraints of the Postgres schema.
	UniquePairs bool
}

func New(opts Options) *store.Store {
	return &store.Store{
		Users:   &userStore{c: newCollection[store.User]()},
		Blogs:   &blogStore{c: newCollection[store.Blog]()},
		Readers: &readerStore{c: newCollection[store.BlogReader](), unique: opts.UniquePairs},
		Votes:   &voteStore{c: newCollection[store.BlogVote](), unique: opts.UniquePairs},
	}
}

type collection[T any] struct {
	mu      sync.RWMutex
	order   []string
	records map[string]T
}

func newCollection[T any]() *collection[T] {
	return &collection[T]{records: make(map[string]T)}
}

func (c *collection[T]) get(id string) (*T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rec, ok := c.records[id]
	if !ok {
		return nil, store.ErrRecordNotFound
	}
	return &rec, nil
}

func (c *collection[T]) find(match func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []T
	for _, id := range c.order {
		if rec := c.records[id]; match(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// insert stores rec under a fresh id. exists, when non-nil, is checked under the write lock.
func (c *collection[T]) insert(rec T, setID func(*T, string), exists func(T) bool) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if exists != nil {
		for _, id := range c.order {
			if exists(c.records[id]) {
				return rec, store.ErrConflict
			}
		}
	}

	id := uuid.NewString()
	setID(&rec, id)
	c.records[id] = rec
	c.order = append(c.order, id)
	return rec, nil
}

func (c *collection[T]) update(id string, apply func(*T)) (*T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec, ok := c.records[id]
	if !ok {
		return nil, store.ErrRecordNotFound
	}
	apply(&rec)
	c.records[id] = rec
	return &rec, nil
}

func (c *collection[T]) delete(id string) (*T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec, ok := c.records[id]
	if !ok {
		return nil, store.ErrRecordNotFound
	}
	delete(c.records, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return &rec, nil
}

func eq(want *string, got string) bool {
	return want == nil || *want == got
}

type userStore struct {
	c *collection[store.User]
}

func (s *userStore) FindByID(ctx context.Context, id string) (*store.User, error) {
	return s.c.get(id)
}

func (s *userStore) FindMany(ctx context.Context, f store.UserFilter) ([]store.User, error) {
	return s.c.find(func(u store.User) bool {
		return f.IsAuthor == nil || *f.IsAuthor == u.IsAuthor
	}), nil
}

func (s *userStore) Insert(ctx context.Context, u *store.User) error {
	rec, err := s.c.insert(*u, func(r *store.User, id string) { r.ID = id }, nil)
	if err != nil {
		return err
	}
	*u = rec
	return nil
}

func (s *userStore) DeleteByID(ctx context.Context, id string) (*store.User, error) {
	return s.c.delete(id)
}

type blogStore struct {
	c *collection[store.Blog]
}

func (s *blogStore) FindByID(ctx context.Context, id string) (*store.Blog, error) {
	return s.c.get(id)
}

func (s *blogStore) FindMany(ctx context.Context, f store.BlogFilter) ([]store.Blog, error) {
	return s.c.find(func(b store.Blog) bool {
		return eq(f.AuthorID, b.AuthorID)
	}), nil
}

func (s *blogStore) Insert(ctx context.Context, b *store.Blog) error {
	rec, err := s.c.insert(*b, func(r *store.Blog, id string) { r.ID = id }, nil)
	if err != nil {
		return err
	}
	*b = rec
	return nil
}

func (s *blogStore) UpdateByID(ctx context.Context, id string, patch store.BlogPatch) (*store.Blog, error) {
	return s.c.update(id, func(b *store.Blog) {
		if patch.Title != nil {
			b.Title = *patch.Title
		}
		if patch.Content != nil {
			b.Content = *patch.Content
		}
	})
}

func (s *blogStore) DeleteByID(ctx context.Context, id string) (*store.Blog, error) {
	return s.c.delete(id)
}

type readerStore struct {
	c      *collection[store.BlogReader]
	unique bool
}

func (s *readerStore) FindMany(ctx context.Context, f store.ReaderFilter) ([]store.BlogReader, error) {
	return s.c.find(func(r store.BlogReader) bool {
		return eq(f.BlogID, r.BlogID) && eq(f.UserID, r.UserID)
	}), nil
}

func (s *readerStore) Insert(ctx context.Context, r *store.BlogReader) error {
	var exists func(store.BlogReader) bool
	if s.unique {
		exists = func(o store.BlogReader) bool { return o.BlogID == r.BlogID && o.UserID == r.UserID }
	}

	rec, err := s.c.insert(*r, func(rec *store.BlogReader, id string) { rec.ID = id }, exists)
	if err != nil {
		return err
	}
	*r = rec
	return nil
}

type voteStore struct {
	c      *collection[store.BlogVote]
	unique bool
}

func (s *voteStore) FindMany(ctx context.Context, f store.VoteFilter) ([]store.BlogVote, error) {
	return s.c.find(func(v store.BlogVote) bool {
		return eq(f.BlogID, v.BlogID) && eq(f.UserID, v.UserID) && eq(f.Vote, v.Vote)
	}), nil
}

func (s *voteStore) Insert(ctx context.Context, v *store.BlogVote) error {
	var exists func(store.BlogVote) bool
	if s.unique {
		exists = func(o store.BlogVote) bool { return o.BlogID == v.BlogID && o.UserID == v.UserID }
	}

	rec, err := s.c.insert(*v, func(rec *store.BlogVote, id string) { rec.ID = id }, exists)
	if err != nil {
		return err
	}
	*v = rec
	return nil
}

func (s *voteStore) UpdateByID(ctx context.Context, id string, vote string) (*store.BlogVote, error) {
	return s.c.update(id, func(v *store.BlogVote) {
		v.Vote = vote
	})
}
