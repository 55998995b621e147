// Package pgstore implements the collections on top of Postgres. The schema lives in
// migrations/.
package pgstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sushihentaime/bloggraph/internal/store"
)

func New(db *sql.DB) *store.Store {
	return &store.Store{
		Users:   &UserModel{db: db},
		Blogs:   &BlogModel{db: db},
		Readers: &ReaderModel{db: db},
		Votes:   &VoteModel{db: db},
	}
}

// UniqueViolation reports whether err is a unique constraint error on the named constraint.
func UniqueViolation(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == "23505" && pqErr.Constraint == name {
			return true
		}
	}

	return false
}

// where builds a WHERE clause from column/value pairs, skipping nil values.
type where struct {
	clauses []string
	args    []any
}

func (w *where) eq(column string, value any) {
	switch v := value.(type) {
	case *string:
		if v == nil {
			return
		}
		value = *v
	case *bool:
		if v == nil {
			return
		}
		value = *v
	}

	w.args = append(w.args, value)
	w.clauses = append(w.clauses, fmt.Sprintf("%s = $%d", column, len(w.args)))
}

func (w *where) String() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(w.clauses, " AND ")
}

func affectedOne(res sql.Result) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows != 1 {
		switch {
		case rows == 0:
			return store.ErrRecordNotFound
		default:
			return fmt.Errorf("expected 1 row to be affected, got %d", rows)
		}
	}

	return nil
}

type UserModel struct {
	db *sql.DB
}

const userColumns = "id, name, username, email, bio, profile_pic, is_author"

func scanUser(row interface{ Scan(...any) error }) (*store.User, error) {
	var u store.User
	err := row.Scan(&u.ID, &u.Name, &u.Username, &u.Email, &u.Bio, &u.ProfilePic, &u.IsAuthor)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (m *UserModel) FindByID(ctx context.Context, id string) (*store.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1`

	u, err := scanUser(m.db.QueryRowContext(ctx, query, id))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, store.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return u, nil
}

func (m *UserModel) FindMany(ctx context.Context, f store.UserFilter) ([]store.User, error) {
	var w where
	w.eq("is_author", f.IsAuthor)

	query := `
		SELECT ` + userColumns + `
		FROM users
		` + w.String() + `
		ORDER BY seq`

	rows, err := m.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []store.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func (m *UserModel) Insert(ctx context.Context, u *store.User) error {
	query := `
		INSERT INTO users (id, name, username, email, bio, profile_pic, is_author)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	id := uuid.NewString()
	_, err := m.db.ExecContext(ctx, query, id, u.Name, u.Username, u.Email, u.Bio, u.ProfilePic, u.IsAuthor)
	if err != nil {
		return err
	}

	u.ID = id
	return nil
}

func (m *UserModel) DeleteByID(ctx context.Context, id string) (*store.User, error) {
	query := `
		DELETE FROM users
		WHERE id = $1
		RETURNING ` + userColumns

	u, err := scanUser(m.db.QueryRowContext(ctx, query, id))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, store.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return u, nil
}

type BlogModel struct {
	db *sql.DB
}

const blogColumns = "id, title, content, author_id"

func scanBlog(row interface{ Scan(...any) error }) (*store.Blog, error) {
	var b store.Blog
	err := row.Scan(&b.ID, &b.Title, &b.Content, &b.AuthorID)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (m *BlogModel) FindByID(ctx context.Context, id string) (*store.Blog, error) {
	query := `
		SELECT ` + blogColumns + `
		FROM blogs
		WHERE id = $1`

	b, err := scanBlog(m.db.QueryRowContext(ctx, query, id))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, store.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return b, nil
}

func (m *BlogModel) FindMany(ctx context.Context, f store.BlogFilter) ([]store.Blog, error) {
	var w where
	w.eq("author_id", f.AuthorID)

	query := `
		SELECT ` + blogColumns + `
		FROM blogs
		` + w.String() + `
		ORDER BY seq`

	rows, err := m.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blogs []store.Blog
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, *b)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return blogs, nil
}

func (m *BlogModel) Insert(ctx context.Context, b *store.Blog) error {
	query := `
		INSERT INTO blogs (id, title, content, author_id)
		VALUES ($1, $2, $3, $4)`

	id := uuid.NewString()
	_, err := m.db.ExecContext(ctx, query, id, b.Title, b.Content, b.AuthorID)
	if err != nil {
		return err
	}

	b.ID = id
	return nil
}

// UpdateByID only touches the columns set in the patch.
func (m *BlogModel) UpdateByID(ctx context.Context, id string, patch store.BlogPatch) (*store.Blog, error) {
	query := `
		UPDATE blogs
		SET title = COALESCE($1::text, title), content = COALESCE($2::text, content)
		WHERE id = $3
		RETURNING ` + blogColumns

	var title, content sql.NullString
	if patch.Title != nil {
		title = sql.NullString{String: *patch.Title, Valid: true}
	}
	if patch.Content != nil {
		content = sql.NullString{String: *patch.Content, Valid: true}
	}

	b, err := scanBlog(m.db.QueryRowContext(ctx, query, title, content, id))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, store.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return b, nil
}

func (m *BlogModel) DeleteByID(ctx context.Context, id string) (*store.Blog, error) {
	query := `
		DELETE FROM blogs
		WHERE id = $1
		RETURNING ` + blogColumns

	b, err := scanBlog(m.db.QueryRowContext(ctx, query, id))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, store.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return b, nil
}

type ReaderModel struct {
	db *sql.DB
}

func (m *ReaderModel) FindMany(ctx context.Context, f store.ReaderFilter) ([]store.BlogReader, error) {
	var w where
	w.eq("blog_id", f.BlogID)
	w.eq("user_id", f.UserID)

	query := `
		SELECT id, blog_id, user_id
		FROM blog_readers
		` + w.String() + `
		ORDER BY seq`

	rows, err := m.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var readers []store.BlogReader
	for rows.Next() {
		var r store.BlogReader
		err := rows.Scan(&r.ID, &r.BlogID, &r.UserID)
		if err != nil {
			return nil, err
		}
		readers = append(readers, r)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return readers, nil
}

func (m *ReaderModel) Insert(ctx context.Context, r *store.BlogReader) error {
	query := `
		INSERT INTO blog_readers (id, blog_id, user_id)
		VALUES ($1, $2, $3)`

	id := uuid.NewString()
	_, err := m.db.ExecContext(ctx, query, id, r.BlogID, r.UserID)
	if err != nil {
		switch {
		case UniqueViolation(err, "blog_readers_pair_key"):
			return store.ErrConflict
		default:
			return err
		}
	}

	r.ID = id
	return nil
}

type VoteModel struct {
	db *sql.DB
}

func (m *VoteModel) FindMany(ctx context.Context, f store.VoteFilter) ([]store.BlogVote, error) {
	var w where
	w.eq("blog_id", f.BlogID)
	w.eq("user_id", f.UserID)
	w.eq("vote", f.Vote)

	query := `
		SELECT id, blog_id, user_id, vote
		FROM blog_votes
		` + w.String() + `
		ORDER BY seq`

	rows, err := m.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var votes []store.BlogVote
	for rows.Next() {
		var v store.BlogVote
		err := rows.Scan(&v.ID, &v.BlogID, &v.UserID, &v.Vote)
		if err != nil {
			return nil, err
		}
		votes = append(votes, v)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return votes, nil
}

func (m *VoteModel) Insert(ctx context.Context, v *store.BlogVote) error {
	query := `
		INSERT INTO blog_votes (id, blog_id, user_id, vote)
		VALUES ($1, $2, $3, $4)`

	id := uuid.NewString()
	_, err := m.db.ExecContext(ctx, query, id, v.BlogID, v.UserID, v.Vote)
	if err != nil {
		switch {
		case UniqueViolation(err, "blog_votes_pair_key"):
			return store.ErrConflict
		default:
			return err
		}
	}

	v.ID = id
	return nil
}

func (m *VoteModel) UpdateByID(ctx context.Context, id string, vote string) (*store.BlogVote, error) {
	query := `
		UPDATE blog_votes
		SET vote = $1
		WHERE id = $2`

	res, err := m.db.ExecContext(ctx, query, vote, id)
	if err != nil {
		return nil, err
	}

	if err := affectedOne(res); err != nil {
		return nil, err
	}

	var v store.BlogVote
	err = m.db.QueryRowContext(ctx, "SELECT id, blog_id, user_id, vote FROM blog_votes WHERE id = $1", id).Scan(&v.ID, &v.BlogID, &v.UserID, &v.Vote)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, store.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &v, nil
}
