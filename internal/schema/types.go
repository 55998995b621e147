// Package schema declares the blog graph: the User, Blog, BlogReaders and BlogVote object
// types and the root query and mutation catalogs backed by the user and blog services.
package schema

import (
	"context"
	"errors"

	"github.com/sushihentaime/bloggraph/internal/blogservice"
	"github.com/sushihentaime/bloggraph/internal/common"
	"github.com/sushihentaime/bloggraph/internal/graph"
	"github.com/sushihentaime/bloggraph/internal/store"
	"github.com/sushihentaime/bloggraph/internal/userservice"
)

const (
	TypeUser        = "User"
	TypeBlog        = "Blog"
	TypeBlogReaders = "BlogReaders"
	TypeBlogVote    = "BlogVote"
)

type resolver struct {
	users *userservice.UserService
	blogs *blogservice.BlogService
}

// New builds the schema over the given services.
func New(users *userservice.UserService, blogs *blogservice.BlogService, opts ...graph.Option) *graph.Schema {
	r := &resolver{users: users, blogs: blogs}
	s := graph.NewSchema(opts...)

	s.Object(TypeUser, r.userFields)
	s.Object(TypeBlog, r.blogFields)
	s.Object(TypeBlogReaders, r.readerFields)
	s.Object(TypeBlogVote, r.voteFields)

	r.queries(s)
	r.mutations(s)

	return s
}

func (r *resolver) userFields() []*graph.Field {
	return []*graph.Field{
		graph.Prop("id", graph.ID, func(u *store.User) any { return u.ID }),
		graph.Prop("name", graph.String, func(u *store.User) any { return u.Name }),
		graph.Prop("username", graph.String, func(u *store.User) any { return u.Username }),
		graph.Prop("email", graph.String, func(u *store.User) any { return u.Email }),
		graph.Prop("bio", graph.String, func(u *store.User) any { return u.Bio }),
		graph.Prop("profilePic", graph.String, func(u *store.User) any { return u.ProfilePic }),
		graph.Prop("isAuthor", graph.Boolean, func(u *store.User) any { return u.IsAuthor }),
		graph.Relation("authoredBlogs", graph.ListOf(TypeBlog), func(ctx context.Context, u *store.User) (any, error) {
			return list(r.blogs.GetBlogsByAuthor(ctx, u.ID))
		}),
		graph.Relation("reads", graph.ListOf(TypeBlogReaders), func(ctx context.Context, u *store.User) (any, error) {
			return list(r.blogs.GetReadsByUser(ctx, u.ID))
		}),
	}
}

func (r *resolver) blogFields() []*graph.Field {
	return []*graph.Field{
		graph.Prop("id", graph.ID, func(b *store.Blog) any { return b.ID }),
		graph.Prop("title", graph.String, func(b *store.Blog) any { return b.Title }),
		graph.Prop("content", graph.String, func(b *store.Blog) any { return b.Content }),
		graph.Prop("authorId", graph.ID, func(b *store.Blog) any { return b.AuthorID }),
		graph.Relation("author", graph.Named(TypeUser), func(ctx context.Context, b *store.Blog) (any, error) {
			return r.userRef(ctx, b.AuthorID)
		}),
	}
}

func (r *resolver) readerFields() []*graph.Field {
	return []*graph.Field{
		graph.Prop("id", graph.ID, func(br *store.BlogReader) any { return br.ID }),
		graph.Prop("blogId", graph.ID, func(br *store.BlogReader) any { return br.BlogID }),
		graph.Prop("userId", graph.ID, func(br *store.BlogReader) any { return br.UserID }),
		graph.Relation("blog", graph.Named(TypeBlog), func(ctx context.Context, br *store.BlogReader) (any, error) {
			return r.blogRef(ctx, br.BlogID)
		}),
		graph.Relation("user", graph.Named(TypeUser), func(ctx context.Context, br *store.BlogReader) (any, error) {
			return r.userRef(ctx, br.UserID)
		}),
	}
}

func (r *resolver) voteFields() []*graph.Field {
	return []*graph.Field{
		graph.Prop("id", graph.ID, func(v *store.BlogVote) any { return v.ID }),
		graph.Prop("blogId", graph.ID, func(v *store.BlogVote) any { return v.BlogID }),
		graph.Prop("userId", graph.ID, func(v *store.BlogVote) any { return v.UserID }),
		graph.Prop("vote", graph.String, func(v *store.BlogVote) any { return v.Vote }),
		graph.Relation("blog", graph.Named(TypeBlog), func(ctx context.Context, v *store.BlogVote) (any, error) {
			return r.blogRef(ctx, v.BlogID)
		}),
		graph.Relation("user", graph.Named(TypeUser), func(ctx context.Context, v *store.BlogVote) (any, error) {
			return r.userRef(ctx, v.UserID)
		}),
	}
}

// userRef follows a reference to a user. A dangling reference resolves to no result.
func (r *resolver) userRef(ctx context.Context, id string) (any, error) {
	if id == "" {
		return nil, nil
	}
	return lookup(r.users.GetUser(ctx, id))
}

func (r *resolver) blogRef(ctx context.Context, id string) (any, error) {
	if id == "" {
		return nil, nil
	}
	return lookup(r.blogs.GetBlog(ctx, id))
}

// lookup maps a missing record to no result.
func lookup[T any](rec *T, err error) (any, error) {
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fieldError(err)
	}
	return rec, nil
}

func list[T any](recs []T, err error) (any, error) {
	if err != nil {
		return nil, fieldError(err)
	}
	return recs, nil
}

func record[T any](rec *T, err error) (any, error) {
	if err != nil {
		return nil, fieldError(err)
	}
	if rec == nil {
		return nil, nil
	}
	return rec, nil
}

// fieldError classifies a service error into the kind reported on the response.
func fieldError(err error) error {
	var verr common.ValidationError

	switch {
	case errors.Is(err, store.ErrRecordNotFound):
		return graph.Errorf(graph.KindNotFound, "record not found")
	case errors.Is(err, store.ErrConflict):
		return graph.Errorf(graph.KindConflict, "record already exists")
	case errors.As(err, &verr):
		return graph.Errorf(graph.KindValidationFailure, "%s", verr.Error())
	default:
		return graph.Errorf(graph.KindStorageFailure, "%s", err.Error())
	}
}
