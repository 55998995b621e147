package schema

import (
	"context"

	"github.com/sushihentaime/bloggraph/internal/blogservice"
	"github.com/sushihentaime/bloggraph/internal/graph"
	"github.com/sushihentaime/bloggraph/internal/store"
	"github.com/sushihentaime/bloggraph/internal/userservice"
)

func required(name, typ string) graph.ArgDef {
	return graph.ArgDef{Name: name, Type: typ, Required: true}
}

func optional(name, typ string) graph.ArgDef {
	return graph.ArgDef{Name: name, Type: typ}
}

func (r *resolver) queries(s *graph.Schema) {
	s.Query(&graph.RootField{
		Name: "user",
		Type: graph.Named(TypeUser),
		Args: []graph.ArgDef{required("id", graph.ID)},
		Resolve: func(ctx context.Context, args graph.Args) (any, error) {
			return lookup(r.users.GetUser(ctx, args.String("id")))
		},
	})
	s.Query(&graph.RootField{
		Name: "users",
		Type: graph.ListOf(TypeUser),
		Resolve: func(ctx context.Context, _ graph.Args) (any, error) {
			return list(r.users.GetUsers(ctx))
		},
	})
	s.Query(&graph.RootField{
		Name: "authors",
		Type: graph.ListOf(TypeUser),
		Resolve: func(ctx context.Context, _ graph.Args) (any, error) {
			return list(r.users.GetAuthors(ctx))
		},
	})

	s.Query(&graph.RootField{
		Name: "blog",
		Type: graph.Named(TypeBlog),
		Args: []graph.ArgDef{required("id", graph.ID)},
		Resolve: func(ctx context.Context, args graph.Args) (any, error) {
			return lookup(r.blogs.GetBlog(ctx, args.String("id")))
		},
	})
	s.Query(&graph.RootField{
		Name: "blogs",
		Type: graph.ListOf(TypeBlog),
		Resolve: func(ctx context.Context, _ graph.Args) (any, error) {
			return list(r.blogs.GetBlogs(ctx))
		},
	})

	s.Query(&graph.RootField{
		Name: "blogReaders",
		Type: graph.ListOf(TypeBlogReaders),
		Args: []graph.ArgDef{required("blogId", graph.ID)},
		Resolve: func(ctx context.Context, args graph.Args) (any, error) {
			return list(r.blogs.GetReaders(ctx, args.String("blogId")))
		},
	})
	s.Query(&graph.RootField{
		Name: "userReads",
		Type: graph.ListOf(TypeBlogReaders),
		Args: []graph.ArgDef{required("userId", graph.ID)},
		Resolve: func(ctx context.Context, args graph.Args) (any, error) {
			return list(r.blogs.GetReadsByUser(ctx, args.String("userId")))
		},
	})

	blogVotes := func(name, vote string) {
		s.Query(&graph.RootField{
			Name: name,
			Type: graph.ListOf(TypeBlogVote),
			Args: []graph.ArgDef{required("blogId", graph.ID)},
			Resolve: func(ctx context.Context, args graph.Args) (any, error) {
				return list(r.blogs.GetVotes(ctx, args.String("blogId"), vote))
			},
		})
	}
	blogVotes("getAllBlogVotes", "")
	blogVotes("getAllBlogUpVotes", store.VoteUp)
	blogVotes("getAllBlogDownVotes", store.VoteDown)

	// these return the vote records, not the blogs they point to
	userVotes := func(name, vote string) {
		s.Query(&graph.RootField{
			Name: name,
			Type: graph.ListOf(TypeBlogVote),
			Args: []graph.ArgDef{required("userId", graph.ID)},
			Resolve: func(ctx context.Context, args graph.Args) (any, error) {
				return list(r.blogs.GetVotesByUser(ctx, args.String("userId"), vote))
			},
		})
	}
	userVotes("getUserUpVotedBlogs", store.VoteUp)
	userVotes("getUserDownVotedBlogs", store.VoteDown)
}

func (r *resolver) mutations(s *graph.Schema) {
	s.Mutation(&graph.RootField{
		Name: "addUser",
		Type: graph.Named(TypeUser),
		Args: []graph.ArgDef{
			optional("name", graph.String),
			optional("username", graph.String),
			optional("email", graph.String),
			optional("bio", graph.String),
			optional("profilePic", graph.String),
			optional("isAuthor", graph.Boolean),
		},
		Resolve: func(ctx context.Context, args graph.Args) (any, error) {
			return record(r.users.CreateUser(ctx, &userservice.CreateUserRequest{
				Name:       args.String("name"),
				Username:   args.String("username"),
				Email:      args.String("email"),
				Bio:        args.String("bio"),
				ProfilePic: args.String("profilePic"),
				IsAuthor:   args.Bool("isAuthor"),
			}))
		},
	})
	s.Mutation(&graph.RootField{
		Name: "deleteUser",
		Type: graph.Named(TypeUser),
		Args: []graph.ArgDef{required("id", graph.ID)},
		Resolve: func(ctx context.Context, args graph.Args) (any, error) {
			return record(r.users.DeleteUser(ctx, args.String("id")))
		},
	})

	s.Mutation(&graph.RootField{
		Name: "createBlog",
		Type: graph.Named(TypeBlog),
		Args: []graph.ArgDef{
			optional("title", graph.String),
			optional("content", graph.String),
			optional("authorId", graph.ID),
		},
		Resolve: func(ctx context.Context, args graph.Args) (any, error) {
			return record(r.blogs.CreateBlog(ctx, &blogservice.CreateBlogRequest{
				Title:    args.String("title"),
				Content:  args.String("content"),
				AuthorID: args.String("authorId"),
			}))
		},
	})
	s.Mutation(&graph.RootField{
		Name: "updateBlog",
		Type: graph.Named(TypeBlog),
		Args: []graph.ArgDef{
			required("id", graph.ID),
			optional("title", graph.String),
			optional("content", graph.String),
		},
		Resolve: func(ctx context.Context, args graph.Args) (any, error) {
			return record(r.blogs.UpdateBlog(ctx, args.String("id"), &blogservice.UpdateBlogRequest{
				Title:   args.StringPtr("title"),
				Content: args.StringPtr("content"),
			}))
		},
	})
	s.Mutation(&graph.RootField{
		Name: "deleteBlog",
		Type: graph.Named(TypeBlog),
		Args: []graph.ArgDef{required("id", graph.ID)},
		Resolve: func(ctx context.Context, args graph.Args) (any, error) {
			return record(r.blogs.DeleteBlog(ctx, args.String("id")))
		},
	})

	s.Mutation(&graph.RootField{
		Name: "addBlogReader",
		Type: graph.Named(TypeBlogReaders),
		Args: []graph.ArgDef{required("blogId", graph.ID), required("userId", graph.ID)},
		Resolve: func(ctx context.Context, args graph.Args) (any, error) {
			return record(r.blogs.AddReader(ctx, args.String("blogId"), args.String("userId")))
		},
	})
	s.Mutation(&graph.RootField{
		Name: "makeVote",
		Type: graph.Named(TypeBlogVote),
		Args: []graph.ArgDef{required("blogId", graph.ID), required("userId", graph.ID), optional("vote", graph.String)},
		Resolve: func(ctx context.Context, args graph.Args) (any, error) {
			return record(r.blogs.MakeVote(ctx, args.String("blogId"), args.String("userId"), args.String("vote")))
		},
	})
}
