package blogservice

import (
	"context"
	"errors"
	"log/slog"

	"github.com/sushihentaime/bloggraph/internal/common"
	"github.com/sushihentaime/bloggraph/internal/store"
)

// NewBlogService returns a service over the blog, reader and vote collections of st. A nil
// mb drops every event.
func NewBlogService(st *store.Store, mb common.MessageProducer, logger *slog.Logger) *BlogService {
	if mb == nil {
		mb = common.NoopProducer{}
	}

	return &BlogService{
		blogs:   st.Blogs,
		readers: st.Readers,
		votes:   st.Votes,
		mb:      mb,
		logger:  logger,
	}
}

// CreateBlog stores a new blog post. The author is not looked up.
func (s *BlogService) CreateBlog(ctx context.Context, req *CreateBlogRequest) (*store.Blog, error) {
	b := store.Blog{
		Title:    req.Title,
		Content:  req.Content,
		AuthorID: req.AuthorID,
	}

	err := s.blogs.Insert(ctx, &b)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, common.BlogCreatedKey, b)

	return &b, nil
}

// GetBlog returns store.ErrRecordNotFound when no blog has the id. Any id is accepted, so a
// malformed reference reads as a missing record.
func (s *BlogService) GetBlog(ctx context.Context, id string) (*store.Blog, error) {
	return s.blogs.FindByID(ctx, id)
}

func (s *BlogService) GetBlogs(ctx context.Context) ([]store.Blog, error) {
	return s.blogs.FindMany(ctx, store.BlogFilter{})
}

func (s *BlogService) GetBlogsByAuthor(ctx context.Context, authorID string) ([]store.Blog, error) {
	return s.blogs.FindMany(ctx, store.BlogFilter{AuthorID: &authorID})
}

// UpdateBlog changes the title and/or content of a blog post and returns the result.
func (s *BlogService) UpdateBlog(ctx context.Context, id string, req *UpdateBlogRequest) (*store.Blog, error) {
	v := common.NewValidator()
	v.CheckID(id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	b, err := s.blogs.UpdateByID(ctx, id, store.BlogPatch{Title: req.Title, Content: req.Content})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, common.BlogUpdatedKey, b)

	return b, nil
}

// DeleteBlog removes a blog post and returns it. Reads and votes of the post are kept.
func (s *BlogService) DeleteBlog(ctx context.Context, id string) (*store.Blog, error) {
	v := common.NewValidator()
	v.CheckID(id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	b, err := s.blogs.DeleteByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, common.BlogDeletedKey, b)

	return b, nil
}

// AddReader records that userID read blogID. When the pair is already recorded nothing
// changes and both return values are nil.
func (s *BlogService) AddReader(ctx context.Context, blogID, userID string) (*store.BlogReader, error) {
	v := common.NewValidator()
	v.CheckID(blogID, "blogId")
	v.CheckID(userID, "userId")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	existing, err := s.readers.FindMany(ctx, store.ReaderFilter{BlogID: &blogID, UserID: &userID})
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, nil
	}

	r := store.BlogReader{BlogID: blogID, UserID: userID}
	err = s.readers.Insert(ctx, &r)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrConflict):
			// a concurrent request stored the pair first
			return nil, nil
		default:
			return nil, err
		}
	}

	s.publish(ctx, common.BlogReadKey, r)

	return &r, nil
}

func (s *BlogService) GetReaders(ctx context.Context, blogID string) ([]store.BlogReader, error) {
	return s.readers.FindMany(ctx, store.ReaderFilter{BlogID: &blogID})
}

func (s *BlogService) GetReadsByUser(ctx context.Context, userID string) ([]store.BlogReader, error) {
	return s.readers.FindMany(ctx, store.ReaderFilter{UserID: &userID})
}

// MakeVote records the vote of userID on blogID, replacing an earlier vote of the same
// user. A vote other than upvote or downvote is rejected before any lookup.
func (s *BlogService) MakeVote(ctx context.Context, blogID, userID, vote string) (*store.BlogVote, error) {
	v := common.NewValidator()
	v.CheckID(blogID, "blogId")
	v.CheckID(userID, "userId")
	validateVote(v, vote)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	existing, err := s.votes.FindMany(ctx, store.VoteFilter{BlogID: &blogID, UserID: &userID})
	if err != nil {
		return nil, err
	}

	var bv *store.BlogVote
	if len(existing) > 0 {
		bv, err = s.votes.UpdateByID(ctx, existing[0].ID, vote)
		if err != nil {
			return nil, err
		}
	} else {
		bv = &store.BlogVote{BlogID: blogID, UserID: userID, Vote: vote}
		err = s.votes.Insert(ctx, bv)
		if err != nil {
			return nil, err
		}
	}

	s.publish(ctx, common.BlogVotedKey, bv)

	return bv, nil
}

// GetVotes returns the votes on blogID. An empty vote matches both values.
func (s *BlogService) GetVotes(ctx context.Context, blogID, vote string) ([]store.BlogVote, error) {
	f := store.VoteFilter{BlogID: &blogID}
	if vote != "" {
		f.Vote = &vote
	}
	return s.votes.FindMany(ctx, f)
}

// GetVotesByUser returns the votes userID cast with the given value.
func (s *BlogService) GetVotesByUser(ctx context.Context, userID, vote string) ([]store.BlogVote, error) {
	return s.votes.FindMany(ctx, store.VoteFilter{UserID: &userID, Vote: &vote})
}

func (s *BlogService) publish(ctx context.Context, key common.BindingKey, v any) {
	err := common.PublishEvent(ctx, s.mb, key, v)
	if err != nil {
		s.logger.Error("could not publish event", slog.String("key", string(key)), slog.String("error", err.Error()))
	}
}
