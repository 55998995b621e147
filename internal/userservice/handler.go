package userservice

import (
	"context"
	"log/slog"

	"github.com/sushihentaime/bloggraph/internal/common"
	"github.com/sushihentaime/bloggraph/internal/store"
)

// NewUserService returns a service over s. A nil mb drops every event.
func NewUserService(s store.UserStore, mb common.MessageProducer, logger *slog.Logger) *UserService {
	if mb == nil {
		mb = common.NoopProducer{}
	}

	return &UserService{
		s:      s,
		mb:     mb,
		logger: logger,
	}
}

// CreateUser stores a new user and publishes a user.created event.
func (s *UserService) CreateUser(ctx context.Context, req *CreateUserRequest) (*store.User, error) {
	u := store.User{
		Name:       req.Name,
		Username:   req.Username,
		Email:      req.Email,
		Bio:        req.Bio,
		ProfilePic: req.ProfilePic,
		IsAuthor:   req.IsAuthor,
	}

	err := s.s.Insert(ctx, &u)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, common.UserCreatedKey, u)

	return &u, nil
}

// GetUser returns store.ErrRecordNotFound when no user has the id. Any id is accepted, so a
// malformed reference reads as a missing record.
func (s *UserService) GetUser(ctx context.Context, id string) (*store.User, error) {
	return s.s.FindByID(ctx, id)
}

func (s *UserService) GetUsers(ctx context.Context) ([]store.User, error) {
	return s.s.FindMany(ctx, store.UserFilter{})
}

// GetAuthors returns the users flagged as authors.
func (s *UserService) GetAuthors(ctx context.Context) ([]store.User, error) {
	return s.s.FindMany(ctx, store.UserFilter{IsAuthor: store.BoolPtr(true)})
}

// DeleteUser removes the user and returns it. Blogs, reads and votes referring to the user are kept.
func (s *UserService) DeleteUser(ctx context.Context, id string) (*store.User, error) {
	v := common.NewValidator()
	v.CheckID(id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	u, err := s.s.DeleteByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, common.UserDeletedKey, u)

	return u, nil
}

func (s *UserService) publish(ctx context.Context, key common.BindingKey, v any) {
	err := common.PublishEvent(ctx, s.mb, key, v)
	if err != nil {
		s.logger.Error("could not publish event", slog.String("key", string(key)), slog.String("error", err.Error()))
	}
}
