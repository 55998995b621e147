package userservice

import (
	"log/slog"

	"github.com/sushihentaime/bloggraph/internal/common"
	"github.com/sushihentaime/bloggraph/internal/store"
)

type UserService struct {
	s      store.UserStore
	mb     common.MessageProducer
	logger *slog.Logger
}

type CreateUserRequest struct {
	Name       string `json:"name"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Bio        string `json:"bio"`
	ProfilePic string `json:"profilePic"`
	IsAuthor   bool   `json:"isAuthor"`
}
