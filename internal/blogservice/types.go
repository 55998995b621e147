package blogservice

import (
	"log/slog"

	"github.com/sushihentaime/bloggraph/internal/common"
	"github.com/sushihentaime/bloggraph/internal/store"
)

type BlogService struct {
	blogs   store.BlogStore
	readers store.ReaderStore
	votes   store.VoteStore
	mb      common.MessageProducer
	logger  *slog.Logger
}

type CreateBlogRequest struct {
	Title string `json:"title"`
	// Content is stored in Markdown format.
	Content  string `json:"content"`
	AuthorID string `json:"authorId"`
}

// UpdateBlogRequest changes only the fields that are set.
type UpdateBlogRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}
