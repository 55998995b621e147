package blogservice

import (
	"github.com/sushihentaime/bloggraph/internal/common"
	"github.com/sushihentaime/bloggraph/internal/store"
)

func validateVote(v *common.Validator, vote string) {
	v.Check(vote != "", "vote", "must be provided")
	v.Check(common.PermittedValue(vote, store.VoteUp, store.VoteDown), "vote", "must be either upvote or downvote")
}
