package follow

import (
	"context"
	"fmt"

	"fintalkweb/internal/backend"
)

// RelationshipClient is the slice of the backend API the follow components
// consume. The production implementation is a viewer-scoped backend client.
type RelationshipClient interface {
	CheckStatus(ctx context.Context, subjectID int64) (backend.RelationshipStatus, error)
	Follow(ctx context.Context, subjectID int64) (backend.RelationshipStatus, error)
	Unfollow(ctx context.Context, subjectID int64) (backend.RelationshipStatus, error)
	ListFollowers(ctx context.Context, subjectID int64, page int) (backend.ConnectionPage, error)
	ListFollowing(ctx context.Context, subjectID int64, page int) (backend.ConnectionPage, error)
}

type Action string

const (
	ActionFollowed   Action = "followed"
	ActionUnfollowed Action = "unfollowed"
)

// EdgeChange is the payload handed to the toggle's observer after every
// successful follow or unfollow.
type EdgeChange struct {
	SubjectUserID  int64  `json:"subject_user_id"`
	IsFollowing    bool   `json:"is_following"`
	FollowersCount int    `json:"followers_count"`
	Action         Action `json:"action"`
}

// FollowerCountLabel renders the count element. Zero renders nothing at all,
// one gets the singular unit.
func FollowerCountLabel(count int) string {
	switch {
	case count <= 0:
		return ""
	case count == 1:
		return "1 follower"
	default:
		return fmt.Sprintf("%d followers", count)
	}
}
