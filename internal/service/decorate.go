package service

import (
	"context"

	"github.com/openwave-social/openwave/internal/domain"
	"github.com/openwave-social/openwave/internal/repository"
)

// decorateUsers converts users into API responses with follower counts and
// the viewer-relative is_following flag. viewerID may be empty.
func decorateUsers(ctx context.Context, usersRepo repository.UserRepository, followsRepo repository.FollowRepository, viewerID string, users []domain.User) ([]domain.UserResponse, error) {
	responses := make([]domain.UserResponse, 0, len(users))
	if len(users) == 0 {
		return responses, nil
	}

	ids := make([]string, 0, len(users))
	for i := range users {
		ids = append(ids, users[i].ID)
	}

	stats, err := usersRepo.BatchGetStats(ctx, ids)
	if err != nil {
		return nil, err
	}

	following, err := followsRepo.BatchIsFollowing(ctx, viewerID, ids)
	if err != nil {
		return nil, err
	}

	for i := range users {
		resp := users[i].ToResponse()
		resp.UserStats = stats[users[i].ID]
		resp.IsFollowing = following[users[i].ID]
		responses = append(responses, resp)
	}
	return responses, nil
}
