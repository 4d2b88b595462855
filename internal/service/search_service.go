package service

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/openwave-social/openwave/internal/domain"
	"github.com/openwave-social/openwave/internal/repository"
	"github.com/openwave-social/openwave/pkg/log"
)

// Result caps per resource kind.
const (
	searchUserLimit = 10
	searchPostLimit = 20
)

// searchServiceImpl implements SearchService.
type searchServiceImpl struct {
	users   repository.UserRepository
	posts   repository.PostRepository
	follows repository.FollowRepository
}

// NewSearchService creates a new search service.
func NewSearchService(users repository.UserRepository, posts repository.PostRepository, follows repository.FollowRepository) SearchService {
	return &searchServiceImpl{users: users, posts: posts, follows: follows}
}

// Search runs the user and post lookups concurrently and merges the hits.
func (s *searchServiceImpl) Search(ctx context.Context, viewerID, query string) (*SearchResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	var (
		userHits []domain.User
		postHits []domain.Post
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hits, err := s.users.Search(gctx, query, searchUserLimit)
		if err != nil {
			return err
		}
		userHits = hits
		return nil
	})
	g.Go(func() error {
		hits, err := s.posts.Search(gctx, query, searchPostLimit)
		if err != nil {
			return err
		}
		postHits = hits
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	users, err := decorateUsers(ctx, s.users, s.follows, viewerID, userHits)
	if err != nil {
		return nil, err
	}

	if postHits == nil {
		postHits = []domain.Post{}
	}

	log.Ctx(ctx).Debug().
		Str("query", query).
		Int("user_hits", len(users)).
		Int("post_hits", len(postHits)).
		Msg("search completed")

	return &SearchResponse{Users: users, Posts: postHits}, nil
}
