package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/interiorfitout/backoffice/internal/core/domain"
	"github.com/interiorfitout/backoffice/internal/core/ports"
)

type DashboardService struct {
	counter ports.ContentCounter
}

func NewDashboardService(counter ports.ContentCounter) *DashboardService {
	return &DashboardService{counter: counter}
}

// Stats counts every content collection in parallel.
func (s *DashboardService) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	var stats domain.DashboardStats

	g, ctx := errgroup.WithContext(ctx)
	count := func(dst *int64, collection string, filter map[string]any) {
		g.Go(func() error {
			n, err := s.counter.Count(ctx, collection, filter)
			if err != nil {
				return err
			}
			*dst = n
			return nil
		})
	}

	count(&stats.Blogs, domain.CollectionBlogs, nil)
	count(&stats.PublishedBlogs, domain.CollectionBlogs, map[string]any{"published": true})
	count(&stats.Projects, domain.CollectionProjects, nil)
	count(&stats.Clients, domain.CollectionClients, nil)
	count(&stats.HeroImages, domain.CollectionHeroImages, nil)
	count(&stats.Enquiries, domain.CollectionEnquiries, nil)
	count(&stats.NewEnquiries, domain.CollectionEnquiries, map[string]any{"status": string(domain.EnquiryNew)})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &stats, nil
}
