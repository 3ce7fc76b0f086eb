package projects

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophfolio/internal/client/models"
)

// DefaultSampleDelay mimics a round trip to a slow backend.
const DefaultSampleDelay = time.Second

// SampleRepository simulates the portfolio backend: after a delay it returns a
// fixed pair of projects stamped with the requested owner.
type SampleRepository struct {
	delay time.Duration
}

func NewSampleRepository(delay time.Duration) *SampleRepository {
	return &SampleRepository{delay: delay}
}

func (r *SampleRepository) FetchProjects(ctx context.Context, ownerID string) ([]models.Project, error) {
	if r.delay > 0 {
		timer := time.NewTimer(r.delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}

	return SampleProjects(ownerID), nil
}

// SampleProjects returns a fresh copy of the sample payload for ownerID.
func SampleProjects(ownerID string) []models.Project {
	return []models.Project{
		{
			ID:            "1",
			OwnerID:       ownerID,
			Title:         "E-commerce Platform",
			Description:   "A full-stack e-commerce solution with React and Node.js",
			Technologies:  []string{"React", "Node.js", "MongoDB", "Stripe"},
			RepositoryURL: "https://github.com/username/ecommerce",
			DemoURL:       "https://ecommerce-demo.com",
			ThumbnailURL:  "https://via.placeholder.com/300x200",
			Images:        []string{},
			CompletedAt:   time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
			Featured:      true,
		},
		{
			ID:            "2",
			OwnerID:       ownerID,
			Title:         "Task Management App",
			Description:   "A collaborative task management application",
			Technologies:  []string{"Vue.js", "Firebase", "Tailwind CSS"},
			RepositoryURL: "https://github.com/username/taskapp",
			ThumbnailURL:  "https://via.placeholder.com/300x200",
			Images:        []string{},
			CompletedAt:   time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC),
			Featured:      false,
		},
	}
}
