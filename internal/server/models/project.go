package models

import "time"

// Project is one row of the projects table.
type Project struct {
	OwnerID       string    `db:"owner_id" json:"ownerId"`
	ID            string    `db:"id" json:"id"`
	Position      int       `db:"position" json:"position"`
	Title         string    `db:"title" json:"title"`
	Description   string    `db:"description" json:"description"`
	Technologies  []string  `db:"technologies" json:"technologies"`
	RepositoryURL string    `db:"repository_url" json:"repositoryUrl,omitempty"`
	DemoURL       string    `db:"demo_url" json:"demoUrl,omitempty"`
	ThumbnailURL  string    `db:"thumbnail_url" json:"thumbnailUrl,omitempty"`
	Images        []string  `db:"images" json:"images"`
	CompletedAt   time.Time `db:"completed_at" json:"completedAt"`
	Featured      bool      `db:"featured" json:"featured"`
}
