// Package view derives the display partitions of the project collection.
// Nothing here mutates the projects it is given.
package view

import "github.com/dmitrijs2005/gophfolio/internal/client/models"

// PreviewLimit is how many technologies a card shows before collapsing the rest.
const PreviewLimit = 3

// Card is a project as rendered in the "all projects" list.
type Card struct {
	Project             models.Project
	VisibleTechnologies []string
	// HiddenTechnologies counts the technologies beyond PreviewLimit.
	HiddenTechnologies int
}

// Featured keeps the featured projects in store order.
func Featured(all []models.Project) []models.Project {
	out := make([]models.Project, 0, len(all))
	for _, p := range all {
		if p.Featured {
			out = append(out, p.Clone())
		}
	}
	return out
}

// All returns every project, in order, with a truncated technology preview.
func All(all []models.Project) []Card {
	out := make([]Card, 0, len(all))
	for _, p := range all {
		out = append(out, NewCard(p))
	}
	return out
}

func NewCard(p models.Project) Card {
	p = p.Clone()
	n := min(len(p.Technologies), PreviewLimit)
	return Card{
		Project:             p,
		VisibleTechnologies: append([]string{}, p.Technologies[:n]...),
		HiddenTechnologies:  len(p.Technologies) - n,
	}
}
