// Package profile tells the client whose portfolio it is managing.
package profile

import (
	"context"
	"sync"
)

// Profile is the signed-in owner. Ready is false while no owner is known, in
// which case the client shows a placeholder instead of a portfolio.
type Profile struct {
	OwnerID string
	Ready   bool
}

type Provider interface {
	Profile(ctx context.Context) (Profile, error)
}

// Settable providers accept a new identity at runtime (the REPL owner command).
type Settable interface {
	Provider
	Set(value string)
}

// StaticProvider serves an owner id set directly, e.g. from configuration.
type StaticProvider struct {
	mu      sync.RWMutex
	ownerID string
}

func NewStaticProvider(ownerID string) *StaticProvider {
	return &StaticProvider{ownerID: ownerID}
}

func (p *StaticProvider) Profile(context.Context) (Profile, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return Profile{OwnerID: p.ownerID, Ready: p.ownerID != ""}, nil
}

// Set replaces the owner id; an empty value signs the owner out.
func (p *StaticProvider) Set(ownerID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ownerID = ownerID
}
