// Package database defines the per-request session lifecycle. No backing store
// is configured yet; NopProvider hands out empty sessions.
package database

import (
	"context"
	"errors"
	"fmt"
)

// Session is a unit of work against the data store. A nil *Session means no
// usable connection is available.
type Session struct{}

// SessionProvider acquires and releases sessions.
type SessionProvider interface {
	Acquire(ctx context.Context) (*Session, error)
	Release(s *Session) error
}

// NopProvider yields nil sessions and never fails.
type NopProvider struct{}

// Acquire returns a nil session.
func (NopProvider) Acquire(context.Context) (*Session, error) { return nil, nil }

// Release is a no-op.
func (NopProvider) Release(*Session) error { return nil }

// WithSession acquires a session, runs fn and always releases the session, also
// when fn panics. A release failure is joined with fn's error.
func WithSession(ctx context.Context, p SessionProvider, fn func(context.Context, *Session) error) (err error) {
	if p == nil {
		p = NopProvider{}
	}

	s, acqErr := p.Acquire(ctx)
	if acqErr != nil {
		return fmt.Errorf("acquire session: %w", acqErr)
	}

	defer func() {
		if relErr := p.Release(s); relErr != nil {
			err = errors.Join(err, fmt.Errorf("release session: %w", relErr))
		}
	}()

	return fn(ctx, s)
}
