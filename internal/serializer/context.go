package serializer

import "github.com/google/uuid"

// Actor is the authenticated identity driving a request. ProfileID is the
// actor's owned store profile, nil when the actor has not created one yet.
type Actor struct {
	UserID    uuid.UUID
	ProfileID *uuid.UUID
}

// Context carries per-request state through serialize and deserialize calls.
// It is always passed explicitly; schemas and composers hold no request
// state of their own.
type Context struct {
	Actor *Actor
}

// Anonymous returns a context without an actor
func Anonymous() Context {
	return Context{}
}

// WithActor returns a context for the given actor
func WithActor(actor Actor) Context {
	return Context{Actor: &actor}
}

// Authenticated reports whether the request has an actor
func (c Context) Authenticated() bool {
	return c.Actor != nil
}

// Profile returns the actor's profile reference, if any
func (c Context) Profile() (uuid.UUID, bool) {
	if c.Actor == nil || c.Actor.ProfileID == nil {
		return uuid.Nil, false
	}
	return *c.Actor.ProfileID, true
}
