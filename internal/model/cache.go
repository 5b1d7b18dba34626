package model

import "context"

// IdentityCache is a side cache of identity snapshots keyed by email. It never
// reads the UserStore itself; callers fill it after a store hit.
type IdentityCache interface {
	Lookup(ctx context.Context, email string) (User, error)
	Fill(ctx context.Context, email string, user User)
	Invalidate(ctx context.Context, email string)
}
