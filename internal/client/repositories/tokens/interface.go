// Package tokens persists the session token pair so that a restart
// resumes the previous session.
package tokens

import "context"

// Repository is the durable store for the access/refresh token pair.
//
// Contract:
//   - Read returns the persisted pair; missing entries come back empty.
//   - Write replaces both entries. The refresh token is written first so
//     a concurrent reader never sees a new access token with a stale
//     refresh token.
//   - Clear removes both entries, access token first for the same reason.
type Repository interface {
	Read(ctx context.Context) (access string, refresh string, err error)
	Write(ctx context.Context, access, refresh string) error
	Clear(ctx context.Context) error
}
