// Package workers provides the fan-out helpers used by the crypto core to
// run independent cryptographic sub-operations concurrently: hashing many
// candidate tokens, or trying many password/prekey combinations.
//
// Every helper takes a context and a concurrency limit. Pending tasks that
// have not started yet never run once the context is cancelled.
package workers

import "context"

// Task is one unit of work producing a value of type T.
//
// Implementations should check ctx before starting expensive work; the
// helpers cancel ctx as soon as the overall outcome is known.
//
// Example:
//
//	task := func(ctx context.Context) ([]byte, error) {
//	    if err := ctx.Err(); err != nil {
//	        return nil, err
//	    }
//	    return derive(password)
//	}
type Task[T any] func(ctx context.Context) (T, error)
