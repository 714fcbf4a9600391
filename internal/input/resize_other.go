//go:build !unix

package input

import "context"

// WatchResize is a no-op where SIGWINCH does not exist.
func WatchResize(ctx context.Context, d *Decoder) {}
