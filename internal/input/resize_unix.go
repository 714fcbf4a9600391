//go:build unix

package input

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// WatchResize injects KeyResize into d on every SIGWINCH until ctx is done.
func WatchResize(ctx context.Context, d *Decoder) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGWINCH)

	go func() {
		defer signal.Stop(sigCh)
		for {
			select {
			case <-ctx.Done():
				return
			case <-sigCh:
				d.Put(KeyResize)
			}
		}
	}()
}
