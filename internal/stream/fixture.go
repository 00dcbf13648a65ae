package stream

import (
	"context"

	"github.com/user/near-sql-indexer/internal/nearview"
)

// FixtureStreamer replays a fixed, in-memory slice of messages, one per
// channel send, in place of a live feed.
type FixtureStreamer struct {
	Msgs []nearview.StreamerMessage
}

func (f *FixtureStreamer) Messages(ctx context.Context) (<-chan nearview.StreamerMessage, <-chan error) {
	out := make(chan nearview.StreamerMessage)
	errc := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errc)
		for _, m := range f.Msgs {
			select {
			case out <- m:
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
	}()

	return out, errc
}
