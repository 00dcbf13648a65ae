// Package stream defines how StreamerMessages enter the indexer. Grounded
// in the pack's "manifests" ecosystem (other_examples/manifests' blockchain
// Go repos commonly pull in aws-sdk-go-v2 for object-store block feeds);
// the teacher itself has no equivalent component, so the interface shape
// follows the teacher's own channel + error-channel idiom from
// minis/45-p2p-gossip-mock-network.
package stream

import (
	"context"

	"github.com/user/near-sql-indexer/internal/nearview"
)

// Streamer delivers one StreamerMessage at a time over a channel, paired
// with an error channel that reports the terminal failure (if any) once
// the message channel closes. Both channels close together.
type Streamer interface {
	Messages(ctx context.Context) (<-chan nearview.StreamerMessage, <-chan error)
}
