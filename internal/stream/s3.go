package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"golang.org/x/time/rate"

	"github.com/user/near-sql-indexer/internal/nearview"
)

// S3Streamer lists and fetches per-block JSON objects from an
// S3-compatible bucket, one key prefix (a block object plus one object per
// shard) per block height starting at StartBlockHeight. It does no reorg handling or retry beyond what the
// batched writer already provides elsewhere in the pipeline — block-feed
// replay logic is explicitly out of scope for this component.
type S3Streamer struct {
	Client           *s3.Client
	Bucket           string
	StartBlockHeight uint64

	// Limiter caps the rate of GetObject/ListObjectsV2 calls so a fast
	// consumer can't trip the bucket's request-rate throttling.
	Limiter *rate.Limiter
}

// NewS3Streamer builds a streamer backed by the default AWS config chain
// (env vars, shared config, IAM role), scoped to region.
func NewS3Streamer(ctx context.Context, bucket, region string, startBlockHeight uint64, maxRequestsPerSecond float64, burst int) (*S3Streamer, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("stream: loading aws config: %w", err)
	}
	return &S3Streamer{
		Client:           s3.NewFromConfig(cfg),
		Bucket:           bucket,
		StartBlockHeight: startBlockHeight,
		Limiter:          rate.NewLimiter(rate.Limit(maxRequestsPerSecond), burst),
	}, nil
}

func (s *S3Streamer) Messages(ctx context.Context) (<-chan nearview.StreamerMessage, <-chan error) {
	out := make(chan nearview.StreamerMessage)
	errc := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errc)

		height := s.StartBlockHeight
		for {
			msg, ok, err := s.fetchBlock(ctx, height)
			if err != nil {
				errc <- err
				return
			}
			if !ok {
				// No object at this height yet; caller decides whether to
				// poll again (e.g. via its own ticker) or exit.
				return
			}
			select {
			case out <- msg:
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
			height++
		}
	}()

	return out, errc
}

// fetchBlock reads the block.json object plus every shard_N.json object
// under the height's prefix, mirroring the object layout NEAR Lake
// publishes. ok is false when the block object doesn't exist yet.
func (s *S3Streamer) fetchBlock(ctx context.Context, height uint64) (nearview.StreamerMessage, bool, error) {
	prefix := fmt.Sprintf("%012d/", height)

	blockBody, err := s.getObject(ctx, prefix+"block.json")
	if err != nil {
		if isNoSuchKey(err) {
			return nearview.StreamerMessage{}, false, nil
		}
		return nearview.StreamerMessage{}, false, fmt.Errorf("stream: fetching block %d: %w", height, err)
	}

	var msg nearview.StreamerMessage
	if err := json.Unmarshal(blockBody, &msg.Block); err != nil {
		return nearview.StreamerMessage{}, false, fmt.Errorf("stream: decoding block %d: %w", height, err)
	}

	shardKeys, err := s.listShards(ctx, prefix)
	if err != nil {
		return nearview.StreamerMessage{}, false, fmt.Errorf("stream: listing shards for block %d: %w", height, err)
	}
	sort.Strings(shardKeys)

	for _, key := range shardKeys {
		body, err := s.getObject(ctx, key)
		if err != nil {
			return nearview.StreamerMessage{}, false, fmt.Errorf("stream: fetching %s: %w", key, err)
		}
		var shard nearview.ShardView
		if err := json.Unmarshal(body, &shard); err != nil {
			return nearview.StreamerMessage{}, false, fmt.Errorf("stream: decoding %s: %w", key, err)
		}
		msg.Shards = append(msg.Shards, shard)
	}

	return msg, true, nil
}

func (s *S3Streamer) getObject(ctx context.Context, key string) ([]byte, error) {
	if err := s.Limiter.Wait(ctx); err != nil {
		return nil, err
	}
	out, err := s.Client.GetObject(ctx, &s3.GetObjectInput{Bucket: aws.String(s.Bucket), Key: aws.String(key)})
	if err != nil {
		return nil, err
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}

func (s *S3Streamer) listShards(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	paginator := s3.NewListObjectsV2Paginator(s.Client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.Bucket),
		Prefix: aws.String(prefix),
	})
	for paginator.HasMorePages() {
		if err := s.Limiter.Wait(ctx); err != nil {
			return nil, err
		}
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if strings.Contains(key, "shard_") {
				keys = append(keys, key)
			}
		}
	}
	return keys, nil
}

func isNoSuchKey(err error) bool {
	return strings.Contains(err.Error(), "NoSuchKey") || strings.Contains(err.Error(), "NotFound")
}
