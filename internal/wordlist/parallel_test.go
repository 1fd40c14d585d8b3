package wordlist

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"docxcrack/internal/digest"
)

func TestParallelScanReportsEarliestMatch(t *testing.T) {
	require := require.New(t)

	// Two lines carry the password; the earlier one must win regardless of
	// which worker finishes first.
	var candidates []string
	for i := 0; i < 500; i++ {
		switch i {
		case 137, 420:
			candidates = append(candidates, "needle")
		default:
			candidates = append(candidates, fmt.Sprintf("hay%d", i))
		}
	}

	for _, workers := range []int{2, 4, 16} {
		res, err := NewScanner(verifierFor("needle", digest.ModeB), Options{Workers: workers}).Scan(context.Background(), lines(candidates...))
		require.NoError(err)
		require.True(res.Found, "workers %d", workers)
		require.Equal("needle", res.Password)
		require.Equal(digest.ModeB, res.Mode)
		require.Equal(138, res.Attempts, "workers %d", workers)
	}
}

func TestParallelScanStopsReading(t *testing.T) {
	require := require.New(t)

	var candidates []string
	for i := 0; i < 10000; i++ {
		candidates = append(candidates, fmt.Sprintf("hay%d", i))
	}
	candidates[3] = "needle"

	src := lines(candidates...)
	res, err := NewScanner(verifierFor("needle", digest.ModeA), Options{Workers: 4}).Scan(context.Background(), src)
	require.NoError(err)
	require.Equal(4, res.Attempts)
	require.Less(src.reads, len(candidates))
}

func TestParallelScanExhausted(t *testing.T) {
	require := require.New(t)

	var candidates []string
	for i := 0; i < 321; i++ {
		candidates = append(candidates, fmt.Sprintf("hay%d", i))
	}
	var calls atomic.Int64
	opts := Options{
		Workers:       3,
		ProgressEvery: 100,
		OnProgress:    func(Progress) { calls.Add(1) },
	}
	res, err := NewScanner(verifierFor("needle", digest.ModeA), opts).Scan(context.Background(), lines(candidates...))
	require.NoError(err)
	require.False(res.Found)
	require.Equal(321, res.Attempts)
	require.Equal(int64(3), calls.Load())
}

func TestParallelScanCancelled(t *testing.T) {
	require := require.New(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := NewScanner(verifierFor("needle", digest.ModeA), Options{Workers: 2}).Scan(ctx, lines("a", "b", "needle"))
	require.ErrorIs(err, context.Canceled)
	require.False(res.Found)
}

func TestParallelScanReadError(t *testing.T) {
	require := require.New(t)

	_, err := NewScanner(verifierFor("x", digest.ModeA), Options{Workers: 2}).Scan(context.Background(), &errSource{n: 5})
	require.EqualError(err, "disk on fire")
}
