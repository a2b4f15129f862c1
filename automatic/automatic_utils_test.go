package automatic

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domino14/tumbledrop/stats"
)

func TestPlayCompVComp(t *testing.T) {
	opts := testOptions()
	seed := GenerateSeed()
	opts.Seed = &seed
	opts.LogFile = filepath.Join(t.TempDir(), "autoplay.txt")

	summary, err := PlayCompVComp(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, opts.Games, summary.Games)
	assert.Equal(t, opts.Games, summary.Wins[0]+summary.Wins[1]+summary.Draws)
	assert.Equal(t, int64(opts.Games), CVCCounter.Value())
	assert.Equal(t, int64(0), IsPlaying.Value())
	assert.Contains(t, summary.String(), "Games played: 4")

	contents, err := os.ReadFile(opts.LogFile)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(contents), CSVHeader))

	analyzed, err := AnalyzeLogFile(opts.LogFile)
	require.NoError(t, err)
	assert.Equal(t, summary.Games, analyzed.Games)
	assert.Equal(t, summary.Wins, analyzed.Wins)
	assert.Equal(t, summary.Draws, analyzed.Draws)
	assert.True(t, stats.FuzzyEqual(summary.Drops.Mean(), analyzed.Drops.Mean()))

	// A seeded batch is reproducible regardless of scheduling.
	opts.LogFile = ""
	again, err := PlayCompVComp(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, summary.Wins, again.Wins)
	assert.True(t, stats.FuzzyEqual(summary.Spread.Mean(), again.Spread.Mean()))
}

func TestPlayCompVCompCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	opts := testOptions()
	opts.Games = 1000
	summary, err := PlayCompVComp(ctx, opts)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, summary.Games, opts.Games)
}

func TestSeedRoundTrip(t *testing.T) {
	seed := GenerateSeed()
	parsed, err := ParseSeed(FormatSeed(seed))
	require.NoError(t, err)
	assert.Equal(t, seed, parsed)

	_, err = ParseSeed("c2hvcnQ")
	assert.Error(t, err)
}
