package tracking

import (
	"testing"

	"github.com/banshee-data/pawlabel/internal/config"
	"github.com/banshee-data/pawlabel/internal/plate"
	"github.com/banshee-data/pawlabel/internal/testutil"
	"github.com/banshee-data/pawlabel/internal/tracking/l3merge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrack_AllZero(t *testing.T) {
	t.Parallel()

	tn := testutil.NewRecording(3, 3, 3).Tensor(t)
	tr := NewTracker(DefaultConfig())

	raw, err := tr.TrackRaw(tn)
	assert.ErrorIs(t, err, plate.ErrEmptyTensor)
	assert.Empty(t, raw)

	contacts, err := tr.Track(tn)
	assert.ErrorIs(t, err, plate.ErrEmptyTensor)
	assert.Empty(t, contacts)

	_, err = tr.Track(nil)
	assert.ErrorIs(t, err, plate.ErrEmptyTensor)
}

func TestTrack_SingleBlock(t *testing.T) {
	t.Parallel()

	tn := testutil.NewRecording(8, 8, 7).Step(3, 3, 2, 2, 1, 5, 10).Tensor(t)
	tr := NewTracker(DefaultConfig())

	raw, err := tr.TrackRaw(tn)
	require.NoError(t, err)
	require.Len(t, raw, 1)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, raw[0].Frames())

	contacts, err := tr.Track(tn)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	c := contacts[0]
	assert.Equal(t, []int{1, 2, 3, 4, 5}, c.Frames)
	assert.Equal(t, 3, c.MinX)
	assert.Equal(t, 4, c.MaxX)
	assert.Equal(t, 3, c.MinY)
	assert.Equal(t, 4, c.MaxY)
	assert.False(t, c.Invalid)
	assert.InDelta(t, tn.Sum(), c.Data.Sum(), 1e-9)
}

// gapRecording holds one footprint in frames 1..5 and again in 7..11.
func gapRecording(t *testing.T) *plate.Tensor {
	return testutil.NewRecording(12, 12, 14).
		Step(4, 4, 3, 3, 1, 5, 10).
		Step(4, 4, 3, 3, 7, 5, 10).
		Tensor(t)
}

func TestTrack_GapBridge(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Merge.TemporalRatio = 1.0
	tr := NewTracker(cfg)

	raw, err := tr.TrackRaw(gapRecording(t))
	require.NoError(t, err)
	require.Len(t, raw, 2)

	contacts, err := tr.Track(gapRecording(t))
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	c := contacts[0]
	assert.Equal(t, []int{1, 2, 3, 4, 5, 7, 8, 9, 10, 11}, c.Frames)
	assert.Equal(t, 1, c.MinFrame())
	assert.Equal(t, 11, c.MaxFrame())
	assert.Equal(t, []int{3, 3, 10}, c.Data.Shape())
	assert.False(t, c.Invalid)
}

func TestTrack_GapNotBridgedWithDefaults(t *testing.T) {
	t.Parallel()

	// Mean length 5 × 0.5 leaves neither footprint short enough to bridge.
	contacts, err := NewTracker(DefaultConfig()).Track(gapRecording(t))
	require.NoError(t, err)
	require.Len(t, contacts, 2)
	assert.Equal(t, 1, contacts[0].MinFrame())
	assert.Equal(t, 7, contacts[1].MinFrame())
}

func TestTrack_Agglomerative(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Merge.TemporalRatio = 1.0
	cfg.Strategy = l3merge.Agglomerative{}

	contacts, err := NewTracker(cfg).Track(gapRecording(t))
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, 10, contacts[0].Length())
}

func TestTrack_EdgeTouch(t *testing.T) {
	t.Parallel()

	tn := testutil.NewRecording(10, 10, 5).Stamp(0, 4, 2, 2, 0, 4, 5).Tensor(t)
	contacts, err := NewTracker(DefaultConfig()).Track(tn)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.True(t, contacts[0].Invalid)
}

func TestTrack_IncompleteStep(t *testing.T) {
	t.Parallel()

	profile := []float64{9, 10, 7, 4, 1}
	tn := testutil.NewRecording(10, 10, 8).StampProfile(3, 3, 3, 3, 1, profile).Tensor(t)
	contacts, err := NewTracker(DefaultConfig()).Track(tn)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.True(t, contacts[0].Invalid)
}

func TestTrack_OrderAndIDs(t *testing.T) {
	t.Parallel()

	// Right paw lands first, then two paws land together.
	tn := testutil.NewRecording(20, 30, 20).
		Step(3, 20, 3, 3, 1, 5, 10).
		Step(12, 14, 3, 3, 6, 5, 10).
		Step(12, 3, 3, 3, 6, 5, 10).
		Tensor(t)

	tr := NewTracker(DefaultConfig())
	contacts, err := tr.Track(tn)
	require.NoError(t, err)
	require.Len(t, contacts, 3)

	assert.Equal(t, 20, contacts[0].MinX)
	assert.Equal(t, 3, contacts[1].MinX)
	assert.Equal(t, 14, contacts[2].MinX)
	for i, c := range contacts {
		assert.Equal(t, i, c.ID)
	}

	// IDs keep counting across runs.
	again, err := tr.Track(tn)
	require.NoError(t, err)
	assert.Equal(t, 3, again[0].ID)

	tr.Observe(40, 7)
	again, err = tr.Track(tn)
	require.NoError(t, err)
	assert.Equal(t, 41, again[0].ID)
}

func TestTrack_Deterministic(t *testing.T) {
	t.Parallel()

	tn := testutil.NewRecording(20, 30, 20).
		Step(3, 20, 3, 3, 1, 5, 10).
		Step(12, 3, 4, 2, 4, 7, 12).
		Tensor(t)

	a, err := NewTracker(DefaultConfig()).Track(tn)
	require.NoError(t, err)
	b, err := NewTracker(DefaultConfig()).Track(tn)
	require.NoError(t, err)
	require.Len(t, b, len(a))
	for i := range a {
		assert.Equal(t, a[i].ToDict(), b[i].ToDict())
	}
}

func TestConfigFromTuning(t *testing.T) {
	t.Parallel()

	cfg, err := ConfigFromTuning(config.EmptyTuningConfig())
	require.NoError(t, err)
	assert.Equal(t, l3merge.DefaultParams(), cfg.Merge)
	assert.Equal(t, 15.0, cfg.Tolerance)
	assert.Equal(t, l3merge.StrategyGreedy, cfg.Strategy.Name())
	assert.Equal(t, 1, cfg.Contact.Padding)

	name := "agglomerative"
	gap := 2
	cfg, err = ConfigFromTuning(&config.TuningConfig{MergeStrategy: &name, GapFrames: &gap})
	require.NoError(t, err)
	assert.Equal(t, l3merge.StrategyAgglomerative, cfg.Strategy.Name())
	assert.Equal(t, 2, cfg.Merge.GapFrames)

	bad := "hungarian"
	_, err = ConfigFromTuning(&config.TuningConfig{MergeStrategy: &bad})
	assert.Error(t, err)
}

func TestNewTracker_DefaultsStrategy(t *testing.T) {
	t.Parallel()

	tr := NewTracker(Config{Tolerance: 15, Merge: l3merge.DefaultParams()})
	assert.Equal(t, l3merge.StrategyGreedy, tr.Config.Strategy.Name())
}
