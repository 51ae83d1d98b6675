package pipeline

import (
	"bytes"
	"context"
	"errors"
	"log"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/dyescan/errs"
	"github.com/arloliu/dyescan/format"
	"github.com/arloliu/dyescan/generate"
	"github.com/arloliu/dyescan/grid"
	"github.com/arloliu/dyescan/persist"
	"github.com/arloliu/dyescan/visualize"
)

type recordingSink struct {
	mu     sync.Mutex
	titles []string
	images []*grid.Binary
}

func (s *recordingSink) Show(img *grid.Binary, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.titles = append(s.titles, title)
	s.images = append(s.images, img)

	return nil
}

func dirStore(t *testing.T) *persist.DirStore {
	t.Helper()

	store, err := persist.NewDirStore(t.TempDir())
	require.NoError(t, err)

	return store
}

func TestRun(t *testing.T) {
	sink := &recordingSink{}
	var logs bytes.Buffer

	p, err := New(dirStore(t),
		WithShape(grid.NewShape(200, 200)),
		WithRadiusRange(generate.RadiusRange{Min: 80, Max: 95}),
		WithSeed(11),
		WithSink(sink),
		WithLogger(log.New(&logs, "", 0)),
	)
	require.NoError(t, err)

	res, err := p.Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, int64(11), res.Seed)
	require.True(t, res.RoundTrip)
	require.True(t, res.Microscope)
	require.True(t, res.DyeEvaluated)
	require.True(t, res.Dye)
	require.Equal(t, res.BlobArea, res.Blob.Count())
	require.Equal(t, res.DyeCount, res.Entries)
	require.Positive(t, res.Runs)
	require.Positive(t, res.BlobBytes)
	require.Positive(t, res.DyeBytes)

	require.Equal(t, []string{MicroscopeTitle, DyeSensorTitle}, sink.titles)
	require.Same(t, res.Blob, sink.images[0])
	require.Same(t, res.DyeImage, sink.images[1])

	require.Contains(t, logs.String(), "generate: shape=200x200 seed=11")
	require.Contains(t, logs.String(), "saved microscope.json")
}

func TestRun_Deterministic(t *testing.T) {
	opts := []Option{
		WithShape(grid.NewShape(120, 160)),
		WithRadiusRange(generate.RadiusRange{Min: 10, Max: 50}),
		WithSeed(99),
	}

	p1, err := New(dirStore(t), opts...)
	require.NoError(t, err)
	p2, err := New(dirStore(t), opts...)
	require.NoError(t, err)

	a, err := p1.Run(context.Background())
	require.NoError(t, err)
	b, err := p2.Run(context.Background())
	require.NoError(t, err)

	require.True(t, a.Blob.Equal(b.Blob))
	require.True(t, a.DyeImage.Equal(b.DyeImage))
}

func TestRun_DyeShortCircuit(t *testing.T) {
	p, err := New(dirStore(t),
		WithShape(grid.NewShape(1000, 1000)),
		WithRadiusRange(generate.RadiusRange{Min: 100, Max: 101}),
		WithSeed(1),
	)
	require.NoError(t, err)

	calls := 0
	p.dyeCheck = func(_, _ *grid.Binary) (bool, error) {
		calls++
		return true, nil
	}

	res, err := p.Run(context.Background())
	require.NoError(t, err)
	require.False(t, res.Microscope)
	require.False(t, res.Dye)
	require.False(t, res.DyeEvaluated)
	require.Zero(t, calls)
}

func TestRun_DyeEvaluatedOnlyWhenMicroscopePositive(t *testing.T) {
	p, err := New(dirStore(t),
		WithShape(grid.NewShape(100, 100)),
		WithRadiusRange(generate.RadiusRange{Min: 45, Max: 50}),
		WithSeed(1),
	)
	require.NoError(t, err)

	calls := 0
	p.dyeCheck = func(_, _ *grid.Binary) (bool, error) {
		calls++
		return false, nil
	}

	res, err := p.Run(context.Background())
	require.NoError(t, err)
	require.True(t, res.Microscope)
	require.True(t, res.DyeEvaluated)
	require.False(t, res.Dye)
	require.Equal(t, 1, calls)
}

func TestRun_BinarySQLite(t *testing.T) {
	store, err := persist.NewSQLiteStore(filepath.Join(t.TempDir(), "scan.db"))
	require.NoError(t, err)
	defer store.Close()

	for _, comp := range []format.CompressionType{format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4} {
		p, err := New(store,
			WithShape(grid.NewShape(300, 250)),
			WithRadiusRange(generate.RadiusRange{Min: 20, Max: 100}),
			WithSeed(5),
			WithFormat(format.FormatBinary),
			WithCompression(comp),
		)
		require.NoError(t, err)

		res, err := p.Run(context.Background())
		require.NoError(t, err, comp.String())
		require.True(t, res.RoundTrip, comp.String())
	}

	names, err := store.List(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"dye_sensor.dsa", "microscope.dsa"}, names)
}

func TestRun_PNGSink(t *testing.T) {
	dir := t.TempDir()
	store, err := persist.NewDirStore(dir)
	require.NoError(t, err)

	p, err := New(store,
		WithShape(grid.NewShape(64, 64)),
		WithRadiusRange(generate.RadiusRange{Min: 5, Max: 20}),
		WithSink(visualize.PNGSink{Dir: dir}),
	)
	require.NoError(t, err)

	_, err = p.Run(context.Background())
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(dir, "images", "microscope_image.png"))
	require.FileExists(t, filepath.Join(dir, "images", "dye_sensor_image.png"))
}

func TestRun_Canceled(t *testing.T) {
	p, err := New(dirStore(t), WithShape(grid.NewShape(50, 50)), WithRadiusRange(generate.RadiusRange{Min: 1, Max: 5}))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = p.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

type failingStore struct {
	persist.Store
	err error
}

func (s failingStore) Put(context.Context, string, []byte) error {
	return s.err
}

func TestRun_StoreError(t *testing.T) {
	boom := errors.New("disk full")
	p, err := New(failingStore{Store: dirStore(t), err: boom},
		WithShape(grid.NewShape(50, 50)),
		WithRadiusRange(generate.RadiusRange{Min: 1, Max: 5}),
	)
	require.NoError(t, err)

	_, err = p.Run(context.Background())
	require.ErrorIs(t, err, boom)
}

func TestNew_InvalidConfig(t *testing.T) {
	store := dirStore(t)

	_, err := New(store, WithShape(grid.NewShape(-1, 10)))
	require.ErrorIs(t, err, errs.ErrInvalidShape)

	// the default radius range does not fit a small image
	_, err = New(store, WithShape(grid.NewShape(100, 100)))
	require.ErrorIs(t, err, errs.ErrInvalidRadius)

	_, err = New(store, WithShape(grid.NewShape(100, 100)), WithRadiusRange(generate.RadiusRange{Min: 1, Max: 5}), WithDyeRatio(0.7))
	require.ErrorIs(t, err, errs.ErrInvalidDyeRatio)

	_, err = New(store, WithFormat(format.ArtifactFormat(7)))
	require.Error(t, err)
}

func TestBoth(t *testing.T) {
	first := errors.New("first")

	require.NoError(t, both(func() error { return nil }, func() error { return nil }))
	require.ErrorIs(t, both(func() error { return first }, func() error { return nil }), first)
	require.ErrorIs(t, both(func() error { return nil }, func() error { return first }), first)
}
