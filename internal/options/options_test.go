package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	height int
	name   string
	calls  []string
}

func withHeight(h int) Option[*testConfig] {
	return New(func(c *testConfig) error {
		if h < 0 {
			return errors.New("height cannot be negative")
		}
		c.height = h
		c.calls = append(c.calls, "height")

		return nil
	})
}

func withName(name string) Option[*testConfig] {
	return NoError(func(c *testConfig) {
		c.name = name
		c.calls = append(c.calls, "name")
	})
}

func TestApply(t *testing.T) {
	t.Run("applies in order", func(t *testing.T) {
		cfg := &testConfig{}
		err := Apply(cfg, withName("blob"), withHeight(1000), nil)

		require.NoError(t, err)
		require.Equal(t, 1000, cfg.height)
		require.Equal(t, "blob", cfg.name)
		require.Equal(t, []string{"name", "height"}, cfg.calls)
	})

	t.Run("stops at first error", func(t *testing.T) {
		cfg := &testConfig{}
		err := Apply(cfg, withHeight(-1), withName("never"))

		require.EqualError(t, err, "height cannot be negative")
		require.Empty(t, cfg.name)
	})

	t.Run("no options", func(t *testing.T) {
		require.NoError(t, Apply(&testConfig{}))
	})
}
