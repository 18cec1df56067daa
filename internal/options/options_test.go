package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	limit   int
	label   string
	enabled bool
}

func (c *testConfig) setLimit(n int) error {
	if n < 0 {
		return errors.New("limit cannot be negative")
	}
	c.limit = n

	return nil
}

func TestNew(t *testing.T) {
	cfg := &testConfig{}

	opt := New(func(c *testConfig) error {
		return c.setLimit(42)
	})
	require.NoError(t, opt.apply(cfg))
	require.Equal(t, 42, cfg.limit)

	opt = New(func(c *testConfig) error {
		return c.setLimit(-1)
	})
	err := opt.apply(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "limit cannot be negative")
	require.Equal(t, 42, cfg.limit)
}

func TestNoError(t *testing.T) {
	cfg := &testConfig{}

	opt := NoError(func(c *testConfig) {
		c.label = "words"
	})
	require.NoError(t, opt.apply(cfg))
	require.Equal(t, "words", cfg.label)
}

func TestApply(t *testing.T) {
	t.Run("applies options in order", func(t *testing.T) {
		cfg := &testConfig{}

		err := Apply(cfg,
			NoError(func(c *testConfig) { c.label = "first" }),
			NoError(func(c *testConfig) { c.enabled = true }),
			NoError(func(c *testConfig) { c.label = "second" }),
		)
		require.NoError(t, err)
		require.Equal(t, "second", cfg.label)
		require.True(t, cfg.enabled)
	})

	t.Run("stops at first error", func(t *testing.T) {
		cfg := &testConfig{}

		err := Apply(cfg,
			New(func(c *testConfig) error { return c.setLimit(7) }),
			New(func(c *testConfig) error { return c.setLimit(-1) }),
			NoError(func(c *testConfig) { c.label = "unreached" }),
		)
		require.Error(t, err)
		require.Equal(t, 7, cfg.limit)
		require.Empty(t, cfg.label)
	})

	t.Run("no options is a no-op", func(t *testing.T) {
		cfg := &testConfig{}
		require.NoError(t, Apply(cfg))
		require.Equal(t, testConfig{}, *cfg)
	})
}
