package config

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFlagSet(t *testing.T, reg *Registry, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("meshwire", pflag.ContinueOnError)
	AddFlags(fs, reg)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestAddFlags(t *testing.T) {
	reg := MustRegistry()
	fs := newTestFlagSet(t, reg)

	t.Run("EveryOptionHasAFlag", func(t *testing.T) {
		for _, d := range reg.Descriptors() {
			assert.NotNil(t, fs.Lookup(d.Name), "no flag for %s", d.Name)
		}
	})

	t.Run("DefaultsAppearInUsage", func(t *testing.T) {
		f := fs.Lookup("fscp.hello_timeout")
		require.NotNil(t, f)
		assert.Equal(t, "3000", f.DefValue)
	})
}

func TestCollectFlags(t *testing.T) {
	reg := MustRegistry()

	t.Run("OnlyChangedFlagsCollected", func(t *testing.T) {
		fs := newTestFlagSet(t, reg, "--fscp.hello_timeout=5000")

		values, err := CollectFlags(reg, fs)
		require.NoError(t, err)

		assert.Equal(t, map[string][]any{
			"fscp.hello_timeout": {uint(5000)},
		}, values)
	})

	t.Run("NothingSet", func(t *testing.T) {
		fs := newTestFlagSet(t, reg)

		values, err := CollectFlags(reg, fs)
		require.NoError(t, err)
		assert.Empty(t, values)
	})

	t.Run("BoolFlag", func(t *testing.T) {
		fs := newTestFlagSet(t, reg, "--tap_adapter.enabled=false")

		values, err := CollectFlags(reg, fs)
		require.NoError(t, err)
		assert.Equal(t, []any{false}, values["tap_adapter.enabled"])
	})

	t.Run("RepeatedListFlag", func(t *testing.T) {
		fs := newTestFlagSet(t, reg,
			"--fscp.contact=a.example.net:12000",
			"--fscp.contact=b.example.net:12000")

		values, err := CollectFlags(reg, fs)
		require.NoError(t, err)
		assert.Equal(t, []any{"a.example.net:12000", "b.example.net:12000"}, values["fscp.contact"])
	})

	t.Run("ExplicitDefaultStillCollected", func(t *testing.T) {
		// Passing the default value on the command line still counts as a
		// CLI value, so it shadows any configuration-file value.
		fs := newTestFlagSet(t, reg, "--fscp.hello_timeout=3000")

		values, err := CollectFlags(reg, fs)
		require.NoError(t, err)
		assert.Equal(t, []any{uint(3000)}, values["fscp.hello_timeout"])
	})
}
