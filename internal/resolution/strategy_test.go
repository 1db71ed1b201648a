package resolution

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConflictPolicy(t *testing.T) {
	cases := []struct {
		in   string
		want ConflictPolicy
		ok   bool
	}{
		{"", ConflictLatest, true},
		{"latest", ConflictLatest, true},
		{"fail", ConflictFail, true},
		{"newest", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseConflictPolicy(tc.in)
			if !tc.ok {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFactoryProducesDistinctStrategies(t *testing.T) {
	f := NewFactory(ConflictFail)
	a := f.NewStrategy()
	b := f.NewStrategy()

	assert.NotSame(t, a, b)
	assert.Equal(t, ConflictFail, a.ConflictPolicy())

	require.NoError(t, a.Force("com.acme:util:1.0.0"))
	_, ok := b.ForcedVersion("com.acme", "util")
	assert.False(t, ok, "strategies must not share forced versions")
}

func TestStrategyForce(t *testing.T) {
	s := NewFactory("").NewStrategy()
	require.NoError(t, s.Force("com.acme:b:2.0.0", "com.acme:a:1.0.0"))

	v, ok := s.ForcedVersion("com.acme", "a")
	require.True(t, ok)
	assert.Equal(t, "1.0.0", v)
	assert.Equal(t, []string{"com.acme:a:1.0.0", "com.acme:b:2.0.0"}, s.ForcedModules())

	assert.Error(t, s.Force("com.acme:c:^1.0"), "ranges cannot be forced")
	assert.Error(t, s.Force(":lib"), "projects cannot be forced")
	assert.Error(t, s.Force("broken"))
}

func TestStrategyFailOnVersionConflict(t *testing.T) {
	s := NewFactory(ConflictLatest).NewStrategy()
	assert.Same(t, s, s.FailOnVersionConflict())
	assert.Equal(t, ConflictFail, s.ConflictPolicy())
}
