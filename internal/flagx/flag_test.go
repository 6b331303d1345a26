package flagx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterArgs_SeparateValue(t *testing.T) {
	got := FilterArgs([]string{"-a", ":8080", "-x", "junk"}, []string{"-a"})
	require.Equal(t, []string{"-a", ":8080"}, got)
}

func TestFilterArgs_EqualsForm(t *testing.T) {
	got := FilterArgs([]string{"--dsn=postgres://x", "-a=:9090"}, []string{"--dsn"})
	require.Equal(t, []string{"--dsn=postgres://x"}, got)
}

func TestFilterArgs_FlagWithoutValue(t *testing.T) {
	got := FilterArgs([]string{"-v", "-a", ":8080"}, []string{"-v", "-a"})
	require.Equal(t, []string{"-v", "-a", ":8080"}, got)
}

func TestFilterArgs_NothingAllowed(t *testing.T) {
	got := FilterArgs([]string{"-a", "x"}, nil)
	require.Empty(t, got)
}
