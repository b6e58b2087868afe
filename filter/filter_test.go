package filter_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Urethramancer/strs/filter"
)

func TestRegexFilterIgnoreCase(t *testing.T) {
	f, err := filter.NewRegexFilter(`^password`, filter.RegexOptions{IgnoreCase: true})
	require.NoError(t, err)
	require.True(t, f.IsMatch("PASSWORD=hunter2"))
	require.False(t, f.IsMatch("username=admin"))
}

func TestRegexFilterInvalidPattern(t *testing.T) {
	_, err := filter.NewRegexFilter(`(unclosed`, filter.RegexOptions{})
	require.Error(t, err)
}

func TestWildcardFilter(t *testing.T) {
	f, err := filter.NewWildcardFilter("C:\\Windows\\*.dll")
	require.NoError(t, err)
	require.True(t, f.IsMatch(`c:\windows\ntdll.dll`))
	require.True(t, f.IsMatch(`c:\windows\system32\ntdll.dll`)) // '*' is not path-segment aware
	require.False(t, f.IsMatch(`c:\windows\ntdll.exe`))
}
