package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitList(t *testing.T) {
	require.Equal(t, []string{"jin", "kazuya", "jack-8"}, SplitList(" Jin, kazuya,,JACK-8 "))
	require.Empty(t, SplitList(""))
}

func TestClosestMatch(t *testing.T) {
	match, score := ClosestMatch("kazuyaa", []string{"jin", "kazuya", "lars"})
	require.Equal(t, "kazuya", match)
	require.Greater(t, score, 0.9)

	match, score = ClosestMatch("jin", nil)
	require.Equal(t, "", match)
	require.Equal(t, 0.0, score)
}
