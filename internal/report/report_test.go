package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash(t *testing.T) {
	t.Parallel()

	repo := RepoDetails{URL: "http://x/y", Branch: "main", Commit: "abc123"}
	result := UniformTestResult{Summary: "NPE in Foo", Description: "stack trace"}

	t.Run("is stable", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, result.Hash(repo), result.Hash(repo))
	})

	t.Run("ignores the commit", func(t *testing.T) {
		t.Parallel()

		later := repo
		later.Commit = "def456"

		assert.Equal(t, result.Hash(repo), result.Hash(later))
	})

	t.Run("differs across branches", func(t *testing.T) {
		t.Parallel()

		other := repo
		other.Branch = "develop"

		assert.NotEqual(t, result.Hash(repo), result.Hash(other))
	})

	t.Run("differs across summaries", func(t *testing.T) {
		t.Parallel()

		other := UniformTestResult{Summary: "OOM in Bar"}

		assert.NotEqual(t, result.Hash(repo), other.Hash(repo))
	})
}

func TestRenderDescription(t *testing.T) {
	t.Parallel()

	repo := RepoDetails{URL: "http://x/y", Branch: "main", Commit: "abc123"}
	result := UniformTestResult{Summary: "NPE in Foo", Description: "stack trace"}

	t.Run("exposes result and repository fields", func(t *testing.T) {
		t.Parallel()

		out, err := result.RenderDescription("{{ .Summary }} on {{ .Branch }} ({{ .Commit }})", repo)

		require.NoError(t, err)
		assert.Equal(t, "NPE in Foo on main (abc123)", out)
	})

	t.Run("sprig functions are available", func(t *testing.T) {
		t.Parallel()

		out, err := result.RenderDescription(`{{ .Branch | upper }}`, repo)

		require.NoError(t, err)
		assert.Equal(t, "MAIN", out)
	})

	t.Run("the fingerprint is in scope", func(t *testing.T) {
		t.Parallel()

		out, err := result.RenderDescription("{{ .Hash }}", repo)

		require.NoError(t, err)
		assert.Equal(t, result.Hash(repo), out)
	})

	t.Run("a broken template reports a parse error", func(t *testing.T) {
		t.Parallel()

		_, err := result.RenderDescription("{{ .Summary", repo)

		assert.Error(t, err)
	})
}
