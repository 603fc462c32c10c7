package utils

import (
	"testing"

	"github.com/gi8lino/jiralink/internal/jira"

	"github.com/stretchr/testify/assert"
)

func TestObfuscateHeader(t *testing.T) {
	t.Parallel()

	t.Run("empty header", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", ObfuscateHeader(""))
	})

	t.Run("invalid header", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "[invalid header]", ObfuscateHeader("garbage"))
	})

	t.Run("short token is fully starred", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Basic ****", ObfuscateHeader("Basic abcd"))
	})

	t.Run("long token keeps edges", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Bearer ab******yz", ObfuscateHeader("Bearer abcdefghyz"))
	})
}

func TestGetAuthorizationHeader(t *testing.T) {
	t.Parallel()

	t.Run("returns the header the AuthFunc would set", func(t *testing.T) {
		t.Parallel()

		got := GetAuthorizationHeader(jira.NewBearerAuth("tok123"))
		assert.Equal(t, "Bearer tok123", got)
	})
}
