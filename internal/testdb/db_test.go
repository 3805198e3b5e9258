package testdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDatabaseURLPrefersTestVariable(t *testing.T) {
	t.Setenv(EnvTestDatabaseURL, "")
	t.Setenv(EnvDatabaseURL, "")
	assert.Empty(t, DatabaseURL())

	t.Setenv(EnvDatabaseURL, "postgres://fallback")
	assert.Equal(t, "postgres://fallback", DatabaseURL())

	t.Setenv(EnvTestDatabaseURL, "postgres://preferred")
	assert.Equal(t, "postgres://preferred", DatabaseURL())
}
