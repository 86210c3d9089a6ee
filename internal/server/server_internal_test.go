package server

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KUBYKA-DEV/content-scrape/internal/logger"
)

func TestConfig_SetDefaults_NoWriteDeadline(t *testing.T) {
	cfg := NewConfig("content-scrape", 8095)

	// The event stream holds a response open for the whole session; a
	// defaulted write deadline would sever it.
	assert.Zero(t, cfg.WriteTimeout)
	assert.Equal(t, DefaultReadTimeout, cfg.ReadTimeout)
	assert.Equal(t, DefaultIdleTimeout, cfg.IdleTimeout)
}

func TestNew_ServerHasNoWriteDeadline(t *testing.T) {
	s := New(NewConfig("content-scrape", 8095), logger.NewNop(), nil)

	assert.Zero(t, s.server.WriteTimeout)
	assert.Equal(t, DefaultReadTimeout, s.server.ReadTimeout)
}
