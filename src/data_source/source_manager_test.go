package datasource

import (
	"io"
	"testing"

	"stock-lens/src/logger"
	"stock-lens/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceManagerBuild(t *testing.T) {
	log := logger.NewLogger(nil, "test")
	log.SetOutput(io.Discard)
	m := NewSourceManager(log)

	cfg := &models.MConfig{Provider: models.MProviderConfig{Name: "Yahoo"}}
	p, err := m.Build(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, "yahoo", p.Name())

	cfg.Provider.Name = "bloomberg"
	_, err = m.Build(cfg, nil)
	assert.ErrorContains(t, err, "available: yahoo")
}
