package helpers

import (
	"io"
	"testing"

	"stock-lens/src/logger"

	"github.com/stretchr/testify/assert"
)

func quietLogger() *logger.Logger {
	l := logger.NewLogger(nil, "ProxyManager")
	l.SetOutput(io.Discard)
	return l
}

func TestProxyManagerRotation(t *testing.T) {
	pm := NewProxyManager([]string{"10.0.0.1:8080", "", "ftp://bad", "socks5://10.0.0.2:1080"}, "", quietLogger())

	assert.True(t, pm.HasProxies())
	p, err := pm.GetCurrentProxy()
	assert.NoError(t, err)
	assert.Equal(t, "http://10.0.0.1:8080", p)

	pm.RotateProxy()
	p, _ = pm.GetCurrentProxy()
	assert.Equal(t, "socks5://10.0.0.2:1080", p)

	pm.RotateProxy()
	p, _ = pm.GetCurrentProxy()
	assert.Equal(t, "http://10.0.0.1:8080", p)
}

func TestProxyManagerWithoutProxies(t *testing.T) {
	pm := NewProxyManager(nil, "stock-lens/1.0", quietLogger())

	assert.False(t, pm.HasProxies())
	p, err := pm.GetCurrentProxy()
	assert.NoError(t, err)
	assert.Empty(t, p)
	assert.Equal(t, "stock-lens/1.0", pm.GetUserAgent())
}

func TestUserAgentRotationUsesDefaults(t *testing.T) {
	pm := NewProxyManager(nil, "", quietLogger())

	assert.Contains(t, defaultUserAgents, pm.GetUserAgent())
}
