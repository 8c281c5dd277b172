package main

import (
	"path/filepath"
	"testing"

	"github.com/ghetzel/cli"
	"github.com/ghetzel/quickserve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func configureArgs(t *testing.T, args ...string) (*quickserve.Server, error) {
	var app = newApp()
	var server *quickserve.Server
	var cerr error

	app.Action = func(c *cli.Context) {
		server, cerr = configure(c)
	}

	var argv = append([]string{`quickserve`, `--config`, filepath.Join(t.TempDir(), `config.yaml`)}, args...)

	require.NoError(t, app.Run(hoistFlags(argv, app.Flags)))

	return server, cerr
}

func TestHoistFlags(t *testing.T) {
	var flags = newApp().Flags

	assert.Equal(t, []string{
		`quickserve`, `--ssl`, `-v`, `-H`, `X-A: b`, `--redirect=http://x/`, `script.sh`, `8080`,
	}, hoistFlags([]string{
		`quickserve`, `script.sh`, `8080`, `--ssl`, `-v`, `-H`, `X-A: b`, `--redirect=http://x/`,
	}, flags))

	assert.Equal(t, []string{
		`quickserve`, `-b`, `eth0`, `--`, `docs`, `-weird-name`,
	}, hoistFlags([]string{
		`quickserve`, `docs`, `-b`, `eth0`, `--`, `-weird-name`,
	}, flags))

	assert.Equal(t, []string{`quickserve`}, hoistFlags([]string{`quickserve`}, flags))
}

func TestConfigureFlagsAfterPositionals(t *testing.T) {
	server, err := configureArgs(t, `script.sh`, `8080`, `--ssl`, `-v`, `--no-clipboard`, `-H`, `X-Served-By: me`, `-r`, `a:b`)
	require.NoError(t, err)

	assert.Equal(t, `script.sh`, server.Asset)
	assert.Equal(t, 8080, server.RequestedPort)
	assert.True(t, server.TLS)
	assert.True(t, server.Verbose)
	assert.Nil(t, server.Clipboard)
	assert.Equal(t, []quickserve.Header{{Name: `X-Served-By`, Value: `me`}}, server.Headers)
	assert.Equal(t, []quickserve.Substitution{{Pattern: `a`, Replacement: `b`}}, server.Substitutions)
}

func TestConfigureDefaults(t *testing.T) {
	server, err := configureArgs(t)
	require.NoError(t, err)

	assert.Empty(t, server.Asset)
	assert.Zero(t, server.RequestedPort)
	assert.Zero(t, server.StatusCode)
	assert.False(t, server.TLS)
	assert.NotNil(t, server.Clipboard)
}

func TestConfigurePort(t *testing.T) {
	for _, bad := range []string{`abc`, `65536`, `80.5`, `0x50`} {
		_, err := configureArgs(t, `docs`, bad)
		assert.Error(t, err, bad)
	}

	_, err := configureArgs(t, `docs`, `--`, `-1`)
	assert.Error(t, err)

	server, err := configureArgs(t, `docs`, `65535`)
	require.NoError(t, err)
	assert.Equal(t, 65535, server.RequestedPort)
}

func TestConfigureStatusCode(t *testing.T) {
	for _, bad := range []string{`99`, `100`, `199`, `1000`} {
		_, err := configureArgs(t, `docs`, `-s`, bad)
		assert.Error(t, err, bad)
	}

	server, err := configureArgs(t, `docs`, `--status-code`, `418`)
	require.NoError(t, err)
	assert.Equal(t, 418, server.StatusCode)

	server, err = configureArgs(t, `-s`, `200`, `docs`)
	require.NoError(t, err)
	assert.Equal(t, 200, server.StatusCode)
}

func TestConfigureRejects(t *testing.T) {
	_, err := configureArgs(t, `docs`, `8080`, `extra`)
	assert.ErrorContains(t, err, `Too many arguments`)

	_, err = configureArgs(t, `docs`, `-H`, `no-colon`)
	assert.Error(t, err)

	_, err = configureArgs(t, `docs`, `-r`, `:empty-pattern`)
	assert.Error(t, err)
}
