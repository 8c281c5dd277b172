package quickserve

import (
	"net"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortCandidates(t *testing.T) {
	assert.Equal(t, []int{8080, 8000, 9000}, PortCandidates(8080, []int{8000, 8080, 9000, 8000}))
	assert.Equal(t, []int{8000, 8080}, PortCandidates(0, []int{8000, 8080}))
	assert.Equal(t, []int{1234}, PortCandidates(1234, nil))
	assert.Equal(t, []int{80}, PortCandidates(0, []int{-1, 0, 70000, 80}))
	assert.Empty(t, PortCandidates(0, nil))
}

func TestSelectPortOrder(t *testing.T) {
	var probed []int
	var free = map[int]bool{
		8001: true,
		8002: true,
	}

	var selector = &PortSelector{
		Probe: func(host string, port int) bool {
			assert.Equal(t, `10.0.0.5`, host)
			probed = append(probed, port)
			return free[port]
		},
	}

	port, ok := selector.SelectPort(`10.0.0.5`, []int{8000, 8002, 8001})
	assert.True(t, ok)
	assert.Equal(t, 8002, port)
	assert.Equal(t, []int{8000, 8002}, probed)

	_, ok = selector.SelectPort(`10.0.0.5`, []int{9000, 9001})
	assert.False(t, ok)

	_, ok = selector.SelectPort(`10.0.0.5`, nil)
	assert.False(t, ok)
}

func TestSelectPortRealSockets(t *testing.T) {
	busy, err := net.Listen(`tcp`, `127.0.0.1:0`)
	require.NoError(t, err)
	defer busy.Close()

	var busyPort = busy.Addr().(*net.TCPAddr).Port
	var freePort = freeTestPort(t)

	port, ok := SelectPort(`127.0.0.1`, []int{busyPort, freePort})
	assert.True(t, ok)
	assert.Equal(t, freePort, port)

	// the probe released the port again
	listener, err := net.Listen(`tcp`, net.JoinHostPort(`127.0.0.1`, strconv.Itoa(freePort)))
	require.NoError(t, err)
	listener.Close()

	assert.True(t, CanBind(`127.0.0.1`, freePort))
	assert.False(t, CanBind(`127.0.0.1`, busyPort))
}

func freeTestPort(t *testing.T) int {
	listener, err := net.Listen(`tcp`, `127.0.0.1:0`)
	require.NoError(t, err)

	var port = listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	return port
}
