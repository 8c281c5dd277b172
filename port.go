package quickserve

import (
	"net"
	"strconv"

	"github.com/ghetzel/go-stockutil/log"
)

const MaxPort = 65535

// Build the ordered list of ports to probe: the requested port (if non-zero) followed by each
// fallback port not already present.  Ports outside 1-65535 are skipped.
func PortCandidates(requested int, fallbacks []int) []int {
	var candidates []int
	var seen = make(map[int]bool)

	for _, port := range append([]int{requested}, fallbacks...) {
		if port == 0 || seen[port] {
			continue
		} else if port < 0 || port > MaxPort {
			log.Warningf("ignoring invalid port %d", port)
			continue
		}

		seen[port] = true
		candidates = append(candidates, port)
	}

	return candidates
}

// Reports whether the given host:port can currently be bound.
type ProbeFunc func(host string, port int) bool

// Attempt to listen on host:port, releasing the listener immediately.
func CanBind(host string, port int) bool {
	if listener, err := net.Listen(`tcp`, net.JoinHostPort(host, strconv.Itoa(port))); err == nil {
		listener.Close()
		return true
	} else {
		log.Debugf("port %d unavailable: %v", port, err)
		return false
	}
}

type PortSelector struct {
	Probe ProbeFunc
}

// Return the first candidate that can be bound on the given address, in list order.  Another process
// may claim the port between this probe and the real listen; that race is not retried.
func (self *PortSelector) SelectPort(bindIP string, candidates []int) (int, bool) {
	var probe = self.Probe

	if probe == nil {
		probe = CanBind
	}

	for _, port := range candidates {
		if probe(bindIP, port) {
			return port, true
		}
	}

	return 0, false
}

func SelectPort(bindIP string, candidates []int) (int, bool) {
	return new(PortSelector).SelectPort(bindIP, candidates)
}
