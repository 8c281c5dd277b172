package quickserve

import (
	"context"

	"github.com/ghetzel/go-stockutil/log"
)

const ExternalBindToken = `external`

// An InterfaceResolver maps a network interface name to one of its IP addresses.
type InterfaceResolver interface {
	InterfaceIP(name string) (string, bool, error)
}

// BindSpec describes where the server listens and what address it advertises.
type BindSpec struct {
	Requested  string   `json:"requested,omitempty"`
	Configured []string `json:"configured,omitempty"`
	IP         string   `json:"ip"`
	Display    string   `json:"display"`
}

// Determine the bind IP and display address.  An explicit bind argument wins (interface name or
// literal address), then the configured list is consulted in order, and with nothing configured the
// server listens on all interfaces while advertising the host's external IP.
func ResolveBind(ctx context.Context, requested string, configured []string, ifaces InterfaceResolver, ext ExternalIPFetcher) (BindSpec, error) {
	var spec = BindSpec{
		Requested:  requested,
		Configured: configured,
	}

	if requested != `` {
		if ip, ok, err := ifaces.InterfaceIP(requested); err == nil {
			if ok {
				spec.IP = ip
			} else {
				spec.IP = requested
			}

			spec.Display = spec.IP
			return spec, nil
		} else {
			return spec, startupError(`cannot enumerate network interfaces`, err)
		}
	}

	if len(configured) == 0 {
		spec.IP = WildcardAddress
		spec.Display = externalOrWildcard(ctx, ext)
		return spec, nil
	}

	for _, candidate := range configured {
		if candidate == ExternalBindToken {
			spec.IP = WildcardAddress
			spec.Display = externalOrWildcard(ctx, ext)
			return spec, nil
		}

		if ip, ok, err := ifaces.InterfaceIP(candidate); err == nil {
			if ok {
				spec.IP = ip
				spec.Display = ip
				return spec, nil
			}

			log.Debugf("bind: interface %q not found, trying next", candidate)
		} else {
			return spec, startupError(`cannot enumerate network interfaces`, err)
		}
	}

	return spec, fatal(ErrNoBindAddress)
}
