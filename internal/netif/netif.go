// Package netif looks up the addresses assigned to local network interfaces by name.
package netif

import (
	"net"
)

// System resolves interface names using the host's network stack.
type System struct {
	// Overrides interface enumeration; used in tests.
	Lister func() ([]Interface, error)
}

type Interface struct {
	Name  string
	Addrs []net.IP
}

// Enumerate all interfaces on this host along with their assigned IP addresses.
func Interfaces() ([]Interface, error) {
	var out []Interface

	if ifaces, err := net.Interfaces(); err == nil {
		for _, iface := range ifaces {
			var entry = Interface{
				Name: iface.Name,
			}

			if addrs, err := iface.Addrs(); err == nil {
				for _, addr := range addrs {
					switch a := addr.(type) {
					case *net.IPNet:
						entry.Addrs = append(entry.Addrs, a.IP)
					case *net.IPAddr:
						entry.Addrs = append(entry.Addrs, a.IP)
					}
				}
			} else {
				return nil, err
			}

			out = append(out, entry)
		}

		return out, nil
	} else {
		return nil, err
	}
}

// Return the preferred IP of the named interface: the first IPv4 address, otherwise the first address
// of any family.  The boolean is false if no such interface exists or it has no addresses.
func (self *System) InterfaceIP(name string) (string, bool, error) {
	var lister = self.Lister

	if lister == nil {
		lister = Interfaces
	}

	if ifaces, err := lister(); err == nil {
		for _, iface := range ifaces {
			if iface.Name != name {
				continue
			}

			if ip := Preferred(iface.Addrs); ip != nil {
				return ip.String(), true, nil
			}
		}

		return ``, false, nil
	} else {
		return ``, false, err
	}
}

// Pick the first IPv4 address, falling back to the first address given.
func Preferred(addrs []net.IP) net.IP {
	for _, ip := range addrs {
		if ip.To4() != nil {
			return ip
		}
	}

	if len(addrs) > 0 {
		return addrs[0]
	}

	return nil
}
