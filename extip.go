package quickserve

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ghetzel/go-stockutil/log"
)

var DefaultExternalIPURL = `https://myexternalip.com/raw`
var DefaultExternalIPTimeout = 10 * time.Second
var WildcardAddress = `0.0.0.0`

var ExternalIPClient = &http.Client{
	Timeout: DefaultExternalIPTimeout,
}

// An ExternalIPFetcher reports the address this host is seen as from the internet.
type ExternalIPFetcher interface {
	ExternalIP(ctx context.Context) (string, error)
}

// Retrieves the caller's public IP as plain text from a fixed endpoint.
type HTTPExternalIP struct {
	URL    string
	Client *http.Client
}

func (self *HTTPExternalIP) ExternalIP(ctx context.Context) (string, error) {
	var url = self.URL
	var client = self.Client

	if url == `` {
		url = DefaultExternalIPURL
	}

	if client == nil {
		client = ExternalIPClient
	}

	if req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil); err == nil {
		if res, err := client.Do(req); err == nil {
			defer res.Body.Close()

			if res.StatusCode >= 300 {
				return ``, fmt.Errorf("external IP lookup returned HTTP %d", res.StatusCode)
			}

			if data, err := io.ReadAll(io.LimitReader(res.Body, 1024)); err == nil {
				if ip := strings.TrimSpace(string(data)); ip != `` {
					return ip, nil
				} else {
					return ``, fmt.Errorf("external IP lookup returned an empty response")
				}
			} else {
				return ``, err
			}
		} else {
			return ``, err
		}
	} else {
		return ``, err
	}
}

// Fetch the external IP, falling back to the wildcard address on any failure.
func externalOrWildcard(ctx context.Context, fetcher ExternalIPFetcher) string {
	if fetcher == nil {
		return WildcardAddress
	}

	if ip, err := fetcher.ExternalIP(ctx); err == nil {
		return ip
	} else {
		log.Warningf("Could not determine external IP: %v", err)
		return WildcardAddress
	}
}
