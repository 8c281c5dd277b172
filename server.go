package quickserve

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	humanize "github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/ghetzel/go-stockutil/log"
	"github.com/ghetzel/quickserve/internal/netif"
	"github.com/urfave/negroni"
	"golang.org/x/sync/errgroup"
)

var DefaultShutdownTimeout = 5 * time.Second

type Server struct {
	// Configuration loaded from the YAML config file.
	Config *Config `json:"-"`

	// An interface name or literal address to bind to; overrides the configured bind list.
	Bind string `json:"bind,omitempty"`

	// The file or directory to serve (before alias resolution).
	Asset string `json:"asset"`

	// The port to try before any configured fallback ports.
	RequestedPort int `json:"port,omitempty"`

	// Status reported when a directory lookup finds nothing (default 404).
	StatusCode int `json:"status_code,omitempty"`

	// Serve HTTPS using a freshly generated self-signed certificate.
	TLS bool `json:"tls,omitempty"`

	// Dump request headers and bodies after each access log line.
	Verbose bool `json:"verbose,omitempty"`

	Headers       []Header       `json:"headers,omitempty"`
	Substitutions []Substitution `json:"substitutions,omitempty"`
	Redirect      string         `json:"redirect,omitempty"`

	// Where the download suggestion is copied; nil only prints it.
	Clipboard Clipboard `json:"-"`

	Interfaces InterfaceResolver `json:"-"`
	ExternalIP ExternalIPFetcher `json:"-"`
	Ports      *PortSelector     `json:"-"`

	// Terminal output (banner and access log); defaults to stdout.
	Output io.Writer `json:"-"`

	bind        BindSpec
	port        int
	asset       ResolvedAsset
	cert        *tls.Certificate
	handler     *negroni.Negroni
	initialized bool
}

func NewServer(config *Config) *Server {
	if config == nil {
		config = new(Config)
	}

	return &Server{
		Config:     config,
		Interfaces: new(netif.System),
		ExternalIP: new(HTTPExternalIP),
		Ports:      new(PortSelector),
		Output:     os.Stdout,
	}
}

// Resolve the bind address, port and asset, generate a certificate (if TLS is enabled), and prepare
// the request handler.  Errors returned here are fatal.
func (self *Server) Initialize(ctx context.Context) error {
	if self.Config == nil {
		self.Config = new(Config)
	}

	if self.Interfaces == nil {
		self.Interfaces = new(netif.System)
	}

	if self.Ports == nil {
		self.Ports = new(PortSelector)
	}

	if bind, err := ResolveBind(ctx, self.Bind, self.Config.BindList(), self.Interfaces, self.ExternalIP); err == nil {
		self.bind = bind
		log.Debugf("bind: listening on %s, advertising %s", bind.IP, bind.Display)
	} else {
		return err
	}

	var candidates = PortCandidates(self.RequestedPort, self.Config.Fallbacks())

	if len(candidates) == 0 {
		return fatal(ErrNoPorts)
	}

	if port, ok := self.Ports.SelectPort(self.bind.IP, candidates); ok {
		self.port = port
	} else {
		return fatal(ErrNoPortAvailable)
	}

	self.asset = ResolveAsset(self.Asset, self.Config.Aliases())

	if self.asset.Kind == MissingAsset && self.Redirect == `` {
		log.Warningf("%s does not exist; every request will report %q", self.asset.Path, ErrNoMatch.Error())
	}

	if self.TLS {
		if cert, err := GenerateCertificate(self.bind.IP, self.bind.Display); err == nil {
			self.cert = &cert
		} else {
			return startupError(`cannot generate certificate`, err)
		}
	}

	if err := self.setupServer(); err != nil {
		return err
	}

	self.initialized = true
	return nil
}

func (self *Server) BindSpec() BindSpec {
	return self.bind
}

func (self *Server) Port() int {
	return self.port
}

func (self *Server) ResolvedAsset() ResolvedAsset {
	return self.asset
}

func (self *Server) Scheme() string {
	if self.TLS {
		return `https`
	}

	return `http`
}

// The host:port the listener binds to.
func (self *Server) Address() string {
	return net.JoinHostPort(self.bind.IP, strconv.Itoa(self.port))
}

// The URL clients should use to reach this server.
func (self *Server) URL() string {
	return fmt.Sprintf("%s://%s", self.Scheme(), net.JoinHostPort(self.bind.Display, strconv.Itoa(self.port)))
}

// Print the startup banner and, for single files, the suggested download command.
func (self *Server) Announce() {
	var out = self.output()
	var assetName = color.New(color.FgYellow).Sprint(self.asset.Path)

	if self.asset.IsFile() {
		fmt.Fprintf(out, "Serving %s (%s) at %s\n", assetName, humanize.Bytes(uint64(self.asset.Size)), self.URL())
	} else {
		fmt.Fprintf(out, "Serving %s at %s\n", assetName, self.URL())
	}

	if self.Redirect != `` {
		fmt.Fprintf(out, "Redirecting all requests to %s\n", self.Redirect)
		return
	}

	if !self.asset.IsFile() {
		return
	}

	var suggestion = Suggestion(self.asset.Path, self.URL())
	var blue = color.New(color.FgBlue)

	if self.Clipboard != nil {
		if copied, err := CopyToClipboard(self.Clipboard, suggestion); err == nil {
			fmt.Fprintf(out, "Copied '%s' to clipboard\n", blue.Sprint(copied))
			return
		} else {
			log.Warningf("Could not copy to clipboard: %v", err)
		}
	}

	fmt.Fprintf(out, "Suggested: %s\n", blue.Sprint(suggestion))
}

// Open the listener on the resolved address, wrapped in TLS if enabled.
func (self *Server) Listen() (net.Listener, error) {
	if !self.initialized {
		return nil, fmt.Errorf("server is not initialized")
	}

	if listener, err := net.Listen(`tcp`, self.Address()); err == nil {
		if self.cert != nil {
			return tls.NewListener(listener, &tls.Config{
				Certificates: []tls.Certificate{*self.cert},
				NextProtos:   []string{`http/1.1`},
			}), nil
		}

		return listener, nil
	} else {
		return nil, startupError(`cannot listen on `+self.Address(), err)
	}
}

// Serve requests on the given listener until the context is cancelled.
func (self *Server) Serve(ctx context.Context, listener net.Listener) error {
	var srv = &http.Server{
		Handler: self,
	}

	var group, gctx = errgroup.WithContext(ctx)

	group.Go(func() error {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	group.Go(func() error {
		<-gctx.Done()

		var sctx, cancel = context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()

		log.Debugf("shutting down %s", self.Address())
		return srv.Shutdown(sctx)
	})

	return group.Wait()
}

func (self *Server) ListenAndServe(ctx context.Context) error {
	if listener, err := self.Listen(); err == nil {
		return self.Serve(ctx, listener)
	} else {
		return err
	}
}

func (self *Server) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if self.handler == nil {
		http.Error(w, `server is not initialized`, http.StatusServiceUnavailable)
		return
	}

	self.handler.ServeHTTP(w, req)
}

func (self *Server) output() io.Writer {
	if self.Output == nil {
		return os.Stdout
	}

	return self.Output
}
