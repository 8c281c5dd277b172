package quickserve

import (
	"bytes"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/ghetzel/go-stockutil/log"
	"github.com/ghetzel/quickserve/util"
	"github.com/urfave/negroni"
)

const AccessLogTimeFormat = `02/Jan/2006 15:04:05`
const RequestDumpStart = `<!---------- Request Start ----------`
const RequestDumpEnd = `----------  Request End  ----------!>`

type AccessLogEntry struct {
	ClientIP   string
	Timestamp  time.Time
	Method     string
	RawURL     string
	StatusCode int
}

func (self AccessLogEntry) String() string {
	return fmt.Sprintf(
		"%s - - [%s] \"%s %s\" %d",
		color.New(color.Bold).Sprint(self.ClientIP),
		self.Timestamp.Format(AccessLogTimeFormat),
		self.Method,
		self.RawURL,
		self.StatusCode,
	)
}

// AccessLogger is a negroni middleware writing one line per request, optionally followed by a dump of
// the request line, headers and body.
type AccessLogger struct {
	Output  io.Writer
	Verbose bool
	Now     func() time.Time
	lock    sync.Mutex
}

func NewAccessLogger(output io.Writer, verbose bool) *AccessLogger {
	return &AccessLogger{
		Output:  output,
		Verbose: verbose,
	}
}

func (self *AccessLogger) ServeHTTP(w http.ResponseWriter, req *http.Request, next http.HandlerFunc) {
	var body []byte
	var entry = AccessLogEntry{
		ClientIP:  clientIP(req),
		Timestamp: self.now().UTC(),
		Method:    req.Method,
		RawURL:    req.RequestURI,
	}

	if entry.RawURL == `` {
		entry.RawURL = req.URL.RequestURI()
	}

	// read the body up front so the dump sees it; the handler then reads the same bytes followed by
	// whatever the original body still has to say (nothing, unless the read failed)
	if self.Verbose && req.Body != nil && req.Body != http.NoBody {
		var data, err = io.ReadAll(req.Body)

		if err != nil {
			log.Debugf("read request body: %v", err)
		}

		body = data
		req.Body = util.NewChainReader(bytes.NewReader(data), req.Body)
	}

	var rw, ok = w.(negroni.ResponseWriter)

	if !ok {
		rw = negroni.NewResponseWriter(w)
	}

	next(rw, req)

	if entry.StatusCode = rw.Status(); entry.StatusCode == 0 {
		entry.StatusCode = http.StatusOK
	}

	var out strings.Builder

	out.WriteString(entry.String())
	out.WriteString("\n")

	if self.Verbose {
		out.WriteString("\n" + RequestDumpStart + "\n\n")
		out.WriteString(formatRequest(req, body))
		out.WriteString("\n\n" + RequestDumpEnd + "\n\n")
	}

	self.write(out.String())
}

func (self *AccessLogger) write(text string) {
	self.lock.Lock()
	defer self.lock.Unlock()

	var output = self.Output

	if output == nil {
		output = os.Stdout
	}

	if _, err := io.WriteString(output, text); err != nil {
		log.Debugf("access log: %v", err)
	}
}

func (self *AccessLogger) now() time.Time {
	if self.Now != nil {
		return self.Now()
	}

	return time.Now()
}

func clientIP(req *http.Request) string {
	if host, _, err := net.SplitHostPort(req.RemoteAddr); err == nil {
		return host
	}

	return req.RemoteAddr
}

// Render the request line, each header as "Name: Value", and the body (if non-empty).  The Host
// header comes first, the rest are sorted by name with repeated values kept in the order received.
func formatRequest(req *http.Request, body []byte) string {
	var lines []string
	var rawURL = req.RequestURI

	if rawURL == `` {
		rawURL = req.URL.RequestURI()
	}

	lines = append(lines, req.Method+` `+rawURL)

	if req.Host != `` {
		lines = append(lines, `Host: `+req.Host)
	}

	var headers = req.Header.Clone()

	if headers == nil {
		headers = make(http.Header)
	}

	// the server strips Transfer-Encoding from the header map
	if len(req.TransferEncoding) > 0 && len(headers.Values(`Transfer-Encoding`)) == 0 {
		headers[`Transfer-Encoding`] = req.TransferEncoding
	}

	var names = make([]string, 0, len(headers))

	for name := range headers {
		if http.CanonicalHeaderKey(name) == `Host` {
			continue
		}

		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		for _, value := range headers[name] {
			lines = append(lines, name+`: `+value)
		}
	}

	var out = strings.Join(lines, "\n")

	if len(body) > 0 {
		out += "\n\n" + string(body)
	}

	return out
}
