// Package quickserve exposes a single local file or directory over HTTP(S) with minimal setup.
//
// Startup resolves a bind address (explicit, configured, or all interfaces), probes an ordered list of
// ports for the first free one, and resolves the asset through an alias table.  Every request is then
// answered by a Handler: a configured redirect, the file's (optionally rewritten) contents, a file
// matched inside the served directory, or a small JSON error.
package quickserve

import (
	"github.com/ghetzel/quickserve/util"
)

const ApplicationName = util.ApplicationName
const ApplicationSummary = util.ApplicationSummary
const ApplicationVersion = util.ApplicationVersion
