package quickserve

import (
	"errors"
	"net/http"
)

var ErrNoPorts = errors.New(`No fallback ports defined!`)
var ErrNoPortAvailable = errors.New(`No port is available!`)
var ErrNoBindAddress = errors.New(`No configured bind address could be resolved!`)

// A StartupError is a failure that must abort the process before (or while) the listener is created.
type StartupError struct {
	msg string
	err error
}

func (self *StartupError) Error() string {
	if self.msg == `` && self.err != nil {
		return self.err.Error()
	} else if self.err != nil {
		return self.msg + `: ` + self.err.Error()
	} else {
		return self.msg
	}
}

func (self *StartupError) Unwrap() error {
	return self.err
}

func startupError(msg string, err error) error {
	return &StartupError{
		msg: msg,
		err: err,
	}
}

func fatal(err error) error {
	return &StartupError{
		err: err,
	}
}

// Returns whether the given error should terminate the process.
func IsStartupError(err error) bool {
	var serr *StartupError
	return errors.As(err, &serr)
}

// CodeableError carries the HTTP status a per-request failure should be reported with.
type CodeableError struct {
	msg  string
	code int
}

func (self *CodeableError) Code() int {
	if self.code == 0 {
		return http.StatusInternalServerError
	} else {
		return self.code
	}
}

func (self *CodeableError) Error() string {
	return self.msg
}

func ErrorCode(msg string, code int) error {
	return &CodeableError{
		msg:  msg,
		code: code,
	}
}

var ErrNoMatch = ErrorCode(`no match found`, http.StatusNotFound)

// Reported with 500 (not 200) when a single-file asset can't be read or can't take its replacements.
// The status override never applies to it.
var ErrReadingFile = ErrorCode(`error reading file`, http.StatusInternalServerError)
