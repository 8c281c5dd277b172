package quickserve

import (
	"errors"
	"net/http"
	"os"
	"unicode/utf8"

	"github.com/ghetzel/go-stockutil/fileutil"
	"github.com/ghetzel/go-stockutil/httputil"
	"github.com/ghetzel/go-stockutil/log"
)

// Handler decides and writes the response for every request from configuration fixed at startup.
// It holds no per-request state and is safe for concurrent use.
type Handler struct {
	Asset         ResolvedAsset
	Substitutions []Substitution
	Headers       []Header
	Redirect      string

	// Used as the status of a failed directory match; zero means 404.  Successful file and
	// directory responses always report 200.
	StatusCode int
}

// Decide how to respond to the given request.
func (self *Handler) Decide(req *http.Request) ResponseDecision {
	var decision ResponseDecision

	if self.Redirect != `` {
		decision = ResponseDecision{
			Source:     RedirectBody,
			Location:   self.Redirect,
			StatusCode: http.StatusFound,
		}
	} else if self.Asset.IsFile() {
		decision = self.decideFile()
	} else {
		decision = self.decideDirectory(req)
	}

	decision.Headers = append(decision.Headers, self.Headers...)

	return decision
}

func (self *Handler) decideFile() ResponseDecision {
	if data, err := os.ReadFile(self.Asset.Path); err == nil {
		var valid = utf8.Valid(data)

		if len(self.Substitutions) > 0 {
			if !valid {
				log.Warningf("cannot apply replacements to %s: not valid UTF-8 text", self.Asset.Path)
				return errorDecision(ErrReadingFile, 0)
			}

			data = []byte(Substitute(string(data), self.Substitutions))
		}

		var fallback = `application/octet-stream`

		if valid {
			fallback = `text/plain; charset=utf-8`
		}

		return ResponseDecision{
			Source:      FileTextBody,
			ContentType: fileutil.GetMimeType(self.Asset.Path, fallback),
			Body:        data,
			StatusCode:  http.StatusOK,
		}
	} else {
		log.Warningf("cannot read %s: %v", self.Asset.Path, err)
		return errorDecision(ErrReadingFile, 0)
	}
}

func (self *Handler) decideDirectory(req *http.Request) ResponseDecision {
	if match, err := MatchAsset(self.Asset.Path, req.URL.Path); err == nil {
		return ResponseDecision{
			Source:      DirectoryMatchBody,
			ContentType: match.ContentType,
			Body:        match.Data,
			StatusCode:  http.StatusOK,
		}
	} else {
		if !errors.Is(err, ErrNoMatch) {
			log.Debugf("match %s in %s: %v", req.URL.Path, self.Asset.Path, err)
		}

		return errorDecision(ErrNoMatch, self.StatusCode)
	}
}

func errorDecision(err error, override int) ResponseDecision {
	var decision = ResponseDecision{
		Source:     ErrorBody,
		Error:      err.Error(),
		StatusCode: http.StatusInternalServerError,
	}

	var coded *CodeableError

	if errors.As(err, &coded) {
		decision.StatusCode = coded.Code()
	}

	if override > 0 {
		decision.StatusCode = override
	}

	return decision
}

// Write a decision to the response.  Custom headers are appended just before the status line goes
// out, so they follow any header the response writer sets itself (like the JSON content type).
func (self *Handler) Write(w http.ResponseWriter, req *http.Request, decision ResponseDecision) {
	var hw = &headerAppender{
		ResponseWriter: w,
		headers:        decision.Headers,
	}

	if decision.ContentType != `` {
		hw.Header().Set(`Content-Type`, decision.ContentType)
	}

	switch decision.Source {
	case RedirectBody:
		// sent verbatim, never resolved against the request path
		hw.Header().Set(`Location`, decision.Location)
		hw.WriteHeader(decision.StatusCode)
	case ErrorBody:
		httputil.RespondJSON(hw, map[string]string{
			`error`: decision.Error,
		}, decision.StatusCode)
	default:
		hw.WriteHeader(decision.StatusCode)

		if _, err := hw.Write(decision.Body); err != nil {
			log.Debugf("write %s: %v", req.URL.Path, err)
		}
	}
}

// adds the configured headers (never replacing existing values) when the header is written
type headerAppender struct {
	http.ResponseWriter
	headers []Header
	written bool
}

func (self *headerAppender) WriteHeader(code int) {
	if !self.written {
		self.written = true

		for _, header := range self.headers {
			self.ResponseWriter.Header().Add(header.Name, header.Value)
		}
	}

	self.ResponseWriter.WriteHeader(code)
}

func (self *headerAppender) Write(p []byte) (int, error) {
	if !self.written {
		self.WriteHeader(http.StatusOK)
	}

	return self.ResponseWriter.Write(p)
}

func (self *Handler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	self.Write(w, req, self.Decide(req))
}
