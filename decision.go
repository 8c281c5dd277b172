package quickserve

import (
	"fmt"
	"strings"

	"github.com/ghetzel/go-stockutil/stringutil"
)

type BodySource int

const (
	ErrorBody BodySource = iota
	RedirectBody
	FileTextBody
	DirectoryMatchBody
)

func (self BodySource) String() string {
	switch self {
	case RedirectBody:
		return `redirect`
	case FileTextBody:
		return `file`
	case DirectoryMatchBody:
		return `directory`
	default:
		return `error`
	}
}

type Header struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type Substitution struct {
	Pattern     string `json:"pattern"`
	Replacement string `json:"replacement"`
}

// ResponseDecision is everything needed to write the response to a single request.
type ResponseDecision struct {
	Source      BodySource
	Location    string
	ContentType string
	Body        []byte
	Error       string
	StatusCode  int
	Headers     []Header
}

// Split a KEY:VALUE argument on the first colon.
func ParseKeyValue(pair string) (string, string, error) {
	if !strings.Contains(pair, `:`) {
		return ``, ``, fmt.Errorf("Invalid KEY VALUE pair: no `:` found in `%s`", pair)
	}

	var key, value = stringutil.SplitPair(pair, `:`)

	return key, value, nil
}

// Parse a KEY:VALUE header argument.  Whitespace around the name and value is dropped.
func ParseHeader(pair string) (Header, error) {
	if key, value, err := ParseKeyValue(pair); err == nil {
		if key = strings.TrimSpace(key); key == `` {
			return Header{}, fmt.Errorf("Invalid header `%s`: empty name", pair)
		}

		return Header{
			Name:  key,
			Value: strings.TrimSpace(value),
		}, nil
	} else {
		return Header{}, err
	}
}

// Parse a KEY:VALUE replacement argument.  Both sides are used verbatim.
func ParseSubstitution(pair string) (Substitution, error) {
	if key, value, err := ParseKeyValue(pair); err == nil {
		if key == `` {
			return Substitution{}, fmt.Errorf("Invalid replacement `%s`: empty pattern", pair)
		}

		return Substitution{
			Pattern:     key,
			Replacement: value,
		}, nil
	} else {
		return Substitution{}, err
	}
}

// Apply substitutions to text in a single pass.  At each position the first listed pattern that
// matches wins, and replaced output is never scanned again.
func Substitute(text string, subs []Substitution) string {
	if len(subs) == 0 {
		return text
	}

	var oldnew = make([]string, 0, 2*len(subs))

	for _, sub := range subs {
		oldnew = append(oldnew, sub.Pattern, sub.Replacement)
	}

	return strings.NewReplacer(oldnew...).Replace(text)
}
