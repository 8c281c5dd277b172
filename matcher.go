package quickserve

import (
	"io"
	"net/http"
	"path"

	"github.com/ghetzel/go-stockutil/fileutil"
)

// The result of locating a request path inside a served directory.
type AssetMatch struct {
	Name        string
	ContentType string
	Data        []byte
}

// Locate a regular file under base for the given (already decoded) request path.  Paths are cleaned
// and rooted at base, so ".." segments can't escape it.  Directories never match.
func MatchAsset(base string, requestPath string) (*AssetMatch, error) {
	var name = path.Clean(`/` + requestPath)

	if file, err := http.Dir(base).Open(name); err == nil {
		defer file.Close()

		if stat, err := file.Stat(); err == nil {
			if !stat.Mode().IsRegular() {
				return nil, ErrNoMatch
			}

			if data, err := io.ReadAll(file); err == nil {
				return &AssetMatch{
					Name:        name,
					ContentType: fileutil.GetMimeType(stat.Name(), `application/octet-stream`),
					Data:        data,
				}, nil
			} else {
				return nil, err
			}
		} else {
			return nil, err
		}
	} else {
		return nil, ErrNoMatch
	}
}
