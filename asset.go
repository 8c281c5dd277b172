package quickserve

import (
	"os"
	"path/filepath"
)

type AssetKind int

const (
	MissingAsset AssetKind = iota
	FileAsset
	DirectoryAsset
)

func (self AssetKind) String() string {
	switch self {
	case FileAsset:
		return `file`
	case DirectoryAsset:
		return `directory`
	default:
		return `missing`
	}
}

// The asset being served, as resolved once at startup.
type ResolvedAsset struct {
	Original string    `json:"original"`
	Aliased  string    `json:"aliased"`
	Path     string    `json:"path"`
	Kind     AssetKind `json:"kind"`
	Size     int64     `json:"size,omitempty"`
}

func (self ResolvedAsset) IsFile() bool {
	return self.Kind == FileAsset
}

// The base name of the asset path.
func (self ResolvedAsset) Name() string {
	return filepath.Base(self.Path)
}

// Rewrite an asset name through the alias table.  Names that aren't an exact key are returned unchanged.
func ResolveAlias(asset string, aliases map[string]string) string {
	if target, ok := aliases[asset]; ok {
		return target
	}

	return asset
}

// Apply alias substitution to the given asset and classify the resulting path.
func ResolveAsset(asset string, aliases map[string]string) ResolvedAsset {
	var resolved = ResolvedAsset{
		Original: asset,
		Aliased:  ResolveAlias(asset, aliases),
	}

	if resolved.Aliased == `` {
		resolved.Path = `.`
	} else {
		resolved.Path = filepath.Clean(resolved.Aliased)
	}

	if stat, err := os.Stat(resolved.Path); err == nil {
		if stat.Mode().IsRegular() {
			resolved.Kind = FileAsset
			resolved.Size = stat.Size()
		} else if stat.IsDir() {
			resolved.Kind = DirectoryAsset
		}
	}

	return resolved
}
