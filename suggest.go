package quickserve

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
)

type SuggestionKind int

const (
	GenericDownload SuggestionKind = iota
	ShellScript
	PowerShellScript
	WindowsInstaller
)

func (self SuggestionKind) String() string {
	switch self {
	case ShellScript:
		return `shell`
	case PowerShellScript:
		return `powershell`
	case WindowsInstaller:
		return `installer`
	default:
		return `generic`
	}
}

// Categorize a filename by its extension.
func SuggestionKindFor(filename string) SuggestionKind {
	switch strings.ToLower(filepath.Ext(filename)) {
	case `.sh`:
		return ShellScript
	case `.ps1`:
		return PowerShellScript
	case `.exe`, `.msi`:
		return WindowsInstaller
	default:
		return GenericDownload
	}
}

// Build a one-line command a remote host can use to fetch (or run) the served file.
func Suggestion(filename string, serverURL string) string {
	var name = filepath.Base(filename)

	switch SuggestionKindFor(filename) {
	case ShellScript:
		return fmt.Sprintf("curl -k -s %s | bash", serverURL)
	case PowerShellScript:
		return fmt.Sprintf("IEX(New-Object Net.Webclient).downloadString(\"%s\")", serverURL)
	case WindowsInstaller:
		return fmt.Sprintf("wget %s -O $env:TEMP\\%s", serverURL, name)
	default:
		return fmt.Sprintf("wget %s -O /tmp/%s", serverURL, name)
	}
}

type Clipboard interface {
	WriteAll(text string) error
	ReadAll() (string, error)
}

// The desktop clipboard.
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard is not supported on this system")
	}

	return clipboard.WriteAll(text)
}

func (SystemClipboard) ReadAll() (string, error) {
	return clipboard.ReadAll()
}

// Place text on the clipboard and return what the clipboard holds afterwards.
func CopyToClipboard(cb Clipboard, text string) (string, error) {
	if err := cb.WriteAll(text); err != nil {
		return ``, err
	}

	return cb.ReadAll()
}
