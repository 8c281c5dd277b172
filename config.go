package quickserve

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ghetzel/go-stockutil/fileutil"
	"github.com/ghetzel/go-stockutil/log"
	"gopkg.in/yaml.v2"
)

var DefaultConfigFilename = `config.yaml`

type Config struct {
	// A pipe-delimited list of interface names, literal IPs, or the token "external".
	Bind string `yaml:"bind"`

	// Exact-match rewrites from a short asset name to a filesystem path.
	Alias map[string]string `yaml:"alias"`

	// Ports tried (in order) after the explicitly requested one.
	FallbackPorts []int `yaml:"fallback_ports"`

	path string
}

// Parse the given YAML data into a Config.
func ParseConfig(data []byte) (*Config, error) {
	var config = new(Config)

	if err := yaml.Unmarshal(data, config); err == nil {
		return config, nil
	} else {
		return nil, err
	}
}

// Load configuration from the given file.  Missing or malformed files are not fatal; a warning is
// logged and an empty configuration is returned instead.
func LoadConfig(filename string) *Config {
	if filename == `` {
		log.Warningf("Could not open config file: no path given")
		return new(Config)
	} else if !fileutil.FileExists(filename) {
		log.Warningf("Could not open config file %s", filename)
		return new(Config)
	}

	if data, err := os.ReadFile(filename); err == nil {
		if config, err := ParseConfig(data); err == nil {
			config.path = filename
			log.Debugf("loaded configuration from %s", filename)
			return config
		} else {
			log.Warningf("Could not parse config file %s: %v", filename, err)
		}
	} else {
		log.Warningf("Could not open config file %s: %v", filename, err)
	}

	return new(Config)
}

// The default configuration path: config.yaml in the directory holding the running executable.
func DefaultConfigPath() string {
	if exe, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}

		return filepath.Join(filepath.Dir(exe), DefaultConfigFilename)
	} else {
		log.Debugf("cannot locate executable: %v", err)
		return DefaultConfigFilename
	}
}

// Returns the non-empty entries of the pipe-delimited bind option, in order.
func (self *Config) BindList() []string {
	var binds []string

	if self == nil {
		return nil
	}

	for _, b := range strings.Split(self.Bind, `|`) {
		if b = strings.TrimSpace(b); b != `` {
			binds = append(binds, b)
		}
	}

	return binds
}

func (self *Config) Aliases() map[string]string {
	if self == nil {
		return nil
	}

	return self.Alias
}

func (self *Config) Fallbacks() []int {
	if self == nil {
		return nil
	}

	return self.FallbackPorts
}

func (self *Config) Path() string {
	if self == nil {
		return ``
	}

	return self.path
}

func (self *Config) String() string {
	return fmt.Sprintf("bind=%v aliases=%d fallback_ports=%v", self.BindList(), len(self.Aliases()), self.Fallbacks())
}
