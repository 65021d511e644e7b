// Package config parses iplocator configuration files.
//
// TOML is a primary format. Files with .hjson or .json extension are
// read as HJSON with the same keys.
package config

import (
	"encoding/json"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/hjson/hjson-go"
	"github.com/juju/errors"
)

const (
	DefaultListen         = "0.0.0.0:7001"
	DefaultTablePath      = "./data/locations.tbl"
	DefaultRequestTimeout = 30 * time.Second
)

type duration struct {
	time.Duration
}

func (dur *duration) UnmarshalText(text []byte) (err error) {
	dur.Duration, err = time.ParseDuration(string(text))
	return
}

type Build struct {
	IPv4Sources []string `toml:"ipv4_sources" json:"ipv4_sources"`
	IPv6Sources []string `toml:"ipv6_sources" json:"ipv6_sources"`
	Limit       int      `toml:"limit" json:"limit"`
}

func (b Build) GetIPv4Sources() []string {
	return b.IPv4Sources
}

func (b Build) GetIPv6Sources() []string {
	return b.IPv6Sources
}

func (b Build) GetLimit() int {
	return b.Limit
}

// Auth enables HTTP basic auth if both fields are set.
type Auth struct {
	User     string `toml:"user" json:"user"`
	Password string `toml:"password" json:"password"`
}

func (a Auth) Enabled() bool {
	return a.User != "" && a.Password != ""
}

type Config struct {
	Listen         string   `toml:"listen" json:"listen"`
	TablePath      string   `toml:"table_path" json:"table_path"`
	StaticDir      string   `toml:"static_dir" json:"static_dir"`
	RequestTimeout duration `toml:"request_timeout" json:"request_timeout"`
	BasicAuth      Auth     `toml:"basic_auth" json:"basic_auth"`
	Build          Build    `toml:"build" json:"build"`
}

func (c *Config) GetListen() string {
	if c.Listen != "" {
		return c.Listen
	}

	return DefaultListen
}

func (c *Config) GetTablePath() string {
	if c.TablePath != "" {
		return c.TablePath
	}

	return DefaultTablePath
}

func (c *Config) GetStaticDir() string {
	return c.StaticDir
}

func (c *Config) GetRequestTimeout() time.Duration {
	if c.RequestTimeout.Duration > 0 {
		return c.RequestTimeout.Duration
	}

	return DefaultRequestTimeout
}

func (c *Config) GetBasicAuth() Auth {
	return c.BasicAuth
}

func (c *Config) GetBuild() Build {
	return c.Build
}

// Validate checks values which can be set both by a file and by
// command line flags.
func (c *Config) Validate() error {
	if _, _, err := net.SplitHostPort(c.GetListen()); err != nil {
		return errors.Annotatef(err, "incorrect host:port for listen %s", c.GetListen())
	}

	if c.RequestTimeout.Duration < 0 {
		return errors.Errorf("incorrect request timeout %s", c.RequestTimeout.Duration)
	}

	if (c.BasicAuth.User == "") != (c.BasicAuth.Password == "") {
		return errors.New("basic auth requires both user and password")
	}

	if c.Build.Limit < 0 {
		return errors.Errorf("incorrect build limit %d", c.Build.Limit)
	}

	if c.StaticDir != "" {
		stat, err := os.Stat(c.StaticDir)
		if err != nil {
			return errors.Annotatef(err, "incorrect static directory %s", c.StaticDir)
		}

		if !stat.IsDir() {
			return errors.Errorf("static directory %s is not a directory", c.StaticDir)
		}
	}

	return nil
}

// Parse reads TOML configuration.
func Parse(reader io.Reader) (*Config, error) {
	conf := &Config{}

	buf, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Annotate(err, "cannot read config file")
	}

	if _, err := toml.Decode(string(buf), conf); err != nil {
		return nil, errors.Annotate(err, "cannot parse config file")
	}

	if err := conf.Validate(); err != nil {
		return nil, errors.Annotate(err, "invalid value")
	}

	return conf, nil
}

// ParseHJSON reads HJSON configuration.
func ParseHJSON(reader io.Reader) (*Config, error) {
	conf := &Config{}

	buf, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Annotate(err, "cannot read config file")
	}

	rawMap := map[string]interface{}{}
	if err := hjson.Unmarshal(buf, &rawMap); err != nil {
		return nil, errors.Annotate(err, "cannot parse config file")
	}

	rawBytes, err := json.Marshal(rawMap)
	if err != nil {
		return nil, errors.Annotate(err, "cannot convert config file")
	}

	if err := json.Unmarshal(rawBytes, conf); err != nil {
		return nil, errors.Annotate(err, "cannot parse config file")
	}

	if err := conf.Validate(); err != nil {
		return nil, errors.Annotate(err, "invalid value")
	}

	return conf, nil
}

// Load reads a config file picking the format by extension.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Annotate(err, "cannot open config file")
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".hjson", ".json":
		return ParseHJSON(file)
	}

	return Parse(file)
}
