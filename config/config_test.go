package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfigOk(t *testing.T) {
	text := `listen = "127.0.0.1:8000"
		table_path = "/var/lib/iplocator/locations.tbl"
		request_timeout = "5s"

		[build]
		ipv4_sources = ["a.csv.zip", "b.csv.zip"]
		ipv6_sources = ["c.csv.zip"]
		limit = 100`

	conf, err := Parse(strings.NewReader(text))
	assert.Nil(t, err)
	assert.NotNil(t, conf)

	assert.Equal(t, "127.0.0.1:8000", conf.GetListen())
	assert.Equal(t, "/var/lib/iplocator/locations.tbl", conf.GetTablePath())
	assert.Equal(t, "", conf.GetStaticDir())
	assert.Equal(t, 5*time.Second, conf.GetRequestTimeout())
	assert.Equal(t, []string{"a.csv.zip", "b.csv.zip"}, conf.GetBuild().GetIPv4Sources())
	assert.Equal(t, []string{"c.csv.zip"}, conf.GetBuild().GetIPv6Sources())
	assert.Equal(t, 100, conf.GetBuild().GetLimit())
}

func TestConfigDefaults(t *testing.T) {
	conf, err := Parse(strings.NewReader(""))
	assert.Nil(t, err)
	assert.NotNil(t, conf)

	assert.Equal(t, DefaultListen, conf.GetListen())
	assert.Equal(t, DefaultTablePath, conf.GetTablePath())
	assert.Equal(t, DefaultRequestTimeout, conf.GetRequestTimeout())
	assert.Empty(t, conf.GetBuild().GetIPv4Sources())
	assert.Equal(t, 0, conf.GetBuild().GetLimit())
}

func TestIncorrectListen(t *testing.T) {
	_, err := Parse(strings.NewReader(`listen = "localhost"`))
	assert.NotNil(t, err)
}

func TestIncorrectDuration(t *testing.T) {
	_, err := Parse(strings.NewReader(`request_timeout = "soon"`))
	assert.NotNil(t, err)
}

func TestIncorrectLimit(t *testing.T) {
	text := `
		[build]
		limit = -1`

	_, err := Parse(strings.NewReader(text))
	assert.NotNil(t, err)
}

func TestIncorrectStaticDir(t *testing.T) {
	_, err := Parse(strings.NewReader(`static_dir = "/assdlfkjhsdfkjshfkladflskafsalkfhaslg;f234r4fsd"`))
	assert.NotNil(t, err)
}

func TestHJSON(t *testing.T) {
	text := `{
		# comments are allowed
		listen: 127.0.0.1:9000
		request_timeout: 10s
		build: {
			ipv4_sources: ["a.csv.zip"]
			limit: 10
		}
	}`

	conf, err := ParseHJSON(strings.NewReader(text))
	assert.Nil(t, err)
	assert.NotNil(t, conf)

	assert.Equal(t, "127.0.0.1:9000", conf.GetListen())
	assert.Equal(t, 10*time.Second, conf.GetRequestTimeout())
	assert.Equal(t, []string{"a.csv.zip"}, conf.GetBuild().GetIPv4Sources())
	assert.Equal(t, 10, conf.GetBuild().GetLimit())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	tomlPath := filepath.Join(dir, "config.toml")
	hjsonPath := filepath.Join(dir, "config.hjson")

	assert.NoError(t, os.WriteFile(tomlPath, []byte(`listen = "127.0.0.1:1"`), 0644))
	assert.NoError(t, os.WriteFile(hjsonPath, []byte(`{listen: "127.0.0.1:2"}`), 0644))

	conf, err := Load(tomlPath)
	assert.Nil(t, err)
	assert.Equal(t, "127.0.0.1:1", conf.GetListen())

	conf, err = Load(hjsonPath)
	assert.Nil(t, err)
	assert.Equal(t, "127.0.0.1:2", conf.GetListen())

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.NotNil(t, err)
}

func TestBasicAuth(t *testing.T) {
	text := `
		[basic_auth]
		user = "admin"
		password = "secret"`

	conf, err := Parse(strings.NewReader(text))
	assert.Nil(t, err)
	assert.True(t, conf.GetBasicAuth().Enabled())

	text = `
		[basic_auth]
		user = "admin"`

	_, err = Parse(strings.NewReader(text))
	assert.NotNil(t, err)
}
