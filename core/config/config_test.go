package config

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v2"
)

func TestBuiltinConfig(t *testing.T) {
	rawConfig := make(map[string]interface{})
	assert.Nil(t, yaml.Unmarshal(defaultConfigData, &rawConfig))

	knownFields := make(map[string]bool)
	rt := reflect.TypeOf(Configuration{})
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		assert.NotEmpty(t, jsonTag)
		jsonField := strings.Split(jsonTag, ",")[0]
		knownFields[jsonField] = true

		if _, ok := rawConfig[jsonField]; !ok {
			assert.False(t, true, "default config missing field: %q", jsonField)
		}
	}

	for k := range rawConfig {
		_, ok := knownFields[k]
		assert.True(t, ok, "default config contains invalid field: %q", k)
	}
}

func TestDefaultConfig(t *testing.T) {
	// Will panic() on load failure because it should never happen at runtime.
	cfg := defaultConfig()
	assert.NotNil(t, cfg)
	assert.Nil(t, cfg.Validate())

	assert.Equal(t, "./monitoring_project", cfg.Monitor.Program)
	assert.Equal(t, "/tmp/monitor_pid", cfg.Monitor.PIDFile)
	assert.Equal(t, "/tmp/monitor_pipe", cfg.Monitor.PipePath)
	assert.Equal(t, time.Second, cfg.Monitor.StopWait())
	assert.Equal(t, 5, cfg.Monitor.MaxReads)
	assert.Equal(t, ".config", cfg.SearchConfig.DefaultExtension)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Configuration){
		"missing program":         func(c *Configuration) { c.Monitor.Program = "" },
		"missing pid file":        func(c *Configuration) { c.Monitor.PIDFile = "" },
		"negative wait":           func(c *Configuration) { c.Monitor.StopWaitSeconds = -1 },
		"negative reads":          func(c *Configuration) { c.Monitor.MaxReads = -3 },
		"extension without dot":   func(c *Configuration) { c.SearchConfig.DefaultExtension = "config" },
		"missing extension":       func(c *Configuration) { c.SearchConfig.DefaultExtension = "" },
		"missing named pipe path": func(c *Configuration) { c.Monitor.PipePath = "" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := defaultConfig()
			mutate(cfg)
			assert.NotNil(t, cfg.Validate())
		})
	}
}

func TestMonitorArgv(t *testing.T) {
	m := Monitor{Program: "./mon", Args: `--interval 2 "a b"`}

	argv, err := m.Argv()
	assert.Nil(t, err)
	assert.Equal(t, []string{"./mon", "--interval", "2", "a b"}, argv)

	m.Args = ""
	argv, err = m.Argv()
	assert.Nil(t, err)
	assert.Equal(t, []string{"./mon"}, argv)
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	assert.Nil(t, err)
	assert.Equal(t, defaultConfig(), cfg)
}
