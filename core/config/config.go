package config

import (
	_ "embed"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/anmitsu/go-shlex"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

var (
	//go:embed default/config.yaml
	defaultConfigData []byte
)

const (
	ConfigurationName = "config.yaml"
)

type Configuration struct {
	configFs afero.Fs

	Prompt       Prompt       `json:"prompt"`
	EventLog     string       `json:"event_log"`
	Monitor      Monitor      `json:"monitor"`
	SearchConfig SearchConfig `json:"search_config"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

type Prompt struct {
	Color       bool   `json:"color"`
	HistoryFile string `json:"history_file"`
}

type Monitor struct {
	Program         string `json:"program" validate:"required"`
	Args            string `json:"args"`
	PIDFile         string `json:"pid_file" validate:"required"`
	PipePath        string `json:"pipe_path" validate:"required"`
	StopWaitSeconds int    `json:"stop_wait_seconds" validate:"gte=0"`
	MaxReads        int    `json:"max_reads" validate:"gte=0"`
}

// Argv returns the monitor program followed by its arguments.
func (m *Monitor) Argv() ([]string, error) {
	args, err := shlex.Split(m.Args, true)
	if err != nil {
		return nil, err
	}
	return append([]string{m.Program}, args...), nil
}

// StopWait is how long to give an old monitor to exit.
func (m *Monitor) StopWait() time.Duration {
	return time.Duration(m.StopWaitSeconds) * time.Second
}

type SearchConfig struct {
	DefaultExtension string `json:"default_extension" validate:"required,startswith=."`
}

func (c *Configuration) fs() afero.Fs {
	if c.configFs == nil {
		return afero.NewOsFs()
	}
	return c.configFs
}

// Fs returns the filesystem paths in the configuration are relative to.
func (c *Configuration) Fs() afero.Fs {
	return c.fs()
}

// OpenEventLog opens the event log in an append only state.
func (c *Configuration) OpenEventLog() (afero.File, error) {
	return c.fs().OpenFile(c.EventLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

// ReadEventLog opens the event log for reading.
func (c *Configuration) ReadEventLog() (afero.File, error) {
	return c.fs().OpenFile(c.EventLog, os.O_RDONLY, 0600)
}

// HistoryPath returns the path of the history file on the host or the empty
// string if history isn't persisted.
func (c *Configuration) HistoryPath() string {
	if c.Prompt.HistoryFile == "" {
		return ""
	}
	if base, ok := c.fs().(*afero.BasePathFs); ok {
		if path, err := base.RealPath(c.Prompt.HistoryFile); err == nil {
			return path
		}
	}
	return c.Prompt.HistoryFile
}

// Default returns the built-in configuration.
func Default() *Configuration {
	return defaultConfig()
}

func defaultConfig() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}
