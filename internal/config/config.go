package config

import (
	"github.com/cockroachdb/errors"
	log "github.com/sirupsen/logrus"

	"github.com/vkngwrapper/gpuselect/internal/bootstrap"
)

const (
	DefaultAppName  = "gpuselect"
	ValidationLayer = "VK_LAYER_KHRONOS_validation"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	AppName string

	// Validation enables the Khronos validation layer and routes its
	// messages to the log.
	Validation bool
	Verbose    bool

	QueueCount    int
	QueuePriority float32
}

func Default() Config {
	opts := bootstrap.DefaultOptions()
	return Config{
		AppName:       DefaultAppName,
		QueueCount:    opts.QueueCount,
		QueuePriority: opts.QueuePriority,
	}
}

func (c Config) Validate() error {
	if c.AppName == "" {
		return errors.Wrap(ErrInvalidConfig, "application name must not be empty")
	}

	if err := c.BootstrapOptions().Validate(); err != nil {
		return errors.Mark(err, ErrInvalidConfig)
	}

	return nil
}

func (c Config) BootstrapOptions() bootstrap.Options {
	return bootstrap.Options{
		QueueCount:    c.QueueCount,
		QueuePriority: c.QueuePriority,
	}
}

func (c Config) LogLevel() log.Level {
	if c.Verbose {
		return log.DebugLevel
	}
	return log.InfoLevel
}

func (c Config) Layers() []string {
	if !c.Validation {
		return nil
	}
	return []string{ValidationLayer}
}
