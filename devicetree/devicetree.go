// Package devicetree reads the declarative device file that supplies startup
// configuration overrides for a simtemp device, in the manner of a hardware
// description node. Missing or invalid entries fall back to the device
// defaults and are logged; they are never fatal.
package devicetree

import (
	"context"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/embedded-sdks/simtemp"
	"github.com/embedded-sdks/simtemp/internal/log"
)

// Node is the parsed device file. Absent keys stay nil and leave the
// corresponding default untouched.
type Node struct {
	SamplingMS  *uint32 `yaml:"sampling-ms"`
	ThresholdMC *int32  `yaml:"threshold-mC"`
	Mode        *string `yaml:"mode"`
}

// Load reads the device file at path and resolves it against the device
// defaults. A missing or unparsable file yields the defaults.
func Load(path string, logger *slog.Logger) simtemp.Configuration {
	l := log.Wrap(logger)
	ctx := context.Background()

	data, err := os.ReadFile(path)
	if err != nil {
		l.Warn(ctx, "device file unreadable, using defaults",
			slog.String("path", path),
			slog.Any("error", err),
		)
		return simtemp.DefaultConfiguration()
	}

	var node Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		l.Warn(ctx, "device file malformed, using defaults",
			slog.String("path", path),
			slog.Any("error", err),
		)
		return simtemp.DefaultConfiguration()
	}

	return Resolve(node, logger)
}

// Resolve applies the node's overrides on top of the device defaults,
// validating each entry with the same rules as the runtime setters.
func Resolve(node Node, logger *slog.Logger) simtemp.Configuration {
	l := log.Wrap(logger)
	ctx := context.Background()

	cfg := simtemp.DefaultConfiguration()

	if node.SamplingMS != nil {
		interval := time.Duration(*node.SamplingMS) * time.Millisecond
		if interval >= simtemp.MinSamplingInterval &&
			interval <= simtemp.MaxSamplingInterval {
			cfg.SamplingInterval = interval
		} else {
			l.Warn(ctx, "invalid sampling-ms entry, using default",
				slog.Uint64("sampling_ms", uint64(*node.SamplingMS)))
		}
	}

	if node.ThresholdMC != nil {
		cfg.Threshold = *node.ThresholdMC
	}

	if node.Mode != nil {
		mode, err := simtemp.ParseMode(*node.Mode)
		if err != nil {
			l.Warn(ctx, "unknown mode entry, using default",
				slog.String("mode", *node.Mode))
		} else {
			cfg.Mode = mode
		}
	}

	return cfg
}
