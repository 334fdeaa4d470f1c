// Command simtempmon runs a simulated temperature sensor and streams its
// samples to the terminal. It reads startup overrides from a device file,
// applies optional flag overrides, and keeps watching the file so parameters
// can be changed while streaming.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"

	"github.com/embedded-sdks/simtemp"
	"github.com/embedded-sdks/simtemp/devicetree"
	simerr "github.com/embedded-sdks/simtemp/errors"
)

func main() {
	var (
		deviceFile = flag.String("f", "", "device file with startup overrides")
		sampling   = flag.Uint("sampling-ms", 0, "override sampling interval in ms")
		threshold  = flag.Int("threshold-mc", 0, "override threshold in milli-degrees")
		mode       = flag.String("mode", "", "override mode (normal, noisy, ramp)")
		poll       = flag.Bool("poll", false, "poll non-blocking instead of blocking reads")
		verbose    = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: level}))

	if err := run(log, *deviceFile, *sampling, *threshold, *mode, *poll); err != nil {
		log.Error("monitor failed", "error", err)
		os.Exit(1)
	}
}

func run(
	log *slog.Logger,
	deviceFile string,
	sampling uint,
	threshold int,
	mode string,
	poll bool,
) error {
	ctx, cancel := signal.NotifyContext(
		context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := simtemp.DefaultConfiguration()
	if deviceFile != "" {
		cfg = devicetree.Load(deviceFile, log)
	}
	if sampling != 0 {
		cfg.SamplingInterval = time.Duration(sampling) * time.Millisecond
	}
	if threshold != 0 {
		cfg.Threshold = int32(threshold)
	}
	if mode != "" {
		m, err := simtemp.ParseMode(mode)
		if err != nil {
			return err
		}
		cfg.Mode = m
	}

	dev, err := simtemp.New(
		simtemp.WithConfig(cfg),
		simtemp.WithLogger(log),
	)
	if err != nil {
		return err
	}

	if err := dev.Start(ctx); err != nil {
		return err
	}
	defer func() {
		_ = dev.Stop()
		fmt.Println(dev.Stats())
	}()

	if deviceFile != "" {
		watcher, err := devicetree.Watch(deviceFile, dev, log)
		if err != nil {
			return err
		}
		defer watcher.Close()
	}

	if poll {
		return pollLoop(ctx, dev)
	}
	return streamLoop(ctx, dev)
}

// streamLoop consumes samples with blocking reads, one record per call.
func streamLoop(ctx context.Context, dev *simtemp.Device) error {
	for {
		s, err := dev.Read(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		printSample(s)
	}
}

// pollLoop demonstrates the readiness predicate with non-blocking reads.
func pollLoop(ctx context.Context, dev *simtemp.Device) error {
	tick := time.NewTicker(10 * time.Millisecond)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick.C:
			for dev.PollReady() {
				s, err := dev.TryRead()
				if simerr.IsWouldBlock(err) {
					break
				}
				if err != nil {
					return err
				}
				printSample(s)
			}
		}
	}
}

func printSample(s simtemp.Sample) {
	mark := " "
	if s.Crossed() {
		mark = "!"
	}
	fmt.Printf("%14d ns  %8.3f °C %s\n",
		s.Timestamp, float64(s.Temperature)/1000, mark)
}
