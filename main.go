/*
micromouse runs the maze-exploration and path-planning core against either
the real hardware collaborators (not included here; see navigator.Actuator
and navigator.Perception) or, by default, an in-memory simulator: parse
configuration, construct collaborators, and drive Mission.Iterate until the
speed run finishes.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kirbotics/micromouse/config"
	"github.com/kirbotics/micromouse/diagnostics"
	"github.com/kirbotics/micromouse/mission"
	"github.com/kirbotics/micromouse/sim"
	"github.com/kirbotics/micromouse/telemetry"
	"github.com/spf13/viper"
)

var (
	debug       *bool
	mazeLength  *int
	stackSize   *int
	addr        *string
	simulate    *bool
	configPath  *string
	stepDelayMs *int
)

func init() {
	debug = flag.Bool("debug", false, "debug-level logging")
	mazeLength = flag.Int("maze-length", 0, "maze side length N (0 = use config/default)")
	stackSize = flag.Int("stack-size", 0, "move stack capacity (0 = use config/default)")
	addr = flag.String("addr", "", "diagnostics server listen address; empty disables it")
	simulate = flag.Bool("sim", true, "drive the in-memory simulator instead of real hardware")
	configPath = flag.String("config", "config.yaml", "path to the YAML config file")
	stepDelayMs = flag.Int("step-delay-ms", -1, "simulator per-maneuver delay in ms (-1 = use config/default)")
	flag.Parse()
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(viper.New(), *configPath)
	if err != nil {
		return config.Config{}, err
	}

	if *mazeLength > 0 {
		cfg.MazeLength = *mazeLength
	}
	if *stackSize > 0 {
		cfg.StackSize = *stackSize
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *stepDelayMs >= 0 {
		cfg.StepDelayMs = *stepDelayMs
	}
	cfg.Debug = cfg.Debug || *debug
	cfg.Simulate = cfg.Simulate && *simulate

	return cfg, cfg.Validate()
}

func runApp() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := telemetry.NewConsole(cfg.Debug)
	defer log.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !cfg.Simulate {
		return fmt.Errorf("main: real-hardware collaborators are not built into this binary; run with -sim")
	}

	ground := sim.ClassicMaze()
	if ground.Len() != cfg.MazeLength {
		ground = sim.EmptyMaze(cfg.MazeLength)
		log.Warnw("classic maze size mismatch, falling back to an empty maze", "want", cfg.MazeLength, "have", 16)
	}
	mouse := sim.NewMouse(ground, time.Duration(cfg.StepDelayMs)*time.Millisecond)

	m := mission.New(cfg.MazeLength, cfg.StackSize, mouse, mouse, log)

	var snapshots chan diagnostics.Snapshot
	if cfg.Addr != "" {
		snapshots = make(chan diagnostics.Snapshot, 1)
		srv := diagnostics.NewServer(cfg.Addr, snapshots, log)
		go func() {
			if err := srv.Serve(ctx); err != nil {
				log.Errorw("diagnostics server exited", "error", err)
			}
		}()
		log.Infow("diagnostics server listening", "addr", cfg.Addr)
	}

	log.Infow("mission starting", "mazeLength", cfg.MazeLength, "stackSize", cfg.StackSize)

	for {
		select {
		case <-ctx.Done():
			log.Infow("mission interrupted")
			return nil
		default:
		}

		if err := m.Iterate(); err != nil {
			return fmt.Errorf("main: mission iteration failed: %w", err)
		}

		if snapshots != nil {
			select {
			case snapshots <- diagnostics.SnapshotOf(m):
			default:
			}
		}

		if m.State() == mission.Finished {
			log.Infow("mission finished")
			return nil
		}
	}
}

func main() {
	if err := runApp(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
