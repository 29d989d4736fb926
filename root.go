package main

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/iburimskiy/animated-dots/internal/config"
	"github.com/iburimskiy/animated-dots/internal/game"
	"github.com/iburimskiy/animated-dots/internal/logging"
	"github.com/iburimskiy/animated-dots/internal/prefs"
	"github.com/iburimskiy/animated-dots/internal/sound"
	"github.com/iburimskiy/animated-dots/internal/term"
)

const appName = "animated_dots"

type options struct {
	configPath string
	logLevel   string
	logFile    string
	style      string
	mute       bool
	volume     float64
}

// session is everything a host needs, built from flags and saved preferences.
type session struct {
	log    logr.Logger
	file   config.File
	prefs  *prefs.Manager
	player *sound.Player
}

func newRootCommand() *cobra.Command {
	opts := &options{logLevel: "info", volume: 0.5}

	cmd := &cobra.Command{
		Use:           "animated-dots",
		Short:         "Show animated dot counters in a window",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.newSession(false)
			if err != nil {
				return err
			}
			return game.Run(game.New(game.Options{
				File:   s.file,
				Prefs:  s.prefs,
				Player: s.player,
				Log:    s.log,
			}))
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Counter config YAML (default: the last opened file, then the built-in rows)")
	flags.StringVar(&opts.logLevel, "log-level", opts.logLevel, "Log level: trace|debug|info|warn|error")
	flags.StringVar(&opts.logFile, "log-file", "", "Write logs to this file instead of stderr")
	flags.StringVar(&opts.style, "style", "", "Transition style for every row: basic|embellished (default: as configured)")
	flags.BoolVar(&opts.mute, "mute", false, "Start with sound off")
	flags.Float64Var(&opts.volume, "volume", opts.volume, "Sound volume from 0 to 1")
	cmd.Example = `  # Two demo rows in a window
  animated-dots

  # Rows from a file, all with the basic transitions
  animated-dots --config dots.yaml --style basic

  # Same counters in the terminal, logging transitions to a file
  animated-dots term --log-level trace --log-file dots.log`

	cmd.AddCommand(newTermCommand(opts))
	return cmd
}

func newTermCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:           "term",
		Short:         "Show the counters in the terminal",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.newSession(true)
			if err != nil {
				return err
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("failed to create screen: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("failed to init screen: %w", err)
			}
			defer screen.Fini()

			return term.New(screen, term.Options{
				File:   s.file,
				Prefs:  s.prefs,
				Player: s.player,
				Log:    s.log,
			}).Run(cmd.Context())
		},
	}
}

// logger builds the zap logger. The terminal host owns stderr, so without
// --log-file it only checks the level and discards everything.
func (o *options) logger(terminal bool) (logr.Logger, error) {
	if o.logFile != "" {
		return logging.New(o.logLevel, o.logFile)
	}
	log, err := logging.New(o.logLevel)
	if err != nil {
		return logr.Logger{}, err
	}
	if terminal {
		return logr.Discard(), nil
	}
	return log, nil
}

func (o *options) newSession(terminal bool) (*session, error) {
	if o.volume < 0 || o.volume > 1 {
		return nil, fmt.Errorf("--volume must be between 0 and 1, got %v", o.volume)
	}
	log, err := o.logger(terminal)
	if err != nil {
		return nil, err
	}

	p := prefs.Open(appName, log)
	if err := o.applyFlags(p); err != nil {
		return nil, err
	}
	file, err := o.loadFile(p, log)
	if err != nil {
		return nil, err
	}

	player := sound.NewPlayer(o.volume, log)
	if err := player.Init(); err != nil {
		// Non-fatal, the counters run without sound
		log.Info("sound disabled", "error", err.Error())
	}

	return &session{log: log, file: file, prefs: p, player: player}, nil
}

// applyFlags lets --style and --mute override the saved preferences for
// this run. They are persisted with the next preference change.
func (o *options) applyFlags(p *prefs.Manager) error {
	if strings.TrimSpace(o.style) != "" {
		style, err := config.ParseStyle(o.style)
		if err != nil {
			return err
		}
		p.SetStyle(style)
	}
	if o.mute {
		p.SetMuted(true)
	}
	return nil
}

// loadFile picks the counter rows: --config, then the last opened file,
// then the built-in demo rows. An explicit --config must load.
func (o *options) loadFile(p *prefs.Manager, log logr.Logger) (config.File, error) {
	if o.configPath != "" {
		file, err := config.LoadFile(o.configPath)
		if err != nil {
			return config.File{}, err
		}
		p.SetConfigPath(o.configPath)
		return file, nil
	}
	if last := p.Settings().ConfigPath; last != "" {
		file, err := config.LoadFile(last)
		if err == nil {
			log.V(1).Info("using last opened counter config", "path", last)
			return file, nil
		}
		log.Info("last opened counter config is unusable, using built-in rows", "path", last, "error", err.Error())
	}
	return config.DefaultFile(), nil
}
