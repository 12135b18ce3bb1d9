package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-reminder/internal/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// main delegates to runMain so that deferred calls (closing the log file)
// run before os.Exit.
func main() {
	os.Exit(runMain())
}

// runMain wires signals to the command tree and maps the outcome to an
// exit code.
func runMain() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a := &app{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	defer a.close()

	root := a.rootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}

	slog.Debug(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

// app holds the global flags and what the persistent pre-run derives from
// them.
type app struct {
	configPath string
	debug      bool
	lenient    bool
	dataDir    string
	color      string

	settings  *config.Settings
	logCloser io.Closer

	stdin          io.Reader
	stdout, stderr io.Writer
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           config.AppCommand,
		Short:         config.AppShort,
		SilenceUsage:  true,
		SilenceErrors: true,
		// Plain invocation prints the report.
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runNext(cmd.Context())
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, config.FlagConfig, config.FlagShortCfg, "", config.FlagDescConfig)
	pf.BoolVar(&a.debug, config.FlagDebug, false, config.FlagDescDebug)
	pf.BoolVar(&a.lenient, config.FlagLenient, false, config.FlagDescLenient)
	pf.StringVar(&a.dataDir, config.FlagDataDir, "", config.FlagDescDataDir)
	pf.StringVar(&a.color, config.FlagColor, "", config.FlagDescColor)

	root.AddCommand(
		a.nextCmd(),
		a.exportCmd(),
		a.serveCmd(),
		a.configCmd(),
		a.authCmd(),
		a.versionCmd(),
	)
	return root
}

// setup loads the settings, applies the flag overrides and installs the
// default logger.
func (a *app) setup(cmd *cobra.Command) error {
	s, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed(config.FlagDataDir) {
		s.DataDir = a.dataDir
	}
	if flags.Changed(config.FlagColor) {
		s.Color = a.color
	}
	if a.lenient {
		s.Strict = false
	}
	if err := s.Validate(); err != nil {
		return fmt.Errorf("%s: %w", config.ErrConfigInvalid, err)
	}
	a.settings = s

	if err := a.setupLogging(s.Log); err != nil {
		return err
	}
	logStartupInfo()
	return nil
}

// setupLogging sends JSON logs to stderr and, when configured, to a rotating
// log file.
func (a *app) setupLogging(ls config.LogSettings) error {
	level, err := ls.SlogLevel()
	if err != nil {
		return err
	}
	if a.debug {
		level = slog.LevelDebug
	}

	writers := []io.Writer{a.stderr}
	if ls.File != "" {
		lj := &lumberjack.Logger{
			Filename:   ls.File,
			MaxSize:    ls.MaxSizeMB,
			MaxBackups: ls.MaxBackups,
			Compress:   true,
		}
		writers = append(writers, lj)
		a.logCloser = lj
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: a.debug,
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), opts)))
	return nil
}

func (a *app) close() {
	if a.logCloser != nil {
		_ = a.logCloser.Close() // Best effort close
	}
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Debug(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}
