package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-reminder/internal/config"
	"github.com/tartampluch/go-reminder/internal/engine"
	"github.com/tartampluch/go-reminder/internal/report"
	"github.com/tartampluch/go-reminder/internal/server"
	"github.com/tartampluch/go-reminder/internal/source"
)

// noSetup replaces the persistent pre-run for commands that need neither
// settings nor logging.
func noSetup(*cobra.Command, []string) error { return nil }

// -----------------------------------------------------------------------------
// next
// -----------------------------------------------------------------------------

func (a *app) nextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   config.CmdNext,
		Short: config.CmdNextShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runNext(cmd.Context())
		},
	}
}

func (a *app) runNext(ctx context.Context) error {
	snap, err := a.load(ctx)
	if err != nil {
		return err
	}
	return report.New(a.stdout, a.settings.Color).Render(snap)
}

// load runs the engine and logs what a lenient load skipped.
func (a *app) load(ctx context.Context) (*engine.Snapshot, error) {
	snap, err := engine.New(a.settings).Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := snap.Err(); err != nil {
		slog.Warn(config.ErrRecordsSkipped,
			config.LogKeyComponent, config.CompMain,
			config.LogKeySkipped, len(snap.Skipped),
			config.LogKeyError, err,
		)
	}
	return snap, nil
}

// -----------------------------------------------------------------------------
// export
// -----------------------------------------------------------------------------

func (a *app) exportCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   config.CmdExport,
		Short: config.CmdExportShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			if output == "" {
				return snap.WriteICS(a.stdout)
			}

			f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, config.FilePermUserRW)
			if err != nil {
				return fmt.Errorf("%s: %w", config.ErrOutputFile, err)
			}
			if err := snap.WriteICS(f); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("%s: %w", config.ErrOutputFile, err)
			}
			slog.Info(config.MsgExported,
				config.LogKeyComponent, config.CompMain,
				config.LogKeyFile, output,
				config.LogKeyEvents, len(snap.Events),
			)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, config.FlagOutput, config.FlagShortOut, "", config.FlagDescOutput)
	return cmd
}

// -----------------------------------------------------------------------------
// serve
// -----------------------------------------------------------------------------

func (a *app) serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   config.CmdServe,
		Short: config.CmdServeShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed(config.FlagAddr) {
				a.settings.Server.Addr = addr
			}
			return a.serve(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, config.FlagAddr, config.DefaultAddr, config.FlagDescAddr)
	return cmd
}

// serve runs the feed server and its refresher until ctx is cancelled or
// either of them fails.
func (a *app) serve(parent context.Context) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	srv := server.NewCalendarServer(a.settings.Server.Addr)
	refresher := &server.Refresher{
		Render: func(ctx context.Context) ([]byte, error) {
			snap, err := a.load(ctx)
			if err != nil {
				return nil, err
			}
			return snap.ICS()
		},
		Target:   srv,
		Schedule: a.settings.Server.Refresh,
	}

	errs := make(chan error, 2)
	go func() { errs <- srv.Start(ctx) }()
	go func() { errs <- refresher.Run(ctx) }()

	// The first one to return stops the other.
	err := <-errs
	cancel()
	if err2 := <-errs; err == nil {
		err = err2
	}
	return err
}

// -----------------------------------------------------------------------------
// config
// -----------------------------------------------------------------------------

func (a *app) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   config.CmdConfig,
		Short: config.CmdConfigShort,
	}

	var force bool
	initCmd := &cobra.Command{
		Use:               config.CmdInit,
		Short:             config.CmdInitShort,
		Args:              cobra.MaximumNArgs(1),
		PersistentPreRunE: noSetup,
		RunE: func(_ *cobra.Command, args []string) error {
			path := a.configPath
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				var err error
				if path, err = config.DefaultPath(); err != nil {
					return err
				}
			}
			if err := config.WriteDefault(path, force); err != nil {
				return err
			}
			_, err := fmt.Fprintln(a.stdout, path)
			return err
		},
	}
	initCmd.Flags().BoolVar(&force, config.FlagForce, false, config.FlagDescForce)

	cmd.AddCommand(initCmd)
	return cmd
}

// -----------------------------------------------------------------------------
// auth
// -----------------------------------------------------------------------------

func (a *app) authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   config.CmdAuth,
		Short: config.CmdAuthShort,
	}

	var user string
	setCmd := &cobra.Command{
		Use:   config.CmdAuthSet,
		Short: config.CmdAuthSetLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed(config.FlagUser) {
				user = a.settings.VCard.User
			}
			if user == "" {
				return errors.New(config.ErrUserRequired)
			}
			_, _ = fmt.Fprint(a.stderr, config.MsgPasswordPrompt)
			pass, err := readPassword(a.stdin)
			if err != nil {
				return err
			}
			return source.SetPassword(user, pass)
		},
	}
	setCmd.Flags().StringVarP(&user, config.FlagUser, config.FlagShortUser, "", config.FlagDescUser)

	cmd.AddCommand(setCmd)
	return cmd
}

// readPassword reads a single line from r, without its line ending.
func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("%s: %w", config.ErrPasswordRead, err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// -----------------------------------------------------------------------------
// version
// -----------------------------------------------------------------------------

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:               config.CmdVersion,
		Short:             config.CmdVersionDesc,
		Args:              cobra.NoArgs,
		PersistentPreRunE: noSetup,
		RunE: func(*cobra.Command, []string) error {
			_, err := fmt.Fprintf(a.stdout, config.MsgVersionOutput,
				config.AppName,
				config.Version,
				config.Commit,
				config.Date,
				runtime.GOOS,
				runtime.GOARCH,
			)
			return err
		},
	}
}
