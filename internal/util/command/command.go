package command

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/chapool/child-wallet/internal/api"
	"github/chapool/child-wallet/internal/config"
	"golang.org/x/term"
)

const (
	shutdownTimeout = 30 * time.Second
)

// NewSubcommandGroup returns a command that only groups subCommands and prints
// its help when run on its own.
func NewSubcommandGroup(name string, subCommands ...*cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   name,
		Short: fmt.Sprintf("%s related subcommands", name),
		Run: func(cmd *cobra.Command, _ []string) {
			if err := cmd.Help(); err != nil {
				log.Error().Err(err).Msg("Failed to print help")
			}
		},
	}

	cmd.AddCommand(subCommands...)

	return cmd
}

// ConfigureLogger applies the logger config to the global zerolog instance.
func ConfigureLogger(cfg config.Server) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.SetGlobalLevel(cfg.Logger.Level)

	if cfg.Logger.PrettyPrintConsole {
		log.Logger = log.Output(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
			w.TimeFormat = "15:04:05"
			w.Out = os.Stderr
		}))
	}
}

// WithServer initializes a server from cfg, runs f and shuts the server down
// again. Routes are not attached.
func WithServer(ctx context.Context, cfg config.Server, f func(ctx context.Context, s *api.Server) error) error {
	ConfigureLogger(cfg)

	s, err := api.InitNewServer(cfg)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize server")
		return err
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		if errs := s.Shutdown(shutdownCtx); len(errs) > 0 {
			log.Error().Errs("errors", errs).Msg("Failed to gracefully shut down server")
		}
	}()

	return f(ctx, s)
}

// PromptPassword reads a password from the terminal without echoing it.
func PromptPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd()) //nolint:gosec
	if !term.IsTerminal(fd) {
		return "", errors.New("password prompt requires an interactive terminal")
	}

	fmt.Fprint(os.Stderr, prompt)
	raw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", errors.Wrap(err, "failed to read password")
	}

	return string(raw), nil
}
