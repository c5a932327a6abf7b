package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/vk/cogroup/internal/app"
	"github.com/vk/cogroup/internal/config"
)

// Version is the program version, set at build time with -ldflags.
var Version = "dev"

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(err error) error {
	return &ExitError{Code: 2, Message: err.Error()}
}

func runError(err error) error {
	return &ExitError{Code: 1, Message: err.Error()}
}

// NewRootCommand builds the cogroup command tree. Command output and logs
// go to outW.
func NewRootCommand(outW io.Writer, loader config.Loader) *cobra.Command {
	root := &cobra.Command{
		Use:   "cogroup",
		Short: "Group metagenomic samples for co-assembly",
		Long: `cogroup partitions sequencing samples into assembly groups. Samples with
high pairwise k-mer similarity are co-assembled, provided their metadata is
consistent for the variables that matter; everything else is assembled
individually. Each group carries a memory and run time estimate.`,
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.SetOut(outW)
	root.SetErr(outW)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	pf := root.PersistentFlags()
	pf.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	pf.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	pf.StringSliceP("config", "c", nil, "HCL configuration file or directory. May be repeated.")

	root.AddCommand(
		newGroupCommand(outW, loader),
		newSummarizeCommand(outW, loader),
		newVersionCommand(),
	)
	return root
}

// newApp builds the application from the command's flags and environment.
func newApp(cmd *cobra.Command, outW io.Writer, loader config.Loader) (*app.App, error) {
	v, err := newViper(cmd)
	if err != nil {
		return nil, usageError(err)
	}

	appConfig, err := app.NewConfig(app.Config{
		ConfigPaths: v.GetStringSlice("config"),
		LogFormat:   v.GetString("log-format"),
		LogLevel:    v.GetString("log-level"),
		Override:    func(m *config.Model) error { return applyOverrides(v, m) },
	})
	if err != nil {
		return nil, usageError(err)
	}

	a, err := app.NewApp(outW, appConfig, loader)
	if err != nil {
		return nil, usageError(err)
	}
	return a, nil
}

func newGroupCommand(outW io.Writer, loader config.Loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Create co-assembly groups from similarity and metadata tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd, outW, loader)
			if err != nil {
				return err
			}
			if _, err := a.Run(cmd.Context()); err != nil {
				return runError(err)
			}
			return nil
		},
	}
	registerGroupFlags(cmd)
	return cmd
}

func newSummarizeCommand(outW io.Writer, loader config.Loader) *cobra.Command {
	return &cobra.Command{
		Use:   "summarize <groups-file>",
		Short: "Print the text summary of a groups file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, outW, loader)
			if err != nil {
				return err
			}
			if err := a.Summarize(args[0], cmd.OutOrStdout()); err != nil {
				return runError(err)
			}
			return nil
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "cogroup %s\n", Version)
		},
	}
}

// AsExitError converts any error into an ExitError, keeping an existing
// code.
func AsExitError(err error) *ExitError {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	return &ExitError{Code: 1, Message: err.Error()}
}
