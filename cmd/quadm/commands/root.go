// Package commands implements the CLI surface of quadm, the QuokkaFS meta
// server administration and monitoring utility.
package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/quokkafs/quadm/internal/logger"
	"github.com/quokkafs/quadm/pkg/admin"
	"github.com/quokkafs/quadm/pkg/meta"
	"github.com/quokkafs/quadm/pkg/monclient"
	"github.com/spf13/cobra"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// errReported marks failures that were already written to the error channel
// or the log; Execute maps them to exit code 1 without printing again.
var errReported = errors.New("already reported")

// rootFlags holds the invocation options of a single run.
type rootFlags struct {
	metaServer string
	server     string
	port       int
	configFile string
	verbose    bool
}

// host resolves the two host aliases; -m wins when both are given.
func (f *rootFlags) host() string {
	if f.metaServer != "" {
		return f.metaServer
	}
	return f.server
}

// NewRootCmd builds the root command. The positional arguments are the
// admin command tokens, executed in the order given.
func NewRootCmd(registry *admin.Registry) *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "quadm -m|-s <host> -p <port> [-f <config file>] [-v] -- <cmd> <cmd> ...",
		Short: "QuokkaFS meta server administration and monitoring utility",
		Long: `quadm issues monitoring and maintenance commands to a QuokkaFS meta
server and prints the results. Commands run strictly in the order given,
one round-trip at a time, over a single admin session.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, registry, flags, args)
		},
	}

	cmd.Flags().StringVarP(&flags.metaServer, "meta-server", "m", "", "meta server host name")
	cmd.Flags().StringVarP(&flags.server, "server", "s", "", "meta server host name (alias of -m)")
	cmd.Flags().IntVarP(&flags.port, "port", "p", -1, "meta server admin port")
	cmd.Flags().StringVarP(&flags.configFile, "config", "f", "", "client configuration file")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose (debug) logging")

	// Explicit help renders the usage banner plus the command catalog on
	// stdout; invocation errors render the same text on stderr.
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		printUsage(c.OutOrStdout(), registry)
	})
	cmd.SetUsageFunc(func(c *cobra.Command) error {
		printUsage(c.ErrOrStderr(), registry)
		return nil
	})

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newDescribeCmd(registry))
	cmd.AddCommand(newCompletionCmd())
	cmd.CompletionOptions.DisableDefaultCmd = true

	return cmd
}

// printUsage writes the usage banner followed by the full command listing.
func printUsage(w io.Writer, registry *admin.Registry) {
	fmt.Fprint(w, "Usage: quadm\n"+
		" -m|-s <meta server host name>\n"+
		" -p <port>\n"+
		" -f <config file name>\n"+
		" [-v]\n"+
		" --  <cmd> <cmd> ...\n"+
		"Where cmd is one of the following:\n")
	fmt.Fprint(w, registry.RenderListing())
}

// runRoot validates the invocation, configures the client session and hands
// the command tokens to the dispatcher.
func runRoot(cmd *cobra.Command, registry *admin.Registry, flags *rootFlags, tokens []string) error {
	if flags.host() == "" || flags.port < 0 {
		printUsage(cmd.ErrOrStderr(), registry)
		return errReported
	}

	loc := meta.NewServerLocation(flags.host(), flags.port)
	client := monclient.NewClient()

	cfg, err := client.Configure(loc, flags.configFile)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "quadm: %v\n", err)
		return errReported
	}
	defer func() { _ = client.Close() }()

	logCfg := logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}
	if flags.verbose {
		logCfg.Level = "DEBUG"
	}
	if err := logger.Init(logCfg); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "quadm: %v\n", err)
		return errReported
	}

	client.SetMaxContentLength(cfg.Client.MaxContentLength)

	logger.Debug("dispatching admin commands",
		logger.Host(loc.Host), logger.Port(loc.Port),
		"commands", len(tokens))

	d := admin.NewDispatcher(registry, client, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if code := d.Execute(cmd.Context(), loc, tokens); code != 0 {
		return errReported
	}
	return nil
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	root := NewRootCmd(admin.NewRegistry())
	if err := root.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			// Flag parse errors and the like: cobra is silenced, so
			// report here, then show the usage banner.
			fmt.Fprintf(os.Stderr, "quadm: %v\n", err)
			_ = root.Usage()
		}
		return 1
	}
	return 0
}
