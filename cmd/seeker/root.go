package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"seeker/internal/config"
	"seeker/internal/gui"
	"seeker/internal/log"
	"seeker/internal/store"
	"seeker/internal/watch"
)

// rootOptions holds what PersistentPreRunE resolved for the subcommands.
type rootOptions struct {
	cfgFile string
	debug   bool
	logFile string

	cfg     *config.Config
	cfgPath string
}

// newRootCmd creates the root command
func newRootCmd() *cobra.Command {
	rt := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "seeker",
		Short: "A project launcher with a column file dialog",
		Long: `Seeker keeps a list of your projects and opens new ones through a
column-style file dialog. Run without a subcommand to start the desktop app.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return rt.load(cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !gui.IsGUIAvailable() {
				return rt.runTUI()
			}
			return rt.runGUI()
		},
	}

	rootCmd.PersistentFlags().StringVar(&rt.cfgFile, "config", "", "config file (default is $HOME/.Seeker/config.toml)")
	rootCmd.PersistentFlags().BoolVar(&rt.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&rt.logFile, "log-file", "", "append log output to this file")

	rootCmd.AddCommand(rt.guiCmd())
	rootCmd.AddCommand(rt.tuiCmd())
	rootCmd.AddCommand(rt.projectsCmd())
	rootCmd.AddCommand(rt.configCmd())
	return rootCmd
}

// load reads the configuration and sets up logging. A config file that
// cannot be used falls back to the defaults with a warning.
func (rt *rootOptions) load(warn io.Writer) error {
	rt.cfgPath = rt.cfgFile
	if rt.cfgPath == "" {
		path, err := config.DefaultPath()
		if err != nil {
			return err
		}
		rt.cfgPath = path
	}

	cfg, err := config.LoadConfigFile(rt.cfgPath)
	if err != nil {
		fmt.Fprintf(warn, "Warning: %v\n", err)
		fmt.Fprintln(warn, "Using default settings.")
		cfg = config.New()
	}
	rt.cfg = cfg

	opts, err := rt.logOptions(nil)
	if err != nil {
		return err
	}
	log.Configure(opts...)
	log.SetDebug(rt.debug || cfg.Log.Debug)
	return nil
}

// logOptions builds logger options from flags and config. fallbackFile is
// used when neither names a log file.
func (rt *rootOptions) logOptions(fallbackFile *string) ([]log.Option, error) {
	var opts []log.Option
	if rt.cfg.Log.JSON {
		opts = append(opts, log.WithJSON())
	}
	file := rt.logFile
	if file == "" {
		file = rt.cfg.Log.File
	}
	if file == "" && fallbackFile != nil {
		file = *fallbackFile
	}
	if file == "" {
		return opts, nil
	}
	path, err := config.ExpandPath(file)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("error creating log directory: %w", err)
	}
	return append(opts, log.WithFile(path)), nil
}

func (rt *rootOptions) openStore() (*store.SQLiteRepository, error) {
	path, err := rt.cfg.DatabasePath()
	if err != nil {
		return nil, err
	}
	return store.Open(path)
}

// openWatcher returns nil when directory watching is unavailable; the
// frontends then run without live refresh.
func openWatcher() *watch.Watcher {
	w, err := watch.New(watch.DefaultDebounce)
	if err != nil {
		log.LogWithError(err).Warn("live directory refresh disabled")
		return nil
	}
	return w
}
