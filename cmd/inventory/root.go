package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rogerio-castellano/inventory-keeper/internal/config"
	"github.com/rogerio-castellano/inventory-keeper/internal/log"
	"github.com/rogerio-castellano/inventory-keeper/internal/repo"
	"github.com/rogerio-castellano/inventory-keeper/internal/shell"
)

// app holds what every command needs once configuration has been loaded.
type app struct {
	v          *viper.Viper
	configFile string
	fs         afero.Fs

	cfg    config.Config
	logger *slog.Logger
	store  *repo.FileProductRepository
}

func newRootCmd() *cobra.Command {
	return newRootCmdWithFs(afero.NewOsFs())
}

func newRootCmdWithFs(fs afero.Fs) *cobra.Command {
	a := &app{v: config.New(), fs: fs}

	root := &cobra.Command{
		Use:   "inventory",
		Short: "Keep a product inventory in a JSON file",
		Long: `inventory keeps product records (code, name, price, quantity) in a JSON file.

Run without a subcommand to open the interactive menu.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return shell.New(a.store, cmd.InOrStdin(), cmd.OutOrStdout(),
				shell.WithLowStockThreshold(a.cfg.LowStockThreshold),
				shell.WithLogger(a.logger),
			).Run()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default: ./inventory.yaml or $HOME/.config/inventory/inventory.yaml)")
	flags.String("file", "", "inventory file (default \""+config.DefaultFile+"\")")
	flags.String("log-level", "", "log level: debug, info, warn, error (default \"info\")")
	flags.String("log-format", "", "log format: text or json (default \"text\")")
	_ = a.v.BindPFlag("file", flags.Lookup("file"))
	_ = a.v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("log.format", flags.Lookup("log-format"))

	root.AddCommand(
		a.listCmd(),
		a.getCmd(),
		a.addCmd(),
		a.updateCmd(),
		a.removeCmd(),
		a.statsCmd(),
		a.importCmd(),
	)
	return root
}

// setup loads configuration, builds the logger and opens the inventory file.
// A reset inventory (missing, unreadable or corrupted file) is reported but not fatal.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}
	cfg, err := config.Load(a.v, a.configFile)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	a.cfg = cfg
	a.logger = log.NewSlogLogger(cfg.Log, cmd.ErrOrStderr())
	a.logger.Debug("configuration loaded", slog.String("config", cfg.String()))

	a.store, err = repo.NewFileProductRepository(a.fs, cfg.File, a.logger)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v; starting with an empty inventory.\n", err)
	}
	return nil
}
