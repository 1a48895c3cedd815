package main

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"yashubustudio/reconciler/internal/logging"
	"yashubustudio/reconciler/reconciler"
)

const envPrefix = "RECONCILER"

// cli carries the state shared by every subcommand once flags, environment
// and the config file have been merged.
type cli struct {
	v      *viper.Viper
	cfg    reconciler.Config
	logger zerolog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New(), logger: logging.Nop()}
	root := &cobra.Command{
		Use:   "reconciler-cli",
		Short: "Reconcile process spreadsheets and assign responsible parties",
		Long: `reconciler-cli compares the current process spreadsheet with a reference
one, marks which processes are still pending, carries the responsible party
over and classifies the rest from the free-text column using a keyword
dictionary.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "config file (default is ./config.yaml)")
	pf.String("log-level", "", "log level: trace, debug, info, warn, error")
	pf.String("log-format", "", "log format: json, console or auto")
	pf.String("dictionary", "", "keyword dictionary file (YAML or JSON)")
	pf.String("text-column", "", "free-text column used for classification")
	for _, name := range []string{"config", "log-level", "log-format", "dictionary", "text-column"} {
		if err := c.v.BindPFlag(name, pf.Lookup(name)); err != nil {
			panic(fmt.Sprintf("bind %s flag: %v", name, err))
		}
	}

	root.AddCommand(c.newProcessCmd(), c.newDictionaryCmd(), c.newColumnsCmd(), c.newConfigCmd())
	return root
}

// setup merges .env files, RECONCILER_* variables, flags and config.yaml into
// c.cfg and builds the logger.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	loadEnvFiles()
	c.v.SetEnvPrefix(envPrefix)
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	c.v.AutomaticEnv()

	cfg, err := reconciler.LoadConfig(c.v.GetString("config"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if v := strings.TrimSpace(c.v.GetString("dictionary")); v != "" {
		cfg.DictionaryPath = v
	}
	if v := strings.TrimSpace(c.v.GetString("text-column")); v != "" {
		cfg.TextColumn = v
	}
	if v := strings.TrimSpace(c.v.GetString("output-dir")); v != "" {
		cfg.OutputDir = v
	}
	if v := c.v.GetString("log-level"); v != "" {
		cfg.Log.Level = v
	}
	if v := c.v.GetString("log-format"); v != "" {
		cfg.Log.Format = v
	}
	c.cfg = cfg

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.Log.Level
	logCfg.Format = cfg.Log.Format
	logCfg.Output = cfg.Log.Output
	c.logger = logging.New(logCfg)
	c.logger.Debug().Str("command", cmd.Name()).Str("dictionary", cfg.DictionaryPath).Msg("configuration loaded")
	return nil
}

// loadEnvFiles loads .env then .env.local. Variables already set win.
func loadEnvFiles() {
	for _, name := range []string{".env", ".env.local"} {
		_ = godotenv.Load(name)
	}
}
