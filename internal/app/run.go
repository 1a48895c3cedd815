package app

import (
	"fmt"

	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/data/binding"

	"yashubustudio/reconciler/internal/logging"
	"yashubustudio/reconciler/reconciler"
)

const fyneAppID = "yashubustudio.reconciler"

const logPaneLines = 300

const configFile = "config.yaml"

// Run loads the configuration and dictionary and starts the desktop UI. The
// default configuration is written on first run so it can be edited.
func Run() error {
	cfg, err := reconciler.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logBind := binding.NewString()
	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.Log.Level
	logCfg.Format = cfg.Log.Format
	logCfg.Output = cfg.Log.Output
	logCfg.Extra = newLogPane(logBind, logPaneLines)
	logger := logging.New(logCfg)

	created, err := reconciler.EnsureConfigFile(configFile, cfg)
	if err != nil {
		logger.Warn().Err(err).Str("path", configFile).Msg("config not saved")
	} else if created {
		logger.Info().Str("path", configFile).Msg("default config written")
	}

	svc, err := reconciler.NewService(cfg, logger)
	if err != nil {
		return fmt.Errorf("init service: %w", err)
	}

	a := fyneapp.NewWithID(fyneAppID)
	u := buildUI(a, svc, configFile, logger, logBind)
	u.w.ShowAndRun()
	return nil
}
