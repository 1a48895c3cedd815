package app

import (
	"fmt"
	"strings"

	"yashubustudio/reconciler/reconciler"
)

// applySettings hands a new text column and dictionary path to the service
// and saves the accepted configuration to configPath. Nothing is saved when
// the service rejects the change.
func applySettings(svc *reconciler.Service, configPath, textColumn, dictionaryPath string) (reconciler.Config, error) {
	next := svc.Config()
	next.TextColumn = strings.TrimSpace(textColumn)
	if p := strings.TrimSpace(dictionaryPath); p != "" {
		next.DictionaryPath = p
	}
	stored, err := svc.UpdateConfig(next)
	if err != nil {
		return stored, err
	}
	if err := reconciler.SaveConfig(configPath, stored); err != nil {
		return stored, fmt.Errorf("save config: %w", err)
	}
	return stored, nil
}
