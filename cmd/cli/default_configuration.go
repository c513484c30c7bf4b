package cli

import (
	"bytes"
	_ "embed"

	"github.com/temirov/codebase-sync/internal/audit"
	"github.com/temirov/codebase-sync/internal/utils"
)

//go:embed default_config.yaml
var embeddedDefaultConfigurationContent []byte

// EmbeddedDefaultConfiguration returns a copy of the bundled config.yaml and its format.
func EmbeddedDefaultConfiguration() ([]byte, string) {
	return bytes.Clone(embeddedDefaultConfigurationContent), configurationTypeConstant
}

// defaultConfigurationValues seeds every key ApplicationConfiguration decodes. Viper resolves
// CODEBASESYNC_* variables only for keys it already knows.
func defaultConfigurationValues() map[string]any {
	defaultValues := audit.DefaultConfigurationValues(syncConfigurationKeyConstant)
	defaultValues[commonLogLevelConfigKeyConstant] = string(utils.LogLevelWarn)
	defaultValues[commonLogFormatConfigKeyConstant] = string(utils.LogFormatConsole)
	return defaultValues
}
