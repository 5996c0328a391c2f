package install

const (
	languageConfigurationKeySuffixConstant      = ".language"
	documentationConfigurationKeySuffixConstant = ".docs"
	cursorConfigurationKeySuffixConstant        = ".cursor"
	antigravityConfigurationKeySuffixConstant   = ".antigravity"
)

// CommandConfiguration captures configurable defaults for the install command.
type CommandConfiguration struct {
	Language    string `mapstructure:"language"`
	Docs        bool   `mapstructure:"docs"`
	Cursor      bool   `mapstructure:"cursor"`
	Antigravity bool   `mapstructure:"antigravity"`
}

// DefaultConfigurationValues returns Viper defaults scoped to the provided key prefix.
func DefaultConfigurationValues(configurationKeyPrefix string) map[string]any {
	return map[string]any{
		configurationKeyPrefix + languageConfigurationKeySuffixConstant:      defaultLanguageNameConstant,
		configurationKeyPrefix + documentationConfigurationKeySuffixConstant: false,
		configurationKeyPrefix + cursorConfigurationKeySuffixConstant:        false,
		configurationKeyPrefix + antigravityConfigurationKeySuffixConstant:   false,
	}
}
