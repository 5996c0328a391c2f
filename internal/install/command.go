package install

import (
	"errors"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/careforge/standards/internal/assets"
	"github.com/careforge/standards/internal/ui"
	flagutils "github.com/careforge/standards/internal/utils/flags"
	pathutils "github.com/careforge/standards/internal/utils/path"
	"github.com/careforge/standards/internal/version"
)

const (
	commandUseConstant   = "install [target]"
	commandShortConstant = "Install the coding standards into a repository"
	commandLongConstant  = "Install the shared configuration files, optional documentation guides, and optional editor rules into a target repository, recording a manifest for later compliance checks."

	overwriteFlagNameConstant     = "overwrite"
	noInteractiveFlagNameConstant = "no-interactive"
	documentationFlagNameConstant = "docs"
	preCommitFlagNameConstant     = "pre-commit"
	cursorFlagNameConstant        = "cursor"
	antigravityFlagNameConstant   = "antigravity"
	languageFlagNameConstant      = "lang"

	overwriteFlagUsageConstant     = "replace existing files without asking"
	noInteractiveFlagUsageConstant = "never prompt; leave existing files untouched"
	documentationFlagUsageConstant = "also install the standards documentation guides"
	preCommitFlagUsageConstant     = "run pre-commit install after placing the hook configuration"
	cursorFlagUsageConstant        = "also install the Cursor editor rules"
	antigravityFlagUsageConstant   = "also install the Antigravity editor rules"
	languageFlagUsageConstant      = "project language (python, javascript, or go)"

	defaultLanguageNameConstant = "python"

	hookInstallerMissingMessageConstant = "command executor not configured"
)

// CommandBuilder assembles the install command with its collaborators.
type CommandBuilder struct {
	LoggerProvider        func() *zap.Logger
	ConfigurationProvider func() CommandConfiguration
	HookInstallerProvider func() (HookInstaller, error)
	Prompter              ConfirmationPrompter
	InputReader           io.Reader
	InteractiveDetector   func() bool
}

// Build wires flags and execution logic into a Cobra command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	var overwriteFlagValue bool
	var noInteractiveFlagValue bool
	var documentationFlagValue bool
	var preCommitFlagValue bool
	var cursorFlagValue bool
	var antigravityFlagValue bool
	var languageFlagValue string

	command := &cobra.Command{
		Use:          commandUseConstant,
		Short:        commandShortConstant,
		Long:         commandLongConstant,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			configuredDefaults := builder.resolveConfiguration()
			if !command.Flags().Changed(languageFlagNameConstant) && len(configuredDefaults.Language) > 0 {
				languageFlagValue = configuredDefaults.Language
			}
			if !command.Flags().Changed(documentationFlagNameConstant) {
				documentationFlagValue = configuredDefaults.Docs
			}
			if !command.Flags().Changed(cursorFlagNameConstant) {
				cursorFlagValue = configuredDefaults.Cursor
			}
			if !command.Flags().Changed(antigravityFlagNameConstant) {
				antigravityFlagValue = configuredDefaults.Antigravity
			}

			targetArgument := ""
			if len(arguments) > 0 {
				targetArgument = arguments[0]
			}
			resolvedTarget, resolveError := pathutils.NewTargetDirectoryResolver().Resolve(targetArgument)
			if resolveError != nil {
				return resolveError
			}

			parsedLanguage, languageError := assets.ParseLanguage(languageFlagValue)
			if languageError != nil {
				return languageError
			}

			var hookInstaller HookInstaller
			if preCommitFlagValue {
				if builder.HookInstallerProvider == nil {
					return errors.New(hookInstallerMissingMessageConstant)
				}
				resolvedHookInstaller, hookInstallerError := builder.HookInstallerProvider()
				if hookInstallerError != nil {
					return hookInstallerError
				}
				hookInstaller = resolvedHookInstaller
			}

			installService, serviceError := NewService(
				builder.resolveLogger(),
				builder.resolvePrompter(command.OutOrStdout()),
				hookInstaller,
				builder.resolveStatusPrinter(command.OutOrStdout()),
				version.CurrentVersionConstant,
			)
			if serviceError != nil {
				return serviceError
			}

			installationOptions := Options{
				TargetDirectory:         resolvedTarget,
				Language:                parsedLanguage,
				Overwrite:               overwriteFlagValue,
				NonInteractive:          noInteractiveFlagValue || !builder.interactiveSession(),
				IncludeDocumentation:    documentationFlagValue,
				IncludeCursorRules:      cursorFlagValue,
				IncludeAntigravityRules: antigravityFlagValue,
				InstallPreCommitHooks:   preCommitFlagValue,
			}

			_, installError := installService.Install(command.Context(), installationOptions)
			return installError
		},
	}

	flagutils.AddToggleFlag(command.Flags(), &overwriteFlagValue, overwriteFlagNameConstant, "", false, overwriteFlagUsageConstant)
	flagutils.AddToggleFlag(command.Flags(), &noInteractiveFlagValue, noInteractiveFlagNameConstant, "", false, noInteractiveFlagUsageConstant)
	flagutils.AddToggleFlag(command.Flags(), &documentationFlagValue, documentationFlagNameConstant, "", false, documentationFlagUsageConstant)
	flagutils.AddToggleFlag(command.Flags(), &preCommitFlagValue, preCommitFlagNameConstant, "", false, preCommitFlagUsageConstant)
	flagutils.AddToggleFlag(command.Flags(), &cursorFlagValue, cursorFlagNameConstant, "", false, cursorFlagUsageConstant)
	flagutils.AddToggleFlag(command.Flags(), &antigravityFlagValue, antigravityFlagNameConstant, "", false, antigravityFlagUsageConstant)
	command.Flags().StringVar(&languageFlagValue, languageFlagNameConstant, defaultLanguageNameConstant, languageFlagUsageConstant)

	return command, nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider != nil {
		return builder.ConfigurationProvider()
	}
	return CommandConfiguration{Language: defaultLanguageNameConstant}
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider != nil {
		if providedLogger := builder.LoggerProvider(); providedLogger != nil {
			return providedLogger
		}
	}
	return zap.NewNop()
}

func (builder *CommandBuilder) resolvePrompter(outputWriter io.Writer) ConfirmationPrompter {
	if builder.Prompter != nil {
		return builder.Prompter
	}
	inputReader := builder.InputReader
	if inputReader == nil {
		inputReader = os.Stdin
	}
	return NewIOConfirmationPrompter(inputReader, outputWriter)
}

func (builder *CommandBuilder) resolveStatusPrinter(outputWriter io.Writer) *ui.StatusPrinter {
	return ui.NewStatusPrinter(outputWriter)
}

func (builder *CommandBuilder) interactiveSession() bool {
	if builder.InteractiveDetector != nil {
		return builder.InteractiveDetector()
	}
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}
