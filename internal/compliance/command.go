package compliance

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/careforge/standards/internal/assets"
	"github.com/careforge/standards/internal/ui"
	pathutils "github.com/careforge/standards/internal/utils/path"
)

const (
	checkCommandUseConstant   = "check-compliance [target]"
	checkCommandShortConstant = "Verify that a repository still matches the installed standards"
	checkCommandLongConstant  = "Compare every file recorded in the installation manifest against its current content and report files that were modified or removed."

	fixCommandUseConstant   = "fix-compliance [target]"
	fixCommandShortConstant = "Restore drifted standards files from the packaged artifacts"
	fixCommandLongConstant  = "Rewrite every modified or missing managed file from the packaged standards and refresh the installation manifest."

	languageFlagNameConstant  = "lang"
	languageFlagUsageConstant = "check against this language instead of the installed one (python, javascript, or go)"
)

// CommandBuilder assembles the compliance commands with their collaborators.
type CommandBuilder struct {
	LoggerProvider func() *zap.Logger
}

// BuildCheckCommand wires the check-compliance command.
func (builder *CommandBuilder) BuildCheckCommand() (*cobra.Command, error) {
	var languageFlagValue string
	command := &cobra.Command{
		Use:          checkCommandUseConstant,
		Short:        checkCommandShortConstant,
		Long:         checkCommandLongConstant,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			complianceService, resolvedTarget, languageOverride, setupError := builder.prepare(command, arguments, languageFlagValue)
			if setupError != nil {
				return setupError
			}
			complianceReport, checkError := complianceService.Check(resolvedTarget, languageOverride)
			if checkError != nil {
				return checkError
			}
			if !complianceReport.Compliant() {
				return ErrNotCompliant
			}
			return nil
		},
	}
	command.Flags().StringVar(&languageFlagValue, languageFlagNameConstant, "", languageFlagUsageConstant)
	return command, nil
}

// BuildFixCommand wires the fix-compliance command.
func (builder *CommandBuilder) BuildFixCommand() (*cobra.Command, error) {
	var languageFlagValue string
	command := &cobra.Command{
		Use:          fixCommandUseConstant,
		Short:        fixCommandShortConstant,
		Long:         fixCommandLongConstant,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			complianceService, resolvedTarget, languageOverride, setupError := builder.prepare(command, arguments, languageFlagValue)
			if setupError != nil {
				return setupError
			}
			_, fixError := complianceService.Fix(resolvedTarget, languageOverride)
			return fixError
		},
	}
	command.Flags().StringVar(&languageFlagValue, languageFlagNameConstant, "", languageFlagUsageConstant)
	return command, nil
}

func (builder *CommandBuilder) prepare(command *cobra.Command, arguments []string, languageFlagValue string) (*Service, string, assets.Language, error) {
	targetArgument := ""
	if len(arguments) > 0 {
		targetArgument = arguments[0]
	}
	resolvedTarget, resolveError := pathutils.NewTargetDirectoryResolver().Resolve(targetArgument)
	if resolveError != nil {
		return nil, "", "", resolveError
	}
	languageOverride := assets.Language("")
	if len(languageFlagValue) > 0 {
		parsedLanguage, languageError := assets.ParseLanguage(languageFlagValue)
		if languageError != nil {
			return nil, "", "", languageError
		}
		languageOverride = parsedLanguage
	}
	complianceService, serviceError := NewService(builder.resolveLogger(), ui.NewStatusPrinter(command.OutOrStdout()))
	if serviceError != nil {
		return nil, "", "", serviceError
	}
	return complianceService, resolvedTarget, languageOverride, nil
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider != nil {
		if providedLogger := builder.LoggerProvider(); providedLogger != nil {
			return providedLogger
		}
	}
	return zap.NewNop()
}
