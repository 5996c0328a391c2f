package sensitive

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	flagutils "github.com/careforge/standards/internal/utils/flags"
)

const (
	commandUseConstant   = "scan [file...]"
	commandShortConstant = "Scan files for sensitive healthcare data"
	commandLongConstant  = "Scan the named files, or the files staged for commit, for HL7 segments, MDS assessment extracts, and patient identifiers that must never enter version control."

	stagedFlagNameConstant  = "staged"
	stagedFlagUsageConstant = "scan the files staged for commit instead of named arguments"

	findingTemplateConstant         = "%s:%d: %s (%s)\n"
	findingsSummaryTemplateConstant = "found %d sensitive data findings\n"

	noScanInputMessageConstant            = "nothing to scan; pass file paths or --staged"
	gitExecutorMissingMessageConstant     = "command executor not configured"
	workingDirectoryErrorTemplateConstant = "unable to determine working directory: %w"

	scanCompletedLogMessageConstant = "sensitive data scan completed"
	logFieldScannedFilesConstant    = "scanned_files"
	logFieldFindingCountConstant    = "findings"
)

// ErrSensitiveDataFound reports that at least one finding was produced.
var ErrSensitiveDataFound = errors.New("sensitive data detected")

// CommandBuilder assembles the scan command with its collaborators.
type CommandBuilder struct {
	LoggerProvider      func() *zap.Logger
	GitExecutorProvider func() (GitExecutor, error)
}

// Build wires flags and execution logic into a Cobra command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	var stagedFlagValue bool

	command := &cobra.Command{
		Use:          commandUseConstant,
		Short:        commandShortConstant,
		Long:         commandLongConstant,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			scanTargets := arguments
			if stagedFlagValue {
				stagedTargets, stagedError := builder.listStagedTargets(command)
				if stagedError != nil {
					return stagedError
				}
				scanTargets = stagedTargets
			}
			if len(scanTargets) == 0 && !stagedFlagValue {
				return errors.New(noScanInputMessageConstant)
			}

			fileScanner := NewScanner()
			var allFindings []Finding
			for _, scanTarget := range scanTargets {
				targetFindings, scanError := fileScanner.ScanFile(scanTarget)
				if scanError != nil {
					return scanError
				}
				allFindings = append(allFindings, targetFindings...)
			}

			builder.resolveLogger().Debug(
				scanCompletedLogMessageConstant,
				zap.Int(logFieldScannedFilesConstant, len(scanTargets)),
				zap.Int(logFieldFindingCountConstant, len(allFindings)),
			)

			if len(allFindings) == 0 {
				return nil
			}
			for _, finding := range allFindings {
				fmt.Fprintf(command.ErrOrStderr(), findingTemplateConstant, finding.FilePath, finding.LineNumber, finding.MatchedText, finding.Reason)
			}
			fmt.Fprintf(command.ErrOrStderr(), findingsSummaryTemplateConstant, len(allFindings))
			return ErrSensitiveDataFound
		},
	}

	flagutils.AddToggleFlag(command.Flags(), &stagedFlagValue, stagedFlagNameConstant, "", false, stagedFlagUsageConstant)

	return command, nil
}

func (builder *CommandBuilder) listStagedTargets(command *cobra.Command) ([]string, error) {
	if builder.GitExecutorProvider == nil {
		return nil, errors.New(gitExecutorMissingMessageConstant)
	}
	gitExecutor, executorError := builder.GitExecutorProvider()
	if executorError != nil {
		return nil, executorError
	}
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return nil, fmt.Errorf(workingDirectoryErrorTemplateConstant, workingDirectoryError)
	}
	return ListStagedFiles(command.Context(), gitExecutor, workingDirectory)
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider != nil {
		if providedLogger := builder.LoggerProvider(); providedLogger != nil {
			return providedLogger
		}
	}
	return zap.NewNop()
}
