package install

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/gofrs/flock"
	"go.uber.org/zap"

	"github.com/careforge/standards/internal/assets"
	"github.com/careforge/standards/internal/execshell"
	"github.com/careforge/standards/internal/manifest"
	"github.com/careforge/standards/internal/ui"
)

const (
	lockFileNameConstant = ".standards.lock"

	artifactDirectoryPermissionsConstant = 0o755
	artifactFilePermissionsConstant      = 0o644

	lockAcquireErrorTemplateConstant        = "unable to acquire installation lock %s: %w"
	lockContendedErrorTemplateConstant      = "another installation is already running in %s"
	artifactReadErrorTemplateConstant       = "unable to read existing file %s: %w"
	artifactDirectoryErrorTemplateConstant  = "unable to create directory %s: %w"
	artifactWriteErrorTemplateConstant      = "unable to write %s: %w"
	hookInstallErrorTemplateConstant        = "pre-commit hook installation failed: %w"
	hookExecutableMissingMessageConstant    = "pre-commit executable not found; hooks were not installed"
	hookExecutableMissingLogMessageConstant = "pre-commit executable not found"
	hookFailedMessageConstant               = "pre-commit exited with an error; hooks were not installed"
	hookFailedLogMessageConstant            = "pre-commit hook installation failed"
	hookSkippedLabelConstant                = "skipped"
	overwritePromptTemplateConstant         = "Overwrite %s"
	summaryTemplateConstant                 = "installed %d, overwritten %d, merged %d, skipped %d, unchanged %d"
	hooksInstalledMessageConstant           = "pre-commit hooks installed"

	loggerMissingMessageConstant   = "logger not configured"
	prompterMissingMessageConstant = "prompter not configured"

	installCompletedLogMessageConstant = "installation completed"
	logFieldTargetDirectoryConstant    = "target_directory"
	logFieldLanguageConstant           = "language"
	logFieldInstalledCountConstant     = "installed"
	logFieldSkippedCountConstant       = "skipped"
	logFieldExitCodeConstant           = "exit_code"

	preCommitInstallArgumentConstant = "install"
	preCommitColorVariableConstant   = "PRE_COMMIT_COLOR"
	preCommitColorDisabledConstant   = "never"
)

// HookInstaller runs the pre-commit executable inside the target repository.
type HookInstaller interface {
	ExecutePreCommit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// Service installs the standards artifacts into target repositories.
type Service struct {
	logger        *zap.Logger
	prompter      ConfirmationPrompter
	hookInstaller HookInstaller
	statusPrinter *ui.StatusPrinter
	toolVersion   string
}

// NewService validates collaborators and constructs an installation Service.
func NewService(
	logger *zap.Logger,
	prompter ConfirmationPrompter,
	hookInstaller HookInstaller,
	statusPrinter *ui.StatusPrinter,
	toolVersion string,
) (*Service, error) {
	if logger == nil {
		return nil, errors.New(loggerMissingMessageConstant)
	}
	if prompter == nil {
		return nil, errors.New(prompterMissingMessageConstant)
	}
	return &Service{
		logger:        logger,
		prompter:      prompter,
		hookInstaller: hookInstaller,
		statusPrinter: statusPrinter,
		toolVersion:   toolVersion,
	}, nil
}

// Install places the selected artifacts into the target directory, writes the
// installation manifest, and optionally installs the pre-commit hooks.
func (service *Service) Install(executionContext context.Context, options Options) (Summary, error) {
	lockPath := filepath.Join(options.TargetDirectory, lockFileNameConstant)
	installationLock := flock.New(lockPath)
	lockAcquired, lockError := installationLock.TryLock()
	if lockError != nil {
		return Summary{}, fmt.Errorf(lockAcquireErrorTemplateConstant, lockPath, lockError)
	}
	if !lockAcquired {
		return Summary{}, fmt.Errorf(lockContendedErrorTemplateConstant, options.TargetDirectory)
	}
	defer func() {
		_ = installationLock.Unlock()
		_ = os.Remove(lockPath)
	}()

	projectContext := assets.ProjectContext{ProjectName: filepath.Base(options.TargetDirectory)}
	selectedArtifacts := assets.SelectArtifacts(assets.Selection{
		Language:                options.Language,
		IncludeDocumentation:    options.IncludeDocumentation,
		IncludeCursorRules:      options.IncludeCursorRules,
		IncludeAntigravityRules: options.IncludeAntigravityRules,
	})

	installationManifest := manifest.New(service.toolVersion, string(options.Language))
	installationSummary := Summary{}

	for _, artifact := range selectedArtifacts {
		fileResult, placedPayload, placementError := service.placeArtifact(artifact, projectContext, options)
		if placementError != nil {
			return installationSummary, placementError
		}
		installationManifest.RecordArtifact(artifact.DestinationPath, placedPayload)
		installationSummary.Results = append(installationSummary.Results, fileResult)
		service.printFileResult(fileResult)
	}

	if saveError := installationManifest.Save(options.TargetDirectory); saveError != nil {
		return installationSummary, saveError
	}

	if options.InstallPreCommitHooks {
		hookDetails := execshell.CommandDetails{
			Arguments:            []string{preCommitInstallArgumentConstant},
			WorkingDirectory:     options.TargetDirectory,
			EnvironmentVariables: map[string]string{preCommitColorVariableConstant: preCommitColorDisabledConstant},
		}
		_, hookError := service.hookInstaller.ExecutePreCommit(executionContext, hookDetails)
		var hookCommandFailure *execshell.CommandFailedError
		switch {
		case hookError == nil:
			installationSummary.HookInstallationRan = true
			service.statusPrinter.PrintLine(hooksInstalledMessageConstant)
		case errors.Is(hookError, exec.ErrNotFound):
			service.statusPrinter.PrintRow(ui.StatusToneWarning, hookSkippedLabelConstant, hookExecutableMissingMessageConstant)
			service.logger.Warn(hookExecutableMissingLogMessageConstant)
		case errors.As(hookError, &hookCommandFailure):
			service.statusPrinter.PrintRow(ui.StatusToneWarning, hookSkippedLabelConstant, hookFailedMessageConstant)
			service.logger.Warn(
				hookFailedLogMessageConstant,
				zap.Int(logFieldExitCodeConstant, hookCommandFailure.Result.ExitCode),
			)
		default:
			return installationSummary, fmt.Errorf(hookInstallErrorTemplateConstant, hookError)
		}
	}

	service.statusPrinter.PrintLine(fmt.Sprintf(
		summaryTemplateConstant,
		installationSummary.Count(FileActionInstalled),
		installationSummary.Count(FileActionOverwritten),
		installationSummary.Count(FileActionMerged),
		installationSummary.Count(FileActionSkipped),
		installationSummary.Count(FileActionUnchanged),
	))
	service.logger.Info(
		installCompletedLogMessageConstant,
		zap.String(logFieldTargetDirectoryConstant, options.TargetDirectory),
		zap.String(logFieldLanguageConstant, string(options.Language)),
		zap.Int(logFieldInstalledCountConstant, installationSummary.Count(FileActionInstalled)),
		zap.Int(logFieldSkippedCountConstant, installationSummary.Count(FileActionSkipped)),
	)

	return installationSummary, nil
}

// placeArtifact writes one artifact and returns the payload that ended up on
// disk so the manifest can record its digest.
func (service *Service) placeArtifact(
	artifact assets.Artifact,
	projectContext assets.ProjectContext,
	options Options,
) (FileResult, []byte, error) {
	renderedPayload, renderError := assets.Render(artifact, projectContext)
	if renderError != nil {
		return FileResult{}, nil, renderError
	}

	destinationPath := filepath.Join(options.TargetDirectory, filepath.FromSlash(artifact.DestinationPath))
	existingPayload, readError := os.ReadFile(destinationPath)
	fileExists := readError == nil
	if readError != nil && !os.IsNotExist(readError) {
		return FileResult{}, nil, fmt.Errorf(artifactReadErrorTemplateConstant, destinationPath, readError)
	}

	fileResult := FileResult{DestinationPath: artifact.DestinationPath}

	switch {
	case !fileExists:
		if writeError := writeArtifactFile(destinationPath, renderedPayload); writeError != nil {
			return FileResult{}, nil, writeError
		}
		fileResult.Action = FileActionInstalled
		return fileResult, renderedPayload, nil

	case bytes.Equal(existingPayload, renderedPayload):
		fileResult.Action = FileActionUnchanged
		return fileResult, existingPayload, nil

	case options.Overwrite:
		return service.replaceExistingFile(artifact, destinationPath, existingPayload, renderedPayload)

	case options.NonInteractive:
		fileResult.Action = FileActionSkipped
		return fileResult, existingPayload, nil

	default:
		overwriteConfirmed, promptError := service.prompter.Confirm(fmt.Sprintf(overwritePromptTemplateConstant, artifact.DestinationPath))
		if promptError != nil {
			return FileResult{}, nil, promptError
		}
		if !overwriteConfirmed {
			fileResult.Action = FileActionSkipped
			return fileResult, existingPayload, nil
		}
		return service.replaceExistingFile(artifact, destinationPath, existingPayload, renderedPayload)
	}
}

// replaceExistingFile rewrites a file the operator allowed to be touched.
// Merge-managed files fold the packaged configuration into the existing
// content instead of discarding it.
func (service *Service) replaceExistingFile(
	artifact assets.Artifact,
	destinationPath string,
	existingPayload []byte,
	renderedPayload []byte,
) (FileResult, []byte, error) {
	fileResult := FileResult{DestinationPath: artifact.DestinationPath}

	if artifact.MergeTOML {
		mergedPayload, mergeError := MergePyprojectTOML(existingPayload, renderedPayload)
		if mergeError != nil {
			return FileResult{}, nil, mergeError
		}
		if bytes.Equal(mergedPayload, existingPayload) {
			fileResult.Action = FileActionUnchanged
			return fileResult, existingPayload, nil
		}
		if writeError := writeArtifactFile(destinationPath, mergedPayload); writeError != nil {
			return FileResult{}, nil, writeError
		}
		fileResult.Action = FileActionMerged
		return fileResult, mergedPayload, nil
	}

	if writeError := writeArtifactFile(destinationPath, renderedPayload); writeError != nil {
		return FileResult{}, nil, writeError
	}
	fileResult.Action = FileActionOverwritten
	return fileResult, renderedPayload, nil
}

func (service *Service) printFileResult(fileResult FileResult) {
	statusTone := ui.StatusToneNeutral
	switch fileResult.Action {
	case FileActionInstalled:
		statusTone = ui.StatusToneSuccess
	case FileActionOverwritten, FileActionMerged:
		statusTone = ui.StatusToneWarning
	}
	service.statusPrinter.PrintRow(statusTone, string(fileResult.Action), fileResult.DestinationPath)
}

func writeArtifactFile(destinationPath string, payload []byte) error {
	destinationDirectory := filepath.Dir(destinationPath)
	if directoryError := os.MkdirAll(destinationDirectory, artifactDirectoryPermissionsConstant); directoryError != nil {
		return fmt.Errorf(artifactDirectoryErrorTemplateConstant, destinationDirectory, directoryError)
	}
	if writeError := os.WriteFile(destinationPath, payload, artifactFilePermissionsConstant); writeError != nil {
		return fmt.Errorf(artifactWriteErrorTemplateConstant, destinationPath, writeError)
	}
	return nil
}
