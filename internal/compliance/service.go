package compliance

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/careforge/standards/internal/assets"
	"github.com/careforge/standards/internal/install"
	"github.com/careforge/standards/internal/manifest"
	"github.com/careforge/standards/internal/ui"
)

const (
	managedFileDirectoryPermissionsConstant = 0o755
	managedFilePermissionsConstant          = 0o644

	manifestMissingHintMessageConstant    = "no standards manifest found; run the install command first"
	managedFileReadErrorTemplateConstant  = "unable to read managed file %s: %w"
	managedFileWriteErrorTemplateConstant = "unable to restore managed file %s: %w"
	unknownManagedFileTemplateConstant    = "manifest references %s but no packaged artifact provides it"
	checkSummaryTemplateConstant          = "ok %d, modified %d, missing %d"
	fixSummaryTemplateConstant            = "fixed %d, unchanged %d"

	loggerMissingMessageConstant = "logger not configured"

	checkCompletedLogMessageConstant = "compliance check completed"
	fixCompletedLogMessageConstant   = "compliance fix completed"
	logFieldTargetDirectoryConstant  = "target_directory"
	logFieldModifiedCountConstant    = "modified"
	logFieldMissingCountConstant     = "missing"
	logFieldFixedCountConstant       = "fixed"
)

// ErrNotCompliant reports that at least one managed file drifted from the standards.
var ErrNotCompliant = errors.New("repository is not compliant with the installed standards")

// Service checks and restores managed files against the installation manifest.
type Service struct {
	logger        *zap.Logger
	statusPrinter *ui.StatusPrinter
}

// NewService validates collaborators and constructs a compliance Service.
func NewService(logger *zap.Logger, statusPrinter *ui.StatusPrinter) (*Service, error) {
	if logger == nil {
		return nil, errors.New(loggerMissingMessageConstant)
	}
	return &Service{logger: logger, statusPrinter: statusPrinter}, nil
}

// Check compares every managed file against its expected content. Files the
// manifest records are compared against their recorded digests; when
// languageOverride names a language, artifacts that language requires but the
// manifest does not track are compared against the packaged content directly.
func (service *Service) Check(targetDirectory string, languageOverride assets.Language) (Report, error) {
	installationManifest, manifestError := loadManifest(targetDirectory)
	if manifestError != nil {
		return Report{}, manifestError
	}
	requiredByDestination, languageError := requiredArtifactsByDestination(installationManifest, languageOverride)
	if languageError != nil {
		return Report{}, languageError
	}
	projectContext := assets.ProjectContext{ProjectName: filepath.Base(targetDirectory)}

	complianceReport := Report{}
	for _, destinationPath := range managedDestinations(installationManifest, requiredByDestination) {
		fileStatus, statusError := service.classifyDestination(targetDirectory, destinationPath, installationManifest, requiredByDestination, projectContext)
		if statusError != nil {
			return complianceReport, statusError
		}
		complianceReport.Files = append(complianceReport.Files, FileReport{DestinationPath: destinationPath, Status: fileStatus})
		service.printFileStatus(destinationPath, fileStatus)
	}

	service.statusPrinter.PrintLine(fmt.Sprintf(
		checkSummaryTemplateConstant,
		complianceReport.Count(FileStatusOK),
		complianceReport.Count(FileStatusModified),
		complianceReport.Count(FileStatusMissing),
	))
	service.logger.Info(
		checkCompletedLogMessageConstant,
		zap.String(logFieldTargetDirectoryConstant, targetDirectory),
		zap.Int(logFieldModifiedCountConstant, complianceReport.Count(FileStatusModified)),
		zap.Int(logFieldMissingCountConstant, complianceReport.Count(FileStatusMissing)),
	)

	return complianceReport, nil
}

// Fix rewrites every drifted managed file from the packaged artifacts and
// refreshes the manifest digests. A language override additionally restores
// the artifacts that language requires and records the new language in the
// manifest.
func (service *Service) Fix(targetDirectory string, languageOverride assets.Language) (Report, error) {
	installationManifest, manifestError := loadManifest(targetDirectory)
	if manifestError != nil {
		return Report{}, manifestError
	}
	requiredByDestination, languageError := requiredArtifactsByDestination(installationManifest, languageOverride)
	if languageError != nil {
		return Report{}, languageError
	}

	projectContext := assets.ProjectContext{ProjectName: filepath.Base(targetDirectory)}
	artifactsByDestination := catalogByDestination()

	complianceReport := Report{}
	for _, destinationPath := range managedDestinations(installationManifest, requiredByDestination) {
		fileStatus, statusError := service.classifyDestination(targetDirectory, destinationPath, installationManifest, requiredByDestination, projectContext)
		if statusError != nil {
			return complianceReport, statusError
		}
		if fileStatus == FileStatusOK {
			complianceReport.Files = append(complianceReport.Files, FileReport{DestinationPath: destinationPath, Status: fileStatus})
			service.printFileStatus(destinationPath, fileStatus)
			continue
		}

		managedArtifact, artifactKnown := artifactsByDestination[destinationPath]
		if !artifactKnown {
			return complianceReport, fmt.Errorf(unknownManagedFileTemplateConstant, destinationPath)
		}
		restoredPayload, restoreError := service.restoreManagedFile(targetDirectory, managedArtifact, projectContext)
		if restoreError != nil {
			return complianceReport, restoreError
		}
		installationManifest.RecordArtifact(destinationPath, restoredPayload)
		complianceReport.Files = append(complianceReport.Files, FileReport{DestinationPath: destinationPath, Status: FileStatusFixed})
		service.printFileStatus(destinationPath, FileStatusFixed)
	}

	if len(languageOverride) > 0 {
		installationManifest.Language = string(languageOverride)
	}
	if saveError := installationManifest.Save(targetDirectory); saveError != nil {
		return complianceReport, saveError
	}

	service.statusPrinter.PrintLine(fmt.Sprintf(
		fixSummaryTemplateConstant,
		complianceReport.Count(FileStatusFixed),
		complianceReport.Count(FileStatusOK),
	))
	service.logger.Info(
		fixCompletedLogMessageConstant,
		zap.String(logFieldTargetDirectoryConstant, targetDirectory),
		zap.Int(logFieldFixedCountConstant, complianceReport.Count(FileStatusFixed)),
	)

	return complianceReport, nil
}

// restoreManagedFile rewrites one drifted file. Merge-managed files fold the
// packaged configuration back into whatever currently exists on disk.
func (service *Service) restoreManagedFile(
	targetDirectory string,
	managedArtifact assets.Artifact,
	projectContext assets.ProjectContext,
) ([]byte, error) {
	renderedPayload, renderError := assets.Render(managedArtifact, projectContext)
	if renderError != nil {
		return nil, renderError
	}

	managedFilePath := filepath.Join(targetDirectory, filepath.FromSlash(managedArtifact.DestinationPath))
	restoredPayload := renderedPayload
	if managedArtifact.MergeTOML {
		existingPayload, readError := os.ReadFile(managedFilePath)
		if readError == nil {
			mergedPayload, mergeError := install.MergePyprojectTOML(existingPayload, renderedPayload)
			if mergeError != nil {
				return nil, mergeError
			}
			restoredPayload = mergedPayload
		} else if !os.IsNotExist(readError) {
			return nil, fmt.Errorf(managedFileReadErrorTemplateConstant, managedFilePath, readError)
		}
	}

	managedFileDirectory := filepath.Dir(managedFilePath)
	if directoryError := os.MkdirAll(managedFileDirectory, managedFileDirectoryPermissionsConstant); directoryError != nil {
		return nil, fmt.Errorf(managedFileWriteErrorTemplateConstant, managedFilePath, directoryError)
	}
	if writeError := os.WriteFile(managedFilePath, restoredPayload, managedFilePermissionsConstant); writeError != nil {
		return nil, fmt.Errorf(managedFileWriteErrorTemplateConstant, managedFilePath, writeError)
	}
	return restoredPayload, nil
}

func (service *Service) printFileStatus(destinationPath string, fileStatus FileStatus) {
	statusTone := ui.StatusToneNeutral
	switch fileStatus {
	case FileStatusOK, FileStatusFixed:
		statusTone = ui.StatusToneSuccess
	case FileStatusModified:
		statusTone = ui.StatusToneWarning
	case FileStatusMissing:
		statusTone = ui.StatusToneFailure
	}
	service.statusPrinter.PrintRow(statusTone, string(fileStatus), destinationPath)
}

func loadManifest(targetDirectory string) (*manifest.Manifest, error) {
	installationManifest, loadError := manifest.Load(targetDirectory)
	if loadError != nil {
		if errors.Is(loadError, manifest.ErrManifestNotFound) {
			return nil, errors.New(manifestMissingHintMessageConstant)
		}
		return nil, loadError
	}
	return installationManifest, nil
}

// classifyDestination picks the comparison basis for one managed path:
// manifest digest when the path is tracked, packaged content otherwise.
func (service *Service) classifyDestination(
	targetDirectory string,
	destinationPath string,
	installationManifest *manifest.Manifest,
	requiredByDestination map[string]assets.Artifact,
	projectContext assets.ProjectContext,
) (FileStatus, error) {
	if recordedDigest, tracked := installationManifest.ArtifactDigests[destinationPath]; tracked {
		return classifyManagedFile(targetDirectory, destinationPath, recordedDigest)
	}
	return classifyRequiredArtifact(targetDirectory, requiredByDestination[destinationPath], projectContext)
}

func classifyManagedFile(targetDirectory string, destinationPath string, recordedDigest string) (FileStatus, error) {
	managedFilePath := filepath.Join(targetDirectory, filepath.FromSlash(destinationPath))
	currentPayload, readError := os.ReadFile(managedFilePath)
	if readError != nil {
		if os.IsNotExist(readError) {
			return FileStatusMissing, nil
		}
		return "", fmt.Errorf(managedFileReadErrorTemplateConstant, managedFilePath, readError)
	}
	if manifest.Digest(currentPayload) != recordedDigest {
		return FileStatusModified, nil
	}
	return FileStatusOK, nil
}

// classifyRequiredArtifact compares an untracked required file against the
// packaged content. Merge-managed files count as ok when folding the packaged
// configuration into the current content would change nothing.
func classifyRequiredArtifact(targetDirectory string, requiredArtifact assets.Artifact, projectContext assets.ProjectContext) (FileStatus, error) {
	managedFilePath := filepath.Join(targetDirectory, filepath.FromSlash(requiredArtifact.DestinationPath))
	currentPayload, readError := os.ReadFile(managedFilePath)
	if readError != nil {
		if os.IsNotExist(readError) {
			return FileStatusMissing, nil
		}
		return "", fmt.Errorf(managedFileReadErrorTemplateConstant, managedFilePath, readError)
	}

	renderedPayload, renderError := assets.Render(requiredArtifact, projectContext)
	if renderError != nil {
		return "", renderError
	}
	if requiredArtifact.MergeTOML {
		mergedPayload, mergeError := install.MergePyprojectTOML(currentPayload, renderedPayload)
		if mergeError != nil {
			return "", mergeError
		}
		if bytes.Equal(mergedPayload, currentPayload) {
			return FileStatusOK, nil
		}
		return FileStatusModified, nil
	}
	if bytes.Equal(currentPayload, renderedPayload) {
		return FileStatusOK, nil
	}
	return FileStatusModified, nil
}

// requiredArtifactsByDestination resolves the artifacts the checked language
// requires. The optional artifact groups (documentation, editor rules) follow
// whatever the original installation placed, inferred from the manifest.
func requiredArtifactsByDestination(installationManifest *manifest.Manifest, languageOverride assets.Language) (map[string]assets.Artifact, error) {
	selectedLanguage := languageOverride
	if len(selectedLanguage) == 0 {
		parsedLanguage, parseError := assets.ParseLanguage(installationManifest.Language)
		if parseError != nil {
			return nil, parseError
		}
		selectedLanguage = parsedLanguage
	}

	selection := assets.Selection{Language: selectedLanguage}
	artifactsByDestination := catalogByDestination()
	for destinationPath := range installationManifest.ArtifactDigests {
		trackedArtifact, artifactKnown := artifactsByDestination[destinationPath]
		if !artifactKnown {
			continue
		}
		switch trackedArtifact.Category {
		case assets.CategoryDocumentation:
			selection.IncludeDocumentation = true
		case assets.CategoryCursorRules:
			selection.IncludeCursorRules = true
		case assets.CategoryAntigravityRules:
			selection.IncludeAntigravityRules = true
		}
	}

	requiredByDestination := map[string]assets.Artifact{}
	for _, requiredArtifact := range assets.SelectArtifacts(selection) {
		requiredByDestination[requiredArtifact.DestinationPath] = requiredArtifact
	}
	return requiredByDestination, nil
}

// managedDestinations unions the manifest entries with the required artifact
// set so one sorted pass covers both.
func managedDestinations(installationManifest *manifest.Manifest, requiredByDestination map[string]assets.Artifact) []string {
	destinationSet := map[string]struct{}{}
	for destinationPath := range installationManifest.ArtifactDigests {
		destinationSet[destinationPath] = struct{}{}
	}
	for destinationPath := range requiredByDestination {
		destinationSet[destinationPath] = struct{}{}
	}
	destinations := make([]string, 0, len(destinationSet))
	for destinationPath := range destinationSet {
		destinations = append(destinations, destinationPath)
	}
	sort.Strings(destinations)
	return destinations
}

func catalogByDestination() map[string]assets.Artifact {
	artifactsByDestination := map[string]assets.Artifact{}
	for _, artifact := range assets.Catalog() {
		artifactsByDestination[artifact.DestinationPath] = artifact
	}
	return artifactsByDestination
}
