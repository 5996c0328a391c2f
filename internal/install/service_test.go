package install_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/careforge/standards/internal/assets"
	"github.com/careforge/standards/internal/execshell"
	"github.com/careforge/standards/internal/install"
	"github.com/careforge/standards/internal/manifest"
	"github.com/careforge/standards/internal/ui"
)

type scriptedPrompter struct {
	answers      []bool
	promptsSeen  []string
	answerCursor int
}

func (prompter *scriptedPrompter) Confirm(promptMessage string) (bool, error) {
	prompter.promptsSeen = append(prompter.promptsSeen, promptMessage)
	if prompter.answerCursor >= len(prompter.answers) {
		return false, nil
	}
	answer := prompter.answers[prompter.answerCursor]
	prompter.answerCursor++
	return answer, nil
}

type recordingHookInstaller struct {
	invocations []execshell.CommandDetails
	failure     error
}

func (installer *recordingHookInstaller) ExecutePreCommit(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	installer.invocations = append(installer.invocations, details)
	if installer.failure != nil {
		return execshell.ExecutionResult{ExitCode: 1}, installer.failure
	}
	return execshell.ExecutionResult{}, nil
}

func newTestService(testInstance *testing.T, prompter install.ConfirmationPrompter, hookInstaller install.HookInstaller) *install.Service {
	testInstance.Helper()
	if prompter == nil {
		prompter = &scriptedPrompter{}
	}
	service, serviceError := install.NewService(zap.NewNop(), prompter, hookInstaller, ui.NewStatusPrinter(os.Stderr), "0.0.0-test")
	require.NoError(testInstance, serviceError)
	return service
}

func readTargetFile(testInstance *testing.T, targetDirectory string, relativePath string) string {
	testInstance.Helper()
	payload, readError := os.ReadFile(filepath.Join(targetDirectory, filepath.FromSlash(relativePath)))
	require.NoError(testInstance, readError)
	return string(payload)
}

func TestInstallPlacesArtifactsAndManifest(testInstance *testing.T) {
	targetDirectory := testInstance.TempDir()
	service := newTestService(testInstance, nil, nil)

	installationSummary, installError := service.Install(context.Background(), install.Options{
		TargetDirectory:      targetDirectory,
		Language:             assets.LanguagePython,
		NonInteractive:       true,
		IncludeDocumentation: true,
	})
	require.NoError(testInstance, installError)

	require.FileExists(testInstance, filepath.Join(targetDirectory, ".editorconfig"))
	require.FileExists(testInstance, filepath.Join(targetDirectory, ".flake8"))
	require.FileExists(testInstance, filepath.Join(targetDirectory, "pyproject.toml"))
	require.FileExists(testInstance, filepath.Join(targetDirectory, "docs", "standards", "CODING_STANDARDS.md"))
	require.NoFileExists(testInstance, filepath.Join(targetDirectory, ".eslintrc.json"))
	require.NoFileExists(testInstance, filepath.Join(targetDirectory, ".cursorrules"))

	loadedManifest, manifestError := manifest.Load(targetDirectory)
	require.NoError(testInstance, manifestError)
	require.Equal(testInstance, string(assets.LanguagePython), loadedManifest.Language)
	require.NotEmpty(testInstance, loadedManifest.InstallationIdentifier)
	require.Contains(testInstance, loadedManifest.ArtifactDigests, ".editorconfig")

	require.Equal(testInstance, len(installationSummary.Results), installationSummary.Count(install.FileActionInstalled))
	require.NoFileExists(testInstance, filepath.Join(targetDirectory, ".standards.lock"))
}

func TestInstallSubstitutesProjectNameIntoPyproject(testInstance *testing.T) {
	parentDirectory := testInstance.TempDir()
	targetDirectory := filepath.Join(parentDirectory, "claims-pipeline")
	require.NoError(testInstance, os.MkdirAll(targetDirectory, 0o755))
	service := newTestService(testInstance, nil, nil)

	_, installError := service.Install(context.Background(), install.Options{
		TargetDirectory: targetDirectory,
		Language:        assets.LanguagePython,
		NonInteractive:  true,
	})
	require.NoError(testInstance, installError)

	pyprojectContent := readTargetFile(testInstance, targetDirectory, "pyproject.toml")
	require.Contains(testInstance, pyprojectContent, "claims-pipeline")
	require.NotContains(testInstance, pyprojectContent, "{{")
}

func TestInstallNonInteractiveSkipsExistingFiles(testInstance *testing.T) {
	targetDirectory := testInstance.TempDir()
	existingContent := "# local override\n"
	require.NoError(testInstance, os.WriteFile(filepath.Join(targetDirectory, ".editorconfig"), []byte(existingContent), 0o644))
	service := newTestService(testInstance, nil, nil)

	installationSummary, installError := service.Install(context.Background(), install.Options{
		TargetDirectory: targetDirectory,
		Language:        assets.LanguageGo,
		NonInteractive:  true,
	})
	require.NoError(testInstance, installError)

	require.Equal(testInstance, existingContent, readTargetFile(testInstance, targetDirectory, ".editorconfig"))
	require.Equal(testInstance, 1, installationSummary.Count(install.FileActionSkipped))
}

func TestInstallOverwriteReplacesExistingFiles(testInstance *testing.T) {
	targetDirectory := testInstance.TempDir()
	require.NoError(testInstance, os.WriteFile(filepath.Join(targetDirectory, ".editorconfig"), []byte("# local override\n"), 0o644))
	service := newTestService(testInstance, nil, nil)

	installationSummary, installError := service.Install(context.Background(), install.Options{
		TargetDirectory: targetDirectory,
		Language:        assets.LanguageGo,
		Overwrite:       true,
		NonInteractive:  true,
	})
	require.NoError(testInstance, installError)

	require.NotEqual(testInstance, "# local override\n", readTargetFile(testInstance, targetDirectory, ".editorconfig"))
	require.Equal(testInstance, 1, installationSummary.Count(install.FileActionOverwritten))
}

func TestInstallIsIdempotentUnderOverwrite(testInstance *testing.T) {
	targetDirectory := testInstance.TempDir()
	service := newTestService(testInstance, nil, nil)
	installationOptions := install.Options{
		TargetDirectory: targetDirectory,
		Language:        assets.LanguagePython,
		Overwrite:       true,
		NonInteractive:  true,
	}

	_, firstInstallError := service.Install(context.Background(), installationOptions)
	require.NoError(testInstance, firstInstallError)
	secondSummary, secondInstallError := service.Install(context.Background(), installationOptions)
	require.NoError(testInstance, secondInstallError)

	require.Equal(testInstance, len(secondSummary.Results), secondSummary.Count(install.FileActionUnchanged))
}

func TestInstallPromptsBeforeOverwriting(testInstance *testing.T) {
	testCases := []struct {
		name            string
		promptAnswer    bool
		expectedAction  install.FileAction
		expectOverwrite bool
	}{
		{name: "declined", promptAnswer: false, expectedAction: install.FileActionSkipped},
		{name: "accepted", promptAnswer: true, expectedAction: install.FileActionOverwritten, expectOverwrite: true},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtestInstance *testing.T) {
			targetDirectory := subtestInstance.TempDir()
			existingContent := "# local override\n"
			require.NoError(subtestInstance, os.WriteFile(filepath.Join(targetDirectory, ".editorconfig"), []byte(existingContent), 0o644))
			prompter := &scriptedPrompter{answers: []bool{testCase.promptAnswer}}
			service := newTestService(subtestInstance, prompter, nil)

			installationSummary, installError := service.Install(context.Background(), install.Options{
				TargetDirectory: targetDirectory,
				Language:        assets.LanguageGo,
			})
			require.NoError(subtestInstance, installError, testCaseIndex)

			require.Len(subtestInstance, prompter.promptsSeen, 1, testCaseIndex)
			require.Contains(subtestInstance, prompter.promptsSeen[0], ".editorconfig", testCaseIndex)
			require.Equal(subtestInstance, 1, installationSummary.Count(testCase.expectedAction), testCaseIndex)
			if testCase.expectOverwrite {
				require.NotEqual(subtestInstance, existingContent, readTargetFile(subtestInstance, targetDirectory, ".editorconfig"), testCaseIndex)
			} else {
				require.Equal(subtestInstance, existingContent, readTargetFile(subtestInstance, targetDirectory, ".editorconfig"), testCaseIndex)
			}
		})
	}
}

func TestInstallOverwriteMergesExistingPyproject(testInstance *testing.T) {
	targetDirectory := testInstance.TempDir()
	existingPyproject := "[project]\nname = \"resident-portal\"\nversion = \"3.1.0\"\n\n[tool.poetry]\npackages = [{ include = \"resident_portal\" }]\n"
	require.NoError(testInstance, os.WriteFile(filepath.Join(targetDirectory, "pyproject.toml"), []byte(existingPyproject), 0o644))
	service := newTestService(testInstance, nil, nil)

	installationSummary, installError := service.Install(context.Background(), install.Options{
		TargetDirectory: targetDirectory,
		Language:        assets.LanguagePython,
		Overwrite:       true,
		NonInteractive:  true,
	})
	require.NoError(testInstance, installError)

	mergedContent := readTargetFile(testInstance, targetDirectory, "pyproject.toml")
	require.Contains(testInstance, mergedContent, "resident-portal")
	require.Contains(testInstance, mergedContent, "3.1.0")
	require.Contains(testInstance, mergedContent, "poetry")
	require.Contains(testInstance, mergedContent, "black")
	require.Equal(testInstance, 1, installationSummary.Count(install.FileActionMerged))
}

func TestInstallPromptAcceptanceMergesExistingPyproject(testInstance *testing.T) {
	targetDirectory := testInstance.TempDir()
	existingPyproject := "[project]\nname = \"resident-portal\"\n\n[tool.poetry]\nversion = \"3.1.0\"\n"
	require.NoError(testInstance, os.WriteFile(filepath.Join(targetDirectory, "pyproject.toml"), []byte(existingPyproject), 0o644))
	prompter := &scriptedPrompter{answers: []bool{true}}
	service := newTestService(testInstance, prompter, nil)

	installationSummary, installError := service.Install(context.Background(), install.Options{
		TargetDirectory: targetDirectory,
		Language:        assets.LanguagePython,
	})
	require.NoError(testInstance, installError)

	mergedContent := readTargetFile(testInstance, targetDirectory, "pyproject.toml")
	require.Contains(testInstance, mergedContent, "resident-portal")
	require.Contains(testInstance, mergedContent, "poetry")
	require.Contains(testInstance, mergedContent, "black")
	require.Equal(testInstance, 1, installationSummary.Count(install.FileActionMerged))
}

func TestInstallNonInteractiveLeavesExistingPyprojectUntouched(testInstance *testing.T) {
	targetDirectory := testInstance.TempDir()
	existingPyproject := "[project]\nname = \"resident-portal\"\nversion = \"3.1.0\"\n\n[tool.poetry]\npackages = [{ include = \"resident_portal\" }]\n"
	require.NoError(testInstance, os.WriteFile(filepath.Join(targetDirectory, "pyproject.toml"), []byte(existingPyproject), 0o644))
	service := newTestService(testInstance, nil, nil)

	installationSummary, installError := service.Install(context.Background(), install.Options{
		TargetDirectory: targetDirectory,
		Language:        assets.LanguagePython,
		NonInteractive:  true,
	})
	require.NoError(testInstance, installError)

	require.Equal(testInstance, existingPyproject, readTargetFile(testInstance, targetDirectory, "pyproject.toml"))
	require.Equal(testInstance, 1, installationSummary.Count(install.FileActionSkipped))
}

func TestInstallRunsPreCommitHookInstallation(testInstance *testing.T) {
	targetDirectory := testInstance.TempDir()
	hookInstaller := &recordingHookInstaller{}
	service := newTestService(testInstance, nil, hookInstaller)

	installationSummary, installError := service.Install(context.Background(), install.Options{
		TargetDirectory:       targetDirectory,
		Language:              assets.LanguagePython,
		NonInteractive:        true,
		InstallPreCommitHooks: true,
	})
	require.NoError(testInstance, installError)

	require.True(testInstance, installationSummary.HookInstallationRan)
	require.Len(testInstance, hookInstaller.invocations, 1)
	require.Equal(testInstance, []string{"install"}, hookInstaller.invocations[0].Arguments)
	require.Equal(testInstance, targetDirectory, hookInstaller.invocations[0].WorkingDirectory)
	require.Equal(testInstance, "never", hookInstaller.invocations[0].EnvironmentVariables["PRE_COMMIT_COLOR"])
}

func TestInstallContinuesWhenPreCommitExitsNonZero(testInstance *testing.T) {
	targetDirectory := testInstance.TempDir()
	hookInstaller := &recordingHookInstaller{failure: &execshell.CommandFailedError{
		Command: execshell.ShellCommand{Name: execshell.CommandPreCommit},
		Result:  execshell.ExecutionResult{ExitCode: 1},
	}}
	service := newTestService(testInstance, nil, hookInstaller)

	installationSummary, installError := service.Install(context.Background(), install.Options{
		TargetDirectory:       targetDirectory,
		Language:              assets.LanguagePython,
		NonInteractive:        true,
		InstallPreCommitHooks: true,
	})
	require.NoError(testInstance, installError)
	require.False(testInstance, installationSummary.HookInstallationRan)
	require.FileExists(testInstance, filepath.Join(targetDirectory, ".editorconfig"))
}

func TestInstallWarnsWhenPreCommitExecutableMissing(testInstance *testing.T) {
	targetDirectory := testInstance.TempDir()
	hookInstaller := &recordingHookInstaller{failure: exec.ErrNotFound}
	service := newTestService(testInstance, nil, hookInstaller)

	installationSummary, installError := service.Install(context.Background(), install.Options{
		TargetDirectory:       targetDirectory,
		Language:              assets.LanguagePython,
		NonInteractive:        true,
		InstallPreCommitHooks: true,
	})
	require.NoError(testInstance, installError)
	require.False(testInstance, installationSummary.HookInstallationRan)
	require.FileExists(testInstance, filepath.Join(targetDirectory, ".editorconfig"))
}

func TestInstallReportsHookInstallationFailure(testInstance *testing.T) {
	targetDirectory := testInstance.TempDir()
	hookInstaller := &recordingHookInstaller{failure: os.ErrPermission}
	service := newTestService(testInstance, nil, hookInstaller)

	_, installError := service.Install(context.Background(), install.Options{
		TargetDirectory:       targetDirectory,
		Language:              assets.LanguagePython,
		NonInteractive:        true,
		InstallPreCommitHooks: true,
	})
	require.Error(testInstance, installError)
	require.Contains(testInstance, installError.Error(), "pre-commit hook installation failed")
}
