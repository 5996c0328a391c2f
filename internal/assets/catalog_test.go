package assets_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/careforge/standards/internal/assets"
)

func TestCatalogPayloadsAreReadable(testInstance *testing.T) {
	for _, artifact := range assets.Catalog() {
		payload, contentError := assets.Content(artifact)
		require.NoError(testInstance, contentError, artifact.SourcePath)
		require.NotEmpty(testInstance, payload, artifact.SourcePath)
	}
}

func TestCatalogDestinationsAreUnique(testInstance *testing.T) {
	seenDestinations := map[string]bool{}
	for _, artifact := range assets.Catalog() {
		require.False(testInstance, seenDestinations[artifact.DestinationPath], artifact.DestinationPath)
		seenDestinations[artifact.DestinationPath] = true
	}
}

func TestParseLanguage(testInstance *testing.T) {
	testCases := []struct {
		name             string
		languageName     string
		expectedLanguage assets.Language
		expectError      bool
	}{
		{name: "python", languageName: "python", expectedLanguage: assets.LanguagePython},
		{name: "javascript", languageName: "javascript", expectedLanguage: assets.LanguageJavaScript},
		{name: "go", languageName: "go", expectedLanguage: assets.LanguageGo},
		{name: "unknown", languageName: "rust", expectError: true},
		{name: "empty", languageName: "", expectError: true},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtestInstance *testing.T) {
			parsedLanguage, parseError := assets.ParseLanguage(testCase.languageName)
			if testCase.expectError {
				require.Error(subtestInstance, parseError, testCaseIndex)
				return
			}
			require.NoError(subtestInstance, parseError, testCaseIndex)
			require.Equal(subtestInstance, testCase.expectedLanguage, parsedLanguage, testCaseIndex)
		})
	}
}

func TestSelectArtifacts(testInstance *testing.T) {
	testCases := []struct {
		name                 string
		selection            assets.Selection
		expectedDestinations []string
		excludedDestinations []string
	}{
		{
			name:      "python_defaults",
			selection: assets.Selection{Language: assets.LanguagePython},
			expectedDestinations: []string{
				".editorconfig",
				".pre-commit-config.yaml",
				".flake8",
				".pylintrc",
				"pyproject.toml",
			},
			excludedDestinations: []string{
				".eslintrc.json",
				".golangci.yml",
				"docs/standards/CODING_STANDARDS.md",
				".cursorrules",
				".antigravity/rules/coding-standards.mdc",
			},
		},
		{
			name: "javascript_with_documentation",
			selection: assets.Selection{
				Language:             assets.LanguageJavaScript,
				IncludeDocumentation: true,
			},
			expectedDestinations: []string{
				".eslintrc.json",
				".prettierrc",
				"docs/standards/CODING_STANDARDS.md",
				"docs/standards/AI_PROMPT_STANDARDS.md",
			},
			excludedDestinations: []string{".flake8", "pyproject.toml", ".golangci.yml"},
		},
		{
			name: "go_with_editor_rules",
			selection: assets.Selection{
				Language:                assets.LanguageGo,
				IncludeCursorRules:      true,
				IncludeAntigravityRules: true,
			},
			expectedDestinations: []string{
				".golangci.yml",
				".cursorrules",
				".cursor/rules/coding-standards.mdc",
				".antigravity/rules/ai-prompts.mdc",
			},
			excludedDestinations: []string{".pylintrc", "docs/standards/CODING_STANDARDS.md"},
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtestInstance *testing.T) {
			selectedArtifacts := assets.SelectArtifacts(testCase.selection)
			selectedDestinations := map[string]bool{}
			for _, artifact := range selectedArtifacts {
				selectedDestinations[artifact.DestinationPath] = true
			}
			for _, expectedDestination := range testCase.expectedDestinations {
				require.True(subtestInstance, selectedDestinations[expectedDestination], "case %d missing %s", testCaseIndex, expectedDestination)
			}
			for _, excludedDestination := range testCase.excludedDestinations {
				require.False(subtestInstance, selectedDestinations[excludedDestination], "case %d unexpected %s", testCaseIndex, excludedDestination)
			}
		})
	}
}

func TestRenderSubstitutesProjectName(testInstance *testing.T) {
	var templatedArtifact assets.Artifact
	for _, artifact := range assets.Catalog() {
		if artifact.Templated {
			templatedArtifact = artifact
			break
		}
	}
	require.NotEmpty(testInstance, templatedArtifact.SourcePath)

	renderedPayload, renderError := assets.Render(templatedArtifact, assets.ProjectContext{ProjectName: "billing-service"})
	require.NoError(testInstance, renderError)
	require.Contains(testInstance, string(renderedPayload), "billing-service")
	require.False(testInstance, strings.Contains(string(renderedPayload), "{{"))
}

func TestRenderLeavesPlainArtifactsUntouched(testInstance *testing.T) {
	var plainArtifact assets.Artifact
	for _, artifact := range assets.Catalog() {
		if !artifact.Templated {
			plainArtifact = artifact
			break
		}
	}
	require.NotEmpty(testInstance, plainArtifact.SourcePath)

	rawPayload, contentError := assets.Content(plainArtifact)
	require.NoError(testInstance, contentError)
	renderedPayload, renderError := assets.Render(plainArtifact, assets.ProjectContext{ProjectName: "billing-service"})
	require.NoError(testInstance, renderError)
	require.Equal(testInstance, rawPayload, renderedPayload)
}
