package assets

import "fmt"

// ArtifactCategory groups artifacts by the installation surface they serve.
type ArtifactCategory string

const (
	CategoryConfiguration    ArtifactCategory = "configuration"
	CategoryDocumentation    ArtifactCategory = "documentation"
	CategoryCursorRules      ArtifactCategory = "cursor-rules"
	CategoryAntigravityRules ArtifactCategory = "antigravity-rules"
)

// Language identifies the project language a language-specific artifact targets.
type Language string

const (
	LanguagePython     Language = "python"
	LanguageJavaScript Language = "javascript"
	LanguageGo         Language = "go"
)

const unsupportedLanguageErrorTemplateConstant = "unsupported language %q (expected python, javascript, or go)"

// ParseLanguage validates a user-supplied language name.
func ParseLanguage(languageName string) (Language, error) {
	switch Language(languageName) {
	case LanguagePython, LanguageJavaScript, LanguageGo:
		return Language(languageName), nil
	default:
		return "", fmt.Errorf(unsupportedLanguageErrorTemplateConstant, languageName)
	}
}

// Artifact describes one embedded file and its destination inside a target repository.
type Artifact struct {
	SourcePath      string
	DestinationPath string
	Category        ArtifactCategory
	Languages       []Language
	MergeTOML       bool
	Templated       bool
}

// AppliesToLanguage reports whether the artifact belongs in a repository of the given language.
func (artifact Artifact) AppliesToLanguage(language Language) bool {
	if len(artifact.Languages) == 0 {
		return true
	}
	for _, artifactLanguage := range artifact.Languages {
		if artifactLanguage == language {
			return true
		}
	}
	return false
}

// Catalog lists every distributable artifact in installation order.
func Catalog() []Artifact {
	return []Artifact{
		{
			SourcePath:      "data/configs/.editorconfig",
			DestinationPath: ".editorconfig",
			Category:        CategoryConfiguration,
		},
		{
			SourcePath:      "data/configs/.pre-commit-config.yaml",
			DestinationPath: ".pre-commit-config.yaml",
			Category:        CategoryConfiguration,
		},
		{
			SourcePath:      "data/configs/.flake8",
			DestinationPath: ".flake8",
			Category:        CategoryConfiguration,
			Languages:       []Language{LanguagePython},
		},
		{
			SourcePath:      "data/configs/.pylintrc",
			DestinationPath: ".pylintrc",
			Category:        CategoryConfiguration,
			Languages:       []Language{LanguagePython},
		},
		{
			SourcePath:      "data/configs/pyproject.toml",
			DestinationPath: "pyproject.toml",
			Category:        CategoryConfiguration,
			Languages:       []Language{LanguagePython},
			MergeTOML:       true,
			Templated:       true,
		},
		{
			SourcePath:      "data/configs/.eslintrc.json",
			DestinationPath: ".eslintrc.json",
			Category:        CategoryConfiguration,
			Languages:       []Language{LanguageJavaScript},
		},
		{
			SourcePath:      "data/configs/.prettierrc",
			DestinationPath: ".prettierrc",
			Category:        CategoryConfiguration,
			Languages:       []Language{LanguageJavaScript},
		},
		{
			SourcePath:      "data/configs/.golangci.yml",
			DestinationPath: ".golangci.yml",
			Category:        CategoryConfiguration,
			Languages:       []Language{LanguageGo},
		},
		{
			SourcePath:      "data/docs/CODING_STANDARDS.md",
			DestinationPath: "docs/standards/CODING_STANDARDS.md",
			Category:        CategoryDocumentation,
		},
		{
			SourcePath:      "data/docs/CODING_STANDARDS_QUICK_REF.md",
			DestinationPath: "docs/standards/CODING_STANDARDS_QUICK_REF.md",
			Category:        CategoryDocumentation,
		},
		{
			SourcePath:      "data/docs/AI_PROMPT_STANDARDS.md",
			DestinationPath: "docs/standards/AI_PROMPT_STANDARDS.md",
			Category:        CategoryDocumentation,
		},
		{
			SourcePath:      "data/docs/AI_PROMPT_STANDARDS_QUICK_REF.md",
			DestinationPath: "docs/standards/AI_PROMPT_STANDARDS_QUICK_REF.md",
			Category:        CategoryDocumentation,
		},
		{
			SourcePath:      "data/editor/.cursorrules",
			DestinationPath: ".cursorrules",
			Category:        CategoryCursorRules,
		},
		{
			SourcePath:      "data/editor/cursor-rules/coding-standards.mdc",
			DestinationPath: ".cursor/rules/coding-standards.mdc",
			Category:        CategoryCursorRules,
		},
		{
			SourcePath:      "data/editor/cursor-rules/ai-prompts.mdc",
			DestinationPath: ".cursor/rules/ai-prompts.mdc",
			Category:        CategoryCursorRules,
		},
		{
			SourcePath:      "data/editor/antigravity-rules/coding-standards.mdc",
			DestinationPath: ".antigravity/rules/coding-standards.mdc",
			Category:        CategoryAntigravityRules,
		},
		{
			SourcePath:      "data/editor/antigravity-rules/ai-prompts.mdc",
			DestinationPath: ".antigravity/rules/ai-prompts.mdc",
			Category:        CategoryAntigravityRules,
		},
	}
}

// Selection narrows the catalog to the artifacts one installation run should place.
type Selection struct {
	Language                Language
	IncludeDocumentation    bool
	IncludeCursorRules      bool
	IncludeAntigravityRules bool
}

// SelectArtifacts filters the catalog using the provided selection.
func SelectArtifacts(selection Selection) []Artifact {
	selected := make([]Artifact, 0, len(Catalog()))
	for _, artifact := range Catalog() {
		switch artifact.Category {
		case CategoryDocumentation:
			if !selection.IncludeDocumentation {
				continue
			}
		case CategoryCursorRules:
			if !selection.IncludeCursorRules {
				continue
			}
		case CategoryAntigravityRules:
			if !selection.IncludeAntigravityRules {
				continue
			}
		}
		if !artifact.AppliesToLanguage(selection.Language) {
			continue
		}
		selected = append(selected, artifact)
	}
	return selected
}
