package info

import (
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/spf13/cobra"

	"github.com/careforge/standards/internal/assets"
	"github.com/careforge/standards/internal/version"
)

const (
	commandUseConstant   = "info"
	commandShortConstant = "Describe the packaged standards"
	commandLongConstant  = "List the tool version, the bundled documentation guides, and every configuration file and editor rule the install command can place."

	versionTemplateConstant           = "standards %s\n"
	guidesHeadingConstant             = "Documentation guides:"
	configurationHeadingConstant      = "Configuration files:"
	editorRulesHeadingConstant        = "Editor rules:"
	guideRowTemplateConstant          = "  %s (%s)\n"
	artifactRowTemplateConstant       = "  %s\n"
	languageScopedRowTemplateConstant = "  %s [%s]\n"
	languageSeparatorConstant         = ", "
)

// CommandBuilder assembles the info command.
type CommandBuilder struct{}

// Build wires the info command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	return &cobra.Command{
		Use:          commandUseConstant,
		Short:        commandShortConstant,
		Long:         commandLongConstant,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(command *cobra.Command, _ []string) error {
			return writeCatalogDescription(command.OutOrStdout())
		},
	}, nil
}

func writeCatalogDescription(outputWriter io.Writer) error {
	fmt.Fprintf(outputWriter, versionTemplateConstant, version.CurrentVersionConstant)

	fmt.Fprintln(outputWriter, guidesHeadingConstant)
	for _, artifact := range assets.Catalog() {
		if artifact.Category != assets.CategoryDocumentation {
			continue
		}
		guidePayload, contentError := assets.Content(artifact)
		if contentError != nil {
			return contentError
		}
		guideTitle := GuideTitle(guidePayload)
		if len(guideTitle) == 0 {
			guideTitle = path.Base(artifact.DestinationPath)
		}
		fmt.Fprintf(outputWriter, guideRowTemplateConstant, guideTitle, artifact.DestinationPath)
	}

	fmt.Fprintln(outputWriter, configurationHeadingConstant)
	for _, artifact := range assets.Catalog() {
		if artifact.Category != assets.CategoryConfiguration {
			continue
		}
		if len(artifact.Languages) == 0 {
			fmt.Fprintf(outputWriter, artifactRowTemplateConstant, artifact.DestinationPath)
			continue
		}
		fmt.Fprintf(outputWriter, languageScopedRowTemplateConstant, artifact.DestinationPath, joinLanguages(artifact.Languages))
	}

	fmt.Fprintln(outputWriter, editorRulesHeadingConstant)
	for _, artifact := range assets.Catalog() {
		if artifact.Category != assets.CategoryCursorRules && artifact.Category != assets.CategoryAntigravityRules {
			continue
		}
		fmt.Fprintf(outputWriter, artifactRowTemplateConstant, artifact.DestinationPath)
	}

	return nil
}

func joinLanguages(languages []assets.Language) string {
	languageNames := make([]string, 0, len(languages))
	for _, language := range languages {
		languageNames = append(languageNames, string(language))
	}
	return strings.Join(languageNames, languageSeparatorConstant)
}
