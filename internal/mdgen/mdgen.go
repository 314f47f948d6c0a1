package mdgen

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledger-calendar-bot/assistant/internal/settings"
)

// GenerateConfigurationsMD writes one table per settings section
func GenerateConfigurationsMD(filePath string, sections []settings.Section) error {
	var sb strings.Builder
	sb.WriteString("# Assistant Configuration\n\n")

	for _, section := range sections {
		sb.WriteString(fmt.Sprintf("## %s\n\n", section.Title))
		sb.WriteString("| Environment Variable | Default Value | Description |\n")
		sb.WriteString("|---------------------|---------------|-------------|\n")

		for _, setting := range section.Settings {
			defaultVal := "`" + setting.Default + "`"
			if setting.Default == "" {
				defaultVal = "`\"\"`"
			}
			description := setting.Description
			if setting.Secret {
				description += " (secret)"
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %s |\n", setting.Env, defaultVal, description))
		}
		sb.WriteString("\n")
	}

	return os.WriteFile(filePath, []byte(sb.String()), 0644)
}
