package envgen

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledger-calendar-bot/assistant/internal/settings"
)

// GenerateEnvExample writes a dotenv file with every setting at its default value
func GenerateEnvExample(filePath string, sections []settings.Section) error {
	var sb strings.Builder
	for i, section := range sections {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("# %s\n", section.Title))
		for _, setting := range section.Settings {
			sb.WriteString(fmt.Sprintf("%s=%s\n", setting.Env, setting.Default))
		}
	}

	return os.WriteFile(filePath, []byte(sb.String()), 0644)
}
