package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/daybook-sh/daybook/pkg/models"
	"github.com/spf13/cobra"
)

const defaultConfigContent = `# Daybook configuration
journal:
  dir: journal
  database: daybook-db.json
  items: items.yaml

schedule:
  epoch: "2020-01-01"

events:
  enabled: true
`

const sampleItemsContent = `# Custom item definitions. Items here replace built-ins with the same id;
# new ids are appended.
#
# items:
#   - id: reading
#     label: Read for 30 minutes
#     category: habit
#     input:
#       type: boolean
#     schedule:
#       target:
#         count: 4
#         per:
#           count: 1
#           unit: week
items: []
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a Daybook journal in the current directory",
	Long: `Create the Daybook directory layout: the .daybookconfig file, the journal
folder with one subfolder per report tier, and a sample items.yaml for custom
item definitions. Existing files are left untouched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		configPath := filepath.Join(BasePath, ".daybookconfig")
		if created, err := writeIfMissing(configPath, defaultConfigContent); err != nil {
			return err
		} else if created {
			fmt.Fprintf(out, "Created %s\n", configPath)
		}

		itemsPath := filepath.Join(BasePath, "items.yaml")
		if created, err := writeIfMissing(itemsPath, sampleItemsContent); err != nil {
			return err
		} else if created {
			fmt.Fprintf(out, "Created %s\n", itemsPath)
		}

		for _, def := range models.ReportDefinitions {
			folder := filepath.Join(BasePath, "journal", def.Folder)
			if err := os.MkdirAll(folder, 0o755); err != nil {
				return fmt.Errorf("creating %s: %w", folder, err)
			}
		}
		fmt.Fprintf(out, "Journal folders ready under %s\n", filepath.Join(BasePath, "journal"))

		return nil
	},
}

// writeIfMissing creates the file with the given content unless it already
// exists.
func writeIfMissing(path, content string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("checking %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	return true, nil
}

func init() {
	rootCmd.AddCommand(initCmd)
}
