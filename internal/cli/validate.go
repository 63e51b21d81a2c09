package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tidynest/hypr-keybind-manager/internal/config"
	"github.com/tidynest/hypr-keybind-manager/internal/output"
)

func init() {
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the whole config",
	Long: `Run every check over the config: dispatcher whitelist and injection
checks per binding, command risk assessment for exec bindings, and
duplicate detection across the file. All issues are reported together.

The exit code is non-zero when any blocking issue is found.

	Examples:
	  hypr-keybind-manager validate
	  hypr-keybind-manager validate --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newManager()
		if err != nil {
			return err
		}
		content, err := m.Read()
		if err != nil {
			return err
		}

		validator, err := newValidator()
		if err != nil {
			return err
		}
		report, _ := validator.ValidateContent(content, m.ConfigPath())

		if output.IsStructured() {
			type validateResult struct {
				Summary       string         `json:"summary" yaml:"summary"`
				HighestDanger string         `json:"highest_danger" yaml:"highest_danger"`
				Blocking      bool           `json:"blocking" yaml:"blocking"`
				Issues        []config.Issue `json:"issues" yaml:"issues"`
			}
			if err := output.OutputStructured(validateResult{
				Summary:       report.Summary(),
				HighestDanger: report.HighestDanger().String(),
				Blocking:      report.HasBlocking(),
				Issues:        report.Issues,
			}); err != nil {
				return err
			}
		} else {
			for _, issue := range report.Issues {
				fmt.Printf("%s [%s] line %d: %s\n",
					output.RenderSeverityBadge(issue.SeverityName), issue.Layer, issue.Line, issue.Message)
				if issue.Suggestion != "" {
					fmt.Printf("  %s\n", issue.Suggestion)
				}
			}
			fmt.Println(report.Summary())
		}

		if report.HasBlocking() {
			return fmt.Errorf("validation failed: blocking issues found")
		}
		return nil
	},
}
