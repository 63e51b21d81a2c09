package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tidynest/hypr-keybind-manager/internal/danger"
	"github.com/tidynest/hypr-keybind-manager/internal/output"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check <command>...",
	Short: "Assess a single command for dangerous patterns",
	Long: `Assess a command string the way exec binding arguments are assessed:
known-safe short-circuit, destruction patterns, dangerous argument
combinations, dangerous and suspicious tools, and encoded payloads.

The exit code is non-zero for critical commands.

	Examples:
	  hypr-keybind-manager check "firefox"
	  hypr-keybind-manager check "rm -rf /"
	  hypr-keybind-manager check "echo cm0gLXJmIC8K | base64 -d | sh"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		command := strings.Join(args, " ")

		detector := danger.NewDetector()
		assessment := detector.Assess(command)

		if output.IsStructured() {
			type checkResult struct {
				Command        string `json:"command" yaml:"command"`
				Level          string `json:"level" yaml:"level"`
				Reason         string `json:"reason" yaml:"reason"`
				Recommendation string `json:"recommendation,omitempty" yaml:"recommendation,omitempty"`
				Pattern        string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
			}
			if err := output.OutputStructured(checkResult{
				Command:        command,
				Level:          assessment.Level.String(),
				Reason:         assessment.Reason,
				Recommendation: assessment.Recommendation,
				Pattern:        assessment.MatchedPattern,
			}); err != nil {
				return err
			}
		} else {
			fmt.Printf("%s %s\n", output.RenderLevelBadge(assessment.Level), command)
			fmt.Printf("  %s\n", assessment.Reason)
			if assessment.Recommendation != "" {
				fmt.Printf("  %s\n", assessment.Recommendation)
			}
		}

		if assessment.Level == danger.Critical {
			return fmt.Errorf("command assessed as critical")
		}
		return nil
	},
}
