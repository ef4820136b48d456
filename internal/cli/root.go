// Package cli wires the toolkit's session operations to a cobra command
// tree: open/inspect, extract, save, convert, and transfer-space.
package cli

import (
	"github.com/spf13/cobra"
)

var (
	jsonOutput bool
	locale     string
)

var rootCmd = &cobra.Command{
	Use:   "ffcli",
	Short: "Inspect, edit, and convert FastFile containers",
	Long: `ffcli opens FastFile (.ff) containers, extracts and edits their raw
files and localize entries in place where possible, rebuilds the zone when
an edit doesn't fit, and converts a container between platforms of the
same game.`,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results as JSON (honored by extract only)")
	rootCmd.PersistentFlags().StringVar(&locale, "locale", "", "Override locale for language-tagged output (e.g., en, fr)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
