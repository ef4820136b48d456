package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sargunv/fastfile-tools/internal/cli/filter"
	"github.com/sargunv/fastfile-tools/internal/cli/format"
	"github.com/sargunv/fastfile-tools/lib/session"
)

var (
	extractOutDir     string
	extractFilterExpr string
)

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Extract raw files from a FastFile container to disk",
	Long: `Extract every raw file a session was able to parse, optionally
narrowed with --filter, an expr-lang expression over name and size, e.g.:

  ffcli extract game.ff --filter 'name endsWith ".gsc"' --out ./extracted`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVar(&extractOutDir, "out", ".", "Directory to write extracted files into")
	extractCmd.Flags().StringVar(&extractFilterExpr, "filter", "", "expr-lang expression over name/size selecting which raw files to extract")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	s, err := session.Open(data)
	if err != nil {
		return err
	}

	f, err := filter.New(extractFilterExpr)
	if err != nil {
		return err
	}

	written := 0
	for _, rf := range s.ExtractRawFiles() {
		match, err := f.Matches(filter.Context{Name: rf.Name, Size: len(rf.Content)})
		if err != nil {
			return err
		}
		if !match {
			continue
		}

		dest := filepath.Join(extractOutDir, filepath.FromSlash(rf.Name))
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(dest, rf.Content, 0o644); err != nil {
			return err
		}
		written++
		if !jsonOutput {
			fmt.Println(format.KV("Extracted", dest))
		}
	}

	if jsonOutput {
		fmt.Printf("{\"extracted\":%d}\n", written)
	} else {
		fmt.Println(format.KV("Total extracted", itoa(written)))
	}
	return nil
}
