package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sargunv/fastfile-tools/internal/cli/confirm"
	"github.com/sargunv/fastfile-tools/internal/cli/format"
	"github.com/sargunv/fastfile-tools/lib/core"
	"github.com/sargunv/fastfile-tools/lib/session"
)

var (
	saveRawFileName string
	saveRawFilePath string
	saveLocalizeKey string
	saveLocalizeNew string
	saveTargetPath  string
	saveAssumeYes   bool
)

var saveCmd = &cobra.Command{
	Use:   "save <file>",
	Short: "Apply a raw file or localize edit and save the container",
	Long: `Queues one edit (--set-rawfile or --set-localize) against an open
session and saves it: in place if it fits, or via a full zone rebuild if it
doesn't. A rebuild that would drop assets this session couldn't parse
prompts for confirmation unless --yes is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runSave,
}

func init() {
	saveCmd.Flags().StringVar(&saveRawFileName, "set-rawfile", "", "Name of an existing raw file to replace")
	saveCmd.Flags().StringVar(&saveRawFilePath, "from", "", "Local file whose content replaces --set-rawfile")
	saveCmd.Flags().StringVar(&saveLocalizeKey, "set-localize", "", "Key of an existing localize entry to replace")
	saveCmd.Flags().StringVar(&saveLocalizeNew, "text", "", "New text for --set-localize")
	saveCmd.Flags().StringVar(&saveTargetPath, "target-path", "", "Output path; defaults to overwriting the input")
	saveCmd.Flags().BoolVarP(&saveAssumeYes, "yes", "y", false, "Confirm a rebuild that would drop unparsed assets without prompting")
	rootCmd.AddCommand(saveCmd)
}

func runSave(cmd *cobra.Command, args []string) error {
	inPath := args[0]
	data, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}
	s, err := session.Open(data)
	if err != nil {
		return err
	}

	if saveRawFileName != "" {
		content, err := os.ReadFile(saveRawFilePath)
		if err != nil {
			return err
		}
		if err := s.QueueRawFileEdit(saveRawFileName, content); err != nil {
			return err
		}
	}
	if saveLocalizeKey != "" {
		if err := s.QueueLocalizeEdit(saveLocalizeKey, saveLocalizeNew); err != nil {
			return err
		}
	}

	report, out, err := s.Save(session.SaveOptions{RebuildOnFail: saveAssumeYes})
	var coreErr *core.Error
	if errors.As(err, &coreErr) && coreErr.Kind == core.RebuildNeeded && !saveAssumeYes {
		ok, askErr := confirm.Ask(fmt.Sprintf("%s; rebuild and drop %d unparsed asset(s)", coreErr.Message, len(s.UnparsedAssets)))
		if askErr != nil {
			return askErr
		}
		if !ok {
			return fmt.Errorf("save cancelled: rebuild was not confirmed")
		}
		report, out, err = s.Save(session.SaveOptions{RebuildOnFail: true})
	}
	if err != nil {
		return err
	}

	target := saveTargetPath
	if target == "" {
		target = inPath
	}
	if err := os.WriteFile(target, out, 0o644); err != nil {
		return err
	}

	fmt.Println(format.KV("Saved", target))
	fmt.Println(format.KV("Rebuilt", fmt.Sprintf("%t", report.Rebuilt)))
	fmt.Println(format.KV("Edits applied", itoa(report.EditsApplied)))
	if len(report.DroppedKinds) > 0 {
		fmt.Println(format.WarnStyle.Render(fmt.Sprintf("dropped %d asset kind(s) during rebuild", len(report.DroppedKinds))))
	}
	return nil
}
