package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sargunv/fastfile-tools/internal/cli/confirm"
	"github.com/sargunv/fastfile-tools/internal/cli/format"
	"github.com/sargunv/fastfile-tools/lib/core"
	"github.com/sargunv/fastfile-tools/lib/patch"
	"github.com/sargunv/fastfile-tools/lib/session"
)

var (
	transferRebuildMode bool
	transferAssumeYes   bool
	transferTargetPath  string
)

var transferSpaceCmd = &cobra.Command{
	Use:   "transfer-space <file> <donor> <recipient> <bytes>",
	Short: "Move allocated raw-file slot capacity from donor to recipient",
	Long: `Shifts n bytes of slot capacity from the donor raw file to the
recipient, by default in place (only the bytes physically between the two
slots move; every other asset, including unparsed ones, is preserved). Pass
--rebuild to instead regenerate the zone from raw files and localize
entries only, which is refused without confirmation if the session has
unparsed assets.`,
	Args: cobra.ExactArgs(4),
	RunE: runTransferSpace,
}

func init() {
	transferSpaceCmd.Flags().BoolVar(&transferRebuildMode, "rebuild", false, "Use the rebuild transfer strategy instead of in-place")
	transferSpaceCmd.Flags().BoolVarP(&transferAssumeYes, "yes", "y", false, "Confirm a rebuild that would drop unparsed assets without prompting")
	transferSpaceCmd.Flags().StringVar(&transferTargetPath, "target-path", "", "Output path; defaults to overwriting the input")
	rootCmd.AddCommand(transferSpaceCmd)
}

func runTransferSpace(cmd *cobra.Command, args []string) error {
	inPath, donorName, recipientName := args[0], args[1], args[2]
	n, err := strconv.ParseUint(args[3], 10, 32)
	if err != nil {
		return fmt.Errorf("invalid byte count %q: %w", args[3], err)
	}

	data, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}
	s, err := session.Open(data)
	if err != nil {
		return err
	}

	mode := patch.TransferInPlace
	if transferRebuildMode {
		mode = patch.TransferRebuild
	}

	opts := session.SaveOptions{RebuildOnFail: transferAssumeYes}
	result, out, err := s.TransferSpace(donorName, recipientName, uint32(n), mode, opts)
	var coreErr *core.Error
	if errors.As(err, &coreErr) && coreErr.Kind == core.RebuildNeeded && !transferAssumeYes {
		ok, askErr := confirm.Ask(fmt.Sprintf("%s; rebuild and drop %d unparsed asset(s)", coreErr.Message, len(s.UnparsedAssets)))
		if askErr != nil {
			return askErr
		}
		if !ok {
			return fmt.Errorf("transfer cancelled: rebuild was not confirmed")
		}
		result, out, err = s.TransferSpace(donorName, recipientName, uint32(n), mode, session.SaveOptions{RebuildOnFail: true})
	}
	if err != nil {
		return err
	}

	target := transferTargetPath
	if target == "" {
		target = inPath
	}
	if err := os.WriteFile(target, out, 0o644); err != nil {
		return err
	}

	fmt.Println(format.KV("Donor new MaxSize", itoa(int(result.DonorMaxSize))))
	fmt.Println(format.KV("Recipient new MaxSize", itoa(int(result.RecipientMaxSize))))
	fmt.Println(format.KV("Written to", target))
	return nil
}
