package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sargunv/fastfile-tools/internal/cli/format"
	"github.com/sargunv/fastfile-tools/lib/convert"
	"github.com/sargunv/fastfile-tools/lib/core"
	"github.com/sargunv/fastfile-tools/lib/session"
)

var (
	convertTargetPlatform string
	convertTargetSigned   bool
	convertOverridePath   string
)

var convertCmd = &cobra.Command{
	Use:   "convert <file> <target-path>",
	Short: "Convert a container to a different platform of the same game",
	Args:  cobra.ExactArgs(2),
	RunE:  runConvert,
}

func init() {
	convertCmd.Flags().StringVar(&convertTargetPlatform, "platform", "", "Target platform: xenon, ps3, pc, wii")
	convertCmd.Flags().BoolVar(&convertTargetSigned, "signed", false, "Emit a signed container (console only)")
	convertCmd.Flags().StringVar(&convertOverridePath, "name-overrides", "", "YAML file of additional xenon<->ps3 name substitutions")
	_ = convertCmd.MarkFlagRequired("platform")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	platform, err := parsePlatform(convertTargetPlatform)
	if err != nil {
		return err
	}
	signing := core.Unsigned
	if convertTargetSigned {
		signing = core.Signed
	}

	overrides, err := convert.LoadOverrideFile(convertOverridePath)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	out, report, err := session.Convert(data, platform, signing, convert.NewNameTable(overrides))
	if err != nil {
		return err
	}

	if err := os.WriteFile(args[1], out, 0o644); err != nil {
		return err
	}

	fmt.Println(format.KV("Converted", fmt.Sprintf("%s -> %s", report.SourceVariant, report.TargetVariant)))
	fmt.Println(format.KV("Type IDs shifted", itoa(report.RecordsShifted)))
	fmt.Println(format.KV("Names replaced", itoa(report.NamesReplaced)))
	fmt.Println(format.KV("Written to", args[1]))
	return nil
}

func parsePlatform(s string) (core.Platform, error) {
	switch s {
	case "xenon":
		return core.PlatformXenon, nil
	case "ps3":
		return core.PlatformPS3, nil
	case "pc":
		return core.PlatformPC, nil
	case "wii":
		return core.PlatformWii, nil
	default:
		return core.PlatformUnknown, fmt.Errorf("unknown target platform %q (want xenon, ps3, pc, or wii)", s)
	}
}
