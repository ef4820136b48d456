package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sargunv/fastfile-tools/internal/cli/format"
	"github.com/sargunv/fastfile-tools/lib/session"
)

var openCmd = &cobra.Command{
	Use:   "open <file>",
	Short: "Open a FastFile container and report what it contains",
	Args:  cobra.ExactArgs(1),
	RunE:  runOpen,
}

func init() {
	rootCmd.AddCommand(openCmd)
}

func runOpen(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	s, err := session.Open(data)
	if err != nil {
		return err
	}

	lang := format.PreferredLanguage(locale)

	fmt.Println(format.TitleStyle.Render(fmt.Sprintf("%s (%s)", args[0], s.Variant)))
	fmt.Println(format.KV("Language hint", lang))
	fmt.Println(format.KV("Raw files", itoa(len(s.RawFiles))))
	fmt.Println(format.KV("Localize entries", itoa(len(s.Localizes))))
	fmt.Println(format.KV("String tables", itoa(len(s.StringTables))))
	fmt.Println(format.KV("Menu lists", itoa(len(s.MenuLists))))
	fmt.Println(format.KV("Tech sets", itoa(len(s.TechSets))))
	fmt.Println(format.KV("Anims", itoa(len(s.XAnims))))
	fmt.Println(format.KV("Weapons", itoa(len(s.Weapons))))
	fmt.Println(format.KV("Images", itoa(len(s.Images))))

	if len(s.Warnings) > 0 {
		fmt.Println(format.WarnStyle.Render(fmt.Sprintf("%d parse warning(s):", len(s.Warnings))))
		for _, w := range s.Warnings {
			fmt.Printf("  pool offset %#x (type %#x, %s): %v\n", w.PoolOffset, w.TypeID, w.Kind, w.Err)
		}
	}
	if len(s.UnparsedAssets) > 0 {
		fmt.Println(format.WarnStyle.Render(fmt.Sprintf("%d unparsed asset(s) follow:", len(s.UnparsedAssets))))
		for _, u := range s.UnparsedAssets {
			fmt.Printf("  pool offset %#x (type %#x, %s)\n", u.PoolOffset, u.TypeID, u.Kind)
		}
	}

	return nil
}

func itoa(n int) string {
	return fmt.Sprintf("%d", n)
}
