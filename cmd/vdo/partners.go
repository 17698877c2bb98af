package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/viplavganguli77/vdo-validator/internal/normalize"
	"github.com/viplavganguli77/vdo-validator/internal/util"
)

var partnersCmd = &cobra.Command{
	Use:   "partners",
	Short: "Manage demand partners and their expected lines",
}

var partnersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List demand partners",
	RunE:  runPartnersList,
}

var partnersAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a demand partner with its expected lines",
	Long: `Add a demand partner. Lines come from --lines-file, one ads.txt
line per line. Adding an existing partner leaves it untouched and
appends the given lines.`,
	Args: cobra.ExactArgs(1),
	RunE: runPartnersAdd,
}

var partnersDeleteCmd = &cobra.Command{
	Use:   "delete <name>...",
	Short: "Delete demand partners and all their lines",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPartnersDelete,
}

var partnersRenameCmd = &cobra.Command{
	Use:   "rename <old> <new>",
	Short: "Rename a demand partner",
	Args:  cobra.ExactArgs(2),
	RunE:  runPartnersRename,
}

var partnersSetIntegrationCmd = &cobra.Command{
	Use:   "set-integration <name> <type>",
	Short: "Set a partner's integration type (Prebid, VAST, Other)",
	Args:  cobra.ExactArgs(2),
	RunE:  runPartnersSetIntegration,
}

var partnersLinesCmd = &cobra.Command{
	Use:   "lines <name>",
	Short: "Show or edit a partner's expected lines",
	Args:  cobra.ExactArgs(1),
	RunE:  runPartnersLines,
}

func init() {
	rootCmd.AddCommand(partnersCmd)
	partnersCmd.AddCommand(partnersListCmd)
	partnersCmd.AddCommand(partnersAddCmd)
	partnersCmd.AddCommand(partnersDeleteCmd)
	partnersCmd.AddCommand(partnersRenameCmd)
	partnersCmd.AddCommand(partnersSetIntegrationCmd)
	partnersCmd.AddCommand(partnersLinesCmd)

	partnersAddCmd.Flags().String("integration", "", "integration type (Prebid, VAST, Other)")
	partnersAddCmd.Flags().String("lines-file", "", "file with expected ads.txt lines")

	partnersLinesCmd.Flags().String("append-file", "", "append lines from this file")
	partnersLinesCmd.Flags().StringSlice("delete", nil, "delete lines matching this exact stored text")
}

func runPartnersList(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	partners, err := db.GetPartners()
	if err != nil {
		return err
	}
	if len(partners) == 0 {
		util.InfoLog("No demand partners in the catalog")
		return nil
	}

	table := tablewriter.NewTable(os.Stdout)
	table.Header("Partner", "Integration Type", "Lines")
	for _, p := range partners {
		lines, err := db.GetPartnerLines(p.ID)
		if err != nil {
			return err
		}
		if err := table.Append(p.Name, p.IntegrationType, strconv.Itoa(len(lines))); err != nil {
			return fmt.Errorf("failed to append row: %w", err)
		}
	}
	return table.Render()
}

func runPartnersAdd(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	integration, _ := cmd.Flags().GetString("integration")
	if _, err := db.GetOrCreatePartner(args[0], integration); err != nil {
		return err
	}

	if linesFile, _ := cmd.Flags().GetString("lines-file"); linesFile != "" {
		lines, err := readLinesFile(linesFile)
		if err != nil {
			return err
		}
		if err := db.AppendPartnerLines(args[0], lines); err != nil {
			return err
		}
		util.SuccessLog("Partner %q saved with %d line(s)", args[0], len(lines))
		return nil
	}

	util.SuccessLog("Partner %q saved", args[0])
	return nil
}

func runPartnersDelete(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.DeletePartners(args); err != nil {
		return err
	}
	util.SuccessLog("Deleted %d partner(s)", len(args))
	return nil
}

func runPartnersRename(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	ok, err := db.RenamePartner(args[0], args[1])
	if err != nil {
		return err
	}
	if !ok {
		util.WarnLog("Rename failed: %q is empty, already taken, or %q does not exist", args[1], args[0])
		return nil
	}
	util.SuccessLog("Partner %q renamed to %q", args[0], args[1])
	return nil
}

func runPartnersSetIntegration(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.UpdateIntegrationType(args[0], args[1]); err != nil {
		return err
	}
	util.SuccessLog("Integration type of %q set to %q", args[0], args[1])
	return nil
}

func runPartnersLines(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	name := args[0]

	if appendFile, _ := cmd.Flags().GetString("append-file"); appendFile != "" {
		lines, err := readLinesFile(appendFile)
		if err != nil {
			return err
		}
		if err := db.AppendPartnerLines(name, lines); err != nil {
			return err
		}
		util.SuccessLog("Appended %d line(s) to %q", len(lines), name)
	}

	if toDelete, _ := cmd.Flags().GetStringSlice("delete"); len(toDelete) > 0 {
		if err := db.DeletePartnerLines(name, toDelete); err != nil {
			return err
		}
		util.SuccessLog("Deleted %d line(s) from %q", len(toDelete), name)
	}

	partner, err := db.GetPartnerByName(name)
	if err != nil {
		return err
	}
	if partner == nil {
		util.WarnLog("Partner %q not found", name)
		return nil
	}

	lines, err := db.GetPartnerLines(partner.ID)
	if err != nil {
		return err
	}
	for _, ln := range lines {
		fmt.Println(ln)
	}
	return nil
}

// readLinesFile reads a plain-text line file, storage-normalizing
// entries and dropping empties.
func readLinesFile(path string) ([]string, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lines file: %w", err)
	}
	lines := normalize.SplitLines(string(blob))
	if len(lines) == 0 {
		return nil, fmt.Errorf("no usable lines in %s", path)
	}
	return lines, nil
}
