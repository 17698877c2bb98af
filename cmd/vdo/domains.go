package main

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/viplavganguli77/vdo-validator/internal/util"
)

var domainsCmd = &cobra.Command{
	Use:   "domains",
	Short: "Manage publisher domains",
}

var domainsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored domains and their account managers",
	RunE:  runDomainsList,
}

var domainsAddCmd = &cobra.Command{
	Use:   "add <domain>",
	Short: "Add a domain or update its account manager",
	Args:  cobra.ExactArgs(1),
	RunE:  runDomainsAdd,
}

func init() {
	rootCmd.AddCommand(domainsCmd)
	domainsCmd.AddCommand(domainsListCmd)
	domainsCmd.AddCommand(domainsAddCmd)

	domainsAddCmd.Flags().String("account-manager", "", "account manager for the domain")
}

func runDomainsList(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	domains, err := db.GetDomains()
	if err != nil {
		return err
	}
	if len(domains) == 0 {
		util.InfoLog("No domains in the catalog")
		return nil
	}

	table := tablewriter.NewTable(os.Stdout)
	table.Header("Domain", "Account Manager")
	for _, d := range domains {
		if err := table.Append(d.Key, d.AccountManager); err != nil {
			return fmt.Errorf("failed to append row: %w", err)
		}
	}
	return table.Render()
}

func runDomainsAdd(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	manager, _ := cmd.Flags().GetString("account-manager")
	if err := db.UpsertDomain(args[0], manager); err != nil {
		return err
	}

	util.SuccessLog("Domain %q saved", args[0])
	return nil
}
