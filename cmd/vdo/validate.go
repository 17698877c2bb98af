package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/viplavganguli77/vdo-validator/internal/adstxt"
	"github.com/viplavganguli77/vdo-validator/internal/normalize"
	"github.com/viplavganguli77/vdo-validator/internal/reconcile"
	"github.com/viplavganguli77/vdo-validator/internal/report"
	"github.com/viplavganguli77/vdo-validator/internal/util"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Fetch live ads.txt files and diff them against the catalog",
	Long: `Fetch the live ads.txt file of each target domain and reconcile it
against the expected lines of the selected demand partners, or
against the master catalog when no partner selection applies.

Domains not yet in the catalog are added with an empty account
manager when referenced. Fetch failures count as zero live lines for
that domain and never abort the run.

Examples:
  # Every stored domain against every partner
  vdo validate

  # Specific domains against Prebid partners only
  vdo validate --domains example.com,other.org --integration prebid

  # Pasted domain list, CSV to a file
  vdo validate --domains-file domains.txt --output csv --out summary.csv`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringSlice("domains", nil, "target domains (comma separated)")
	validateCmd.Flags().String("domains-file", "", "file with domains, one per line or comma separated")
	validateCmd.Flags().StringSlice("partners", nil, "demand partners to check (default: all)")
	validateCmd.Flags().String("integration", "", "filter partners by integration type (prebid, vast, other)")
	validateCmd.Flags().String("account-manager", "", "only include domains owned by this account manager")
	validateCmd.Flags().StringP("output", "o", "human", "output format: human, csv, xlsx")
	validateCmd.Flags().String("out", "", "write output to this file instead of stdout (required for xlsx)")
	validateCmd.Flags().Int("concurrency", 8, "parallel ads.txt fetches")
	validateCmd.Flags().Duration("timeout", adstxt.DefaultTimeout, "per-domain fetch timeout")

	viper.BindPFlag("concurrency", validateCmd.Flags().Lookup("concurrency"))
	viper.BindPFlag("timeout", validateCmd.Flags().Lookup("timeout"))
}

func runValidate(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	engine := reconcile.New(db)

	// Resolve the target domain set: explicit flags plus an optional
	// pasted file, falling back to every stored domain.
	domains, _ := cmd.Flags().GetStringSlice("domains")
	if domainsFile, _ := cmd.Flags().GetString("domains-file"); domainsFile != "" {
		blob, err := os.ReadFile(domainsFile)
		if err != nil {
			return fmt.Errorf("failed to read domains file: %w", err)
		}
		domains = append(domains, normalize.SplitDomains(string(blob))...)
	}

	manager, _ := cmd.Flags().GetString("account-manager")
	targets, err := engine.ResolveTargets(domains, manager)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		util.WarnLog("No domains match the selection/filters")
		return nil
	}

	partners, _ := cmd.Flags().GetStringSlice("partners")
	integration, _ := cmd.Flags().GetString("integration")
	selection := reconcile.Selection{
		Partners:        partners,
		IntegrationType: integration,
	}

	concurrency := viper.GetInt("concurrency")
	timeout := viper.GetDuration("timeout")

	util.InfoLog("Fetching ads.txt for %d domain(s), concurrency %d", len(targets), concurrency)
	client := adstxt.NewClient(timeout)
	live := adstxt.FetchAll(context.Background(), client, targets, concurrency)

	rows, err := engine.Run(targets, selection, live)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		util.WarnLog("No ads.txt lines found for the current selection")
		return nil
	}

	return writeSummary(cmd, report.NewSummary(rows))
}

func writeSummary(cmd *cobra.Command, summary *report.Summary) error {
	format, _ := cmd.Flags().GetString("output")
	outPath, _ := cmd.Flags().GetString("out")

	switch format {
	case "xlsx":
		if outPath == "" {
			return fmt.Errorf("xlsx output requires --out")
		}
		if err := summary.WriteExcel(outPath); err != nil {
			return err
		}
		util.SuccessLog("Wrote %d result row(s) to %s", len(summary.Rows), outPath)
		return nil

	case "csv":
		out := os.Stdout
		if outPath != "" {
			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", outPath, err)
			}
			defer f.Close()
			out = f
		}
		return summary.WriteCSV(out)

	case "human":
		return summary.WriteTable(os.Stdout)

	default:
		return fmt.Errorf("unknown output format %q (want human, csv, or xlsx)", format)
	}
}
