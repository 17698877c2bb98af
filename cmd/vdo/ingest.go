package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/viplavganguli77/vdo-validator/internal/ingest"
	"github.com/viplavganguli77/vdo-validator/internal/util"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Import the coverage workbook into the catalog database",
	Long: `Import the authoritative multi-sheet coverage workbook into the
local SQLite catalog. The first sheet holds domains, account managers
and master ads.txt lines; the last sheet is the account manager
roster and is ignored; every sheet in between is one demand partner.

The import runs at most once per database: when the catalog already
holds domains the command is a no-op. Later edits to the workbook are
never re-synced; manage the catalog with the domains, partners and
master commands instead.`,
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().StringP("catalog", "c", "", "path to the coverage workbook (.xlsx)")
	viper.BindPFlag("catalog", ingestCmd.Flags().Lookup("catalog"))
}

func runIngest(cmd *cobra.Command, args []string) error {
	catalog := viper.GetString("catalog")
	if catalog == "" {
		return fmt.Errorf("catalog workbook is required (use --catalog or set in config)")
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	result, err := ingest.New(db).Run(catalog)
	if err != nil {
		return err
	}

	if result.AlreadyImported {
		util.InfoLog("Nothing to do")
	}
	return nil
}
