package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/viplavganguli77/vdo-validator/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show catalog counts: domains, partners, master lines",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	domains, err := db.CountDomains()
	if err != nil {
		return err
	}
	partners, err := db.GetPartners()
	if err != nil {
		return err
	}
	master, err := db.GetMasterLines()
	if err != nil {
		return err
	}

	prebid, vast := 0, 0
	for _, p := range partners {
		switch {
		case strings.EqualFold(p.IntegrationType, store.IntegrationPrebid):
			prebid++
		case strings.EqualFold(p.IntegrationType, store.IntegrationVAST):
			vast++
		}
	}

	fmt.Printf("Domains:          %d\n", domains)
	fmt.Printf("Demand partners:  %d\n", len(partners))
	fmt.Printf("Master lines:     %d\n", len(master))
	fmt.Printf("Prebid partners:  %d\n", prebid)
	fmt.Printf("VAST partners:    %d\n", vast)
	return nil
}
