package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/viplavganguli77/vdo-validator/internal/util"
)

var masterCmd = &cobra.Command{
	Use:   "master",
	Short: "Manage the master canonical line set",
}

var masterShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the master lines, one per line",
	RunE:  runMasterShow,
}

var masterReplaceCmd = &cobra.Command{
	Use:   "replace",
	Short: "Replace the master line set from a file",
	RunE:  runMasterReplace,
}

func init() {
	rootCmd.AddCommand(masterCmd)
	masterCmd.AddCommand(masterShowCmd)
	masterCmd.AddCommand(masterReplaceCmd)

	masterReplaceCmd.Flags().String("file", "", "file with the new master lines")
	masterReplaceCmd.MarkFlagRequired("file")
}

func runMasterShow(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	lines, err := db.GetMasterLines()
	if err != nil {
		return err
	}
	for _, ln := range lines {
		fmt.Println(ln)
	}
	return nil
}

func runMasterReplace(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	path, _ := cmd.Flags().GetString("file")
	lines, err := readLinesFile(path)
	if err != nil {
		return err
	}

	if err := db.ReplaceMasterLines(lines); err != nil {
		return err
	}
	util.SuccessLog("Master set replaced with %d line(s)", len(lines))
	return nil
}
