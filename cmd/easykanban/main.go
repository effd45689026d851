package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "easykanban",
	Short: "Easy Kanban project-management API",
	Long:  "Easy Kanban serves a JSON API for users, boards, cards, tasks and comments, with bearer-token authentication and per-resource ownership checks.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: configs/easykanban.yaml)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
