package main

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	configPath string
	jsonOutput bool
)

var (
	passStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
		Light: "#86b300",
		Dark:  "#c2d94c",
	})
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
		Light: "#f07171",
		Dark:  "#f07178",
	})
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
		Light: "#828c99",
		Dark:  "#6c7680",
	})
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
		Light: "#399ee6",
		Dark:  "#59c2ff",
	})
	boldStyle = lipgloss.NewStyle().Bold(true)
)

var rootCmd = &cobra.Command{
	Use:   "plantmatch",
	Short: "Match a manufacturing recipe's steps to capable resources",
	Long: `plantmatch matches the steps of an abstract manufacturing recipe to a set
of physical resources whose capabilities are declared as AAS-style capability
documents, producing one or more fully-assigned execution plans and,
optionally, ranking them by a weighted energy/use/CO2 cost model.

Examples:
  plantmatch run --recipe recipe.json --capabilities ./resources
  plantmatch run --recipe recipe.json --capabilities ./resources --find-all --costs ./costs
  plantmatch watch --recipe recipe.json --capabilities ./resources`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a plantmatch.yaml configuration file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output structured JSON instead of a styled table")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(watchCmd)
}
