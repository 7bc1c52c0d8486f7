package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "gdiagram",
	Short: "Mermaid diagram parser",
	Long:  "gDiagram parses Mermaid flowchart and class-diagram sources into structured models for layout and rendering tooling.",
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	viper.SetEnvPrefix("GDIAGRAM")
	viper.AutomaticEnv()
}
