package cmd

import (
	"github.com/Lumos-Labs-HQ/synthgen/internal/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default " + config.FileName,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.InitializeProject(); err != nil {
			return err
		}
		color.Green("✅ Created %s", config.FileName)
		color.Cyan("💡 Edit counts and seed there, or override with SYNTHGEN_* environment variables")
		return nil
	},
}
