package cmd

import (
	"fmt"
	"io"

	"github.com/Lumos-Labs-HQ/synthgen/internal/config"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	quiet     bool
	configErr error
	Version   = "1.0.0"
)

func showBanner() {
	greenColor := color.New(color.FgGreen, color.Bold)

	banner := []string{
		"╔══════════════════════════════════════════════════════╗",
		"║   ███████╗██╗   ██╗███╗   ██╗████████╗██╗  ██╗       ║",
		"║   ██╔════╝╚██╗ ██╔╝████╗  ██║╚══██╔══╝██║  ██║       ║",
		"║   ███████╗ ╚████╔╝ ██╔██╗ ██║   ██║   ███████║       ║",
		"║   ╚════██║  ╚██╔╝  ██║╚██╗██║   ██║   ██╔══██║       ║",
		"║   ███████║   ██║   ██║ ╚████║   ██║   ██║  ██║       ║",
		"║   ╚══════╝   ╚═╝   ╚═╝  ╚═══╝   ╚═╝   ╚═╝  ╚═╝ gen   ║",
		"║                                                      ║",
		"║     Reproducible synthetic operations datasets       ║",
		"╚══════════════════════════════════════════════════════╝",
	}

	for _, line := range banner {
		greenColor.Fprintln(color.Output, line)
	}

	fmt.Fprint(color.Output, "                  ")
	color.New(color.FgCyan, color.Bold).Fprint(color.Output, "Version: ")
	color.New(color.FgYellow, color.Bold).Fprintf(color.Output, "%s\n", Version)
}

var rootCmd = &cobra.Command{
	Use:   "synthgen",
	Short: "Generate a deterministic, relationally consistent synthetic dataset",
	Long: `
synthgen produces the operational tables of a manufacturing and retail
business: products, recipes, customers, orders, shipments, returns, waste
and quality inspections. The same seed always yields the same files.

Output formats: csv (default), json, sqlite, xlsx`,
	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if quiet {
			color.Output = io.Discard
		}
	},

	Run: func(cmd *cobra.Command, args []string) {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Printf("synthgen version %s\n", Version)
			return
		}

		showBanner()
		fmt.Fprintln(color.Output)
		cmd.Help()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./"+config.FileName+")")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.Flags().BoolP("version", "v", false, "Show CLI version")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(initCmd)
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env")
		godotenv.Load(".env.local")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("json")
		viper.SetConfigName("synthgen.config")
	}

	if err := viper.ReadInConfig(); err != nil {
		// Only an explicitly requested file has to exist.
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound || cfgFile != "" {
			configErr = &config.ValidationError{Field: "config", Reason: err.Error()}
		}
	}
}

// loadConfig resolves file, env and defaults, then applies command flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if configErr != nil {
		return nil, configErr
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
