package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vfg2006/property-leads-api/internal/config"
	"github.com/vfg2006/property-leads-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	log.Setup(cfg.App.LogLevel)

	rootCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database schema tool for the property leads API",
	}

	rootCmd.AddCommand(
		upCmd(cfg),
		statusCmd(cfg),
		seedAdminCmd(cfg),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
