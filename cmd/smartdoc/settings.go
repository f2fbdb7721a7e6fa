package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"smartdoc/internal/model"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "View and change system settings",
}

var settingsGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show system settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update system settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsSet,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show dashboard statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the server is reachable",
	Args:  cobra.NoArgs,
	RunE:  runHealth,
}

var (
	settingsAIModel    string
	settingsOCREngine  string
	settingsAutoBackup bool
	settingsFrequency  string
)

func init() {
	settingsSetCmd.Flags().StringVar(&settingsAIModel, "ai-model", "", "Default answering model")
	settingsSetCmd.Flags().StringVar(&settingsOCREngine, "ocr-engine", "", "Default OCR engine")
	settingsSetCmd.Flags().BoolVar(&settingsAutoBackup, "auto-backup", false, "Enable automatic backups")
	settingsSetCmd.Flags().StringVar(&settingsFrequency, "backup-frequency", "", "Backup frequency: daily, weekly or monthly")

	settingsCmd.AddCommand(settingsGetCmd, settingsSetCmd)
	rootCmd.AddCommand(settingsCmd, statsCmd, healthCmd)
}

func runSettingsGet(cmd *cobra.Command, _ []string) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}
	return respond(client.Settings(cmd.Context()))
}

func runSettingsSet(cmd *cobra.Command, _ []string) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}
	update := model.SettingsUpdate{
		DefaultAIModel:   settingsAIModel,
		DefaultOCREngine: settingsOCREngine,
		BackupFrequency:  settingsFrequency,
	}
	if cmd.Flags().Changed("auto-backup") {
		update.AutoBackup = &settingsAutoBackup
	}
	resp := client.UpdateSettings(cmd.Context(), update)
	if !resp.Success {
		return fmt.Errorf("%s", resp.Error)
	}
	fmt.Println(serverMessage(resp, "Settings updated"))
	return nil
}

func runStats(cmd *cobra.Command, _ []string) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}
	return respond(client.DashboardStats(cmd.Context()))
}

func runHealth(cmd *cobra.Command, _ []string) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}
	return respond(client.Health(cmd.Context()))
}
