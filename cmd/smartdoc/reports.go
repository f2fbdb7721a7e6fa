package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"smartdoc/internal/model"
)

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Generate and fetch reports",
}

var reportsGenerateCmd = &cobra.Command{
	Use:   "generate <title>",
	Short: "Generate a new report",
	Args:  cobra.ExactArgs(1),
	RunE:  runReportsGenerate,
}

var reportsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your reports",
	Args:  cobra.NoArgs,
	RunE:  runReportsList,
}

var reportsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one report",
	Args:  cobra.ExactArgs(1),
	RunE:  runReportsGet,
}

var reportsDownloadCmd = &cobra.Command{
	Use:   "download <id>",
	Short: "Download a report artifact",
	Args:  cobra.ExactArgs(1),
	RunE:  runReportsDownload,
}

var (
	reportType        string
	reportDescription string
	reportOutput      string
)

func init() {
	reportsGenerateCmd.Flags().StringVar(&reportType, "type", "summary", "Report type")
	reportsGenerateCmd.Flags().StringVar(&reportDescription, "description", "", "Report description")

	reportsDownloadCmd.Flags().StringVarP(&reportOutput, "out", "o", "", "Write to file instead of stdout")

	reportsCmd.AddCommand(reportsGenerateCmd, reportsListCmd, reportsGetCmd, reportsDownloadCmd)
	rootCmd.AddCommand(reportsCmd)
}

func runReportsGenerate(cmd *cobra.Command, args []string) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}
	return respond(client.GenerateReport(cmd.Context(), model.ReportRequest{
		Title:       args[0],
		Description: reportDescription,
		Type:        reportType,
		Config:      map[string]any{},
	}))
}

func runReportsList(cmd *cobra.Command, _ []string) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}
	return respond(client.Reports(cmd.Context()))
}

func runReportsGet(cmd *cobra.Command, args []string) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}
	return respond(client.Report(cmd.Context(), args[0]))
}

func runReportsDownload(cmd *cobra.Command, args []string) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}
	resp := client.DownloadReport(cmd.Context(), args[0])
	if !resp.Success {
		return fmt.Errorf("%s", resp.Error)
	}

	content := *resp.Data
	if reportOutput == "" {
		_, err := os.Stdout.Write(content)
		return err
	}
	if err := os.WriteFile(reportOutput, content, 0o644); err != nil {
		return err
	}
	fmt.Printf("Wrote %d bytes to %s\n", len(content), reportOutput)
	return nil
}
