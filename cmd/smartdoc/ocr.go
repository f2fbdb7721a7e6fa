package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"smartdoc/internal/model"
)

var ocrCmd = &cobra.Command{
	Use:   "ocr",
	Short: "Digitize documents and manage OCR results",
}

var ocrRunCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Upload a file and extract its text",
	Args:  cobra.ExactArgs(1),
	RunE:  runOCRRun,
}

var ocrResultsCmd = &cobra.Command{
	Use:   "results",
	Short: "List your OCR results",
	Args:  cobra.NoArgs,
	RunE:  runOCRResults,
}

var ocrShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one OCR result",
	Args:  cobra.ExactArgs(1),
	RunE:  runOCRShow,
}

var ocrEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Correct the extracted text of a result",
	Args:  cobra.ExactArgs(1),
	RunE:  runOCREdit,
}

var (
	ocrEditText       string
	ocrEditConfidence float64
)

func init() {
	ocrEditCmd.Flags().StringVar(&ocrEditText, "text", "", "Replacement extracted text (required)")
	ocrEditCmd.Flags().Float64Var(&ocrEditConfidence, "confidence", 0, "Corrected confidence score")
	_ = ocrEditCmd.MarkFlagRequired("text")

	ocrCmd.AddCommand(ocrRunCmd, ocrResultsCmd, ocrShowCmd, ocrEditCmd)
	rootCmd.AddCommand(ocrCmd)
}

func runOCRRun(cmd *cobra.Command, args []string) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	resp := client.ProcessOCR(cmd.Context(), filepath.Base(args[0]), f)
	if !resp.Success {
		return fmt.Errorf("%s", resp.Error)
	}
	fmt.Printf("Result %s (confidence %.1f%%)\n\n%s\n", resp.Data.ID, resp.Data.Confidence, resp.Data.ExtractedText)
	return nil
}

func runOCRResults(cmd *cobra.Command, _ []string) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}
	return respond(client.OCRResults(cmd.Context()))
}

func runOCRShow(cmd *cobra.Command, args []string) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}
	return respond(client.OCRResult(cmd.Context(), args[0]))
}

func runOCREdit(cmd *cobra.Command, args []string) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}
	return respond(client.UpdateOCRResult(cmd.Context(), args[0], model.OCRUpdate{
		ExtractedText: ocrEditText,
		Confidence:    ocrEditConfidence,
	}))
}
