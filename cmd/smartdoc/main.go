// Package main provides the SmartDoc command line client.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "smartdoc",
	Short: "SmartDoc command line client",
	Long:  "smartdoc talks to a SmartDoc document management server: upload and search documents, run OCR, ask questions about document content and generate reports.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
