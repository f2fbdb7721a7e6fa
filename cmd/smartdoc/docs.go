package main

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"smartdoc/internal/api"
	"smartdoc/internal/convert"
	"smartdoc/internal/model"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Manage documents",
}

var docsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your documents",
	Args:  cobra.NoArgs,
	RunE:  runDocsList,
}

var docsUploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocsUpload,
}

var docsRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocsRm,
}

var docsShareCmd = &cobra.Command{
	Use:   "share <id>",
	Short: "Share a document with another user",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocsShare,
}

var (
	docsPage        int
	docsLimit       int
	docsSearch      string
	docsType        string
	docsFolder      string
	sharePermission string
	shareRecipient  string
)

func init() {
	docsListCmd.Flags().IntVar(&docsPage, "page", 1, "Page number")
	docsListCmd.Flags().IntVar(&docsLimit, "limit", 10, "Page size")
	docsListCmd.Flags().StringVar(&docsSearch, "search", "", "Filter by name")
	docsListCmd.Flags().StringVar(&docsType, "type", "", "Filter by file type")

	docsUploadCmd.Flags().StringVar(&docsFolder, "folder", "", "Target folder")

	docsShareCmd.Flags().StringVar(&shareRecipient, "with", "", "Recipient email (required)")
	docsShareCmd.Flags().StringVar(&sharePermission, "permission", "read", "Permission: read, write or admin")
	_ = docsShareCmd.MarkFlagRequired("with")

	docsCmd.AddCommand(docsListCmd, docsUploadCmd, docsRmCmd, docsShareCmd)
	rootCmd.AddCommand(docsCmd)
}

func runDocsList(cmd *cobra.Command, _ []string) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}
	resp := client.ListDocuments(cmd.Context(), api.ListParams{
		Page:       docsPage,
		Limit:      docsLimit,
		Search:     docsSearch,
		TypeFilter: docsType,
	})
	if !resp.Success {
		return fmt.Errorf("%s", resp.Error)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tSIZE\tUPLOADED\tOWNER")
	for _, doc := range resp.Data.Documents {
		owner := "shared"
		if doc.IsOwner {
			owner = "you"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			doc.ID, doc.Name, doc.Type,
			convert.FormatFileSize(doc.Size),
			convert.FormatDateSafe(doc.UploadDate),
			owner)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("Page %d/%d, %d documents total\n", resp.Data.Page, resp.Data.Pages, resp.Data.Total)
	return nil
}

func runDocsUpload(cmd *cobra.Command, args []string) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	var metadata map[string]any
	if docsFolder != "" {
		metadata = map[string]any{"folder": docsFolder}
	}
	return respond(client.UploadDocument(cmd.Context(), filepath.Base(args[0]), f, metadata))
}

func runDocsRm(cmd *cobra.Command, args []string) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}
	resp := client.DeleteDocument(cmd.Context(), args[0])
	if !resp.Success {
		return fmt.Errorf("%s", resp.Error)
	}
	fmt.Println(serverMessage(resp, "Document deleted"))
	return nil
}

func runDocsShare(cmd *cobra.Command, args []string) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}
	resp := client.ShareDocument(cmd.Context(), args[0], model.SharePayload{
		UserEmail:  shareRecipient,
		Permission: sharePermission,
	})
	if !resp.Success {
		return fmt.Errorf("%s", resp.Error)
	}
	fmt.Println(serverMessage(resp, "Document shared"))
	return nil
}
