package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"smartdoc/internal/convert"
	"smartdoc/internal/model"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search across your documents",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

var suggestCmd = &cobra.Command{
	Use:   "suggest <prefix>",
	Short: "Suggest document names for a prefix",
	Args:  cobra.ExactArgs(1),
	RunE:  runSuggest,
}

var (
	searchPage  int
	searchLimit int
)

func init() {
	searchCmd.Flags().IntVar(&searchPage, "page", 1, "Page number")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 10, "Page size")

	rootCmd.AddCommand(searchCmd, suggestCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}
	resp := client.Search(cmd.Context(), model.SearchRequest{
		Query: strings.Join(args, " "),
		Page:  searchPage,
		Limit: searchLimit,
	})
	if !resp.Success {
		return fmt.Errorf("%s", resp.Error)
	}

	for _, hit := range resp.Data.Results {
		fmt.Printf("%s  %s (%s, %s)\n    %s\n",
			hit.ID, hit.Title, hit.Type, convert.FormatDateSafe(hit.Date), hit.Content)
	}
	fmt.Printf("%d results in %.3fs\n", resp.Data.Total, resp.Data.Took)
	return nil
}

func runSuggest(cmd *cobra.Command, args []string) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}
	resp := client.Suggestions(cmd.Context(), args[0])
	if !resp.Success {
		return fmt.Errorf("%s", resp.Error)
	}
	for _, name := range *resp.Data {
		fmt.Println(name)
	}
	return nil
}
