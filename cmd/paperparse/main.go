package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/scholarmcp/paperparse/internal/docparse"
	"github.com/scholarmcp/paperparse/internal/parser"
	"github.com/spf13/cobra"
)

var version = "1.0.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "paperparse",
		Short: "Heuristic scholarly document parser",
		Long: `Paperparse extracts structure from scholarly documents:
title, abstract, heading-delimited sections, and bibliography
references with DOIs and publication years.

Supported formats: PDF, DOCX, Markdown, HTML, TXT.`,
		Version: version,
	}

	rootCmd.AddCommand(parseCmd())
	rootCmd.AddCommand(sectionsCmd())
	rootCmd.AddCommand(refsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// parseFile runs extraction and the heuristic core over one document.
func parseFile(path string) (*docparse.Result, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("file not found: %s", path)
	}

	p, err := parser.ForFile(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	pages, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to extract text: %w", err)
	}

	return docparse.Parse(pages, docparse.DefaultConfig())
}

func printJSON(v any, pretty bool) error {
	enc := json.NewEncoder(os.Stdout)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func parseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a document and print the full result as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pretty, _ := cmd.Flags().GetBool("pretty")
			res, err := parseFile(args[0])
			if err != nil {
				return err
			}
			return printJSON(res, pretty)
		},
	}
	cmd.Flags().Bool("pretty", false, "Indent JSON output")
	return cmd
}

func sectionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sections <file>",
		Short: "List the heading-delimited sections of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pretty, _ := cmd.Flags().GetBool("pretty")
			res, err := parseFile(args[0])
			if err != nil {
				return err
			}
			return printJSON(res.Sections, pretty)
		},
	}
	cmd.Flags().Bool("pretty", false, "Indent JSON output")
	return cmd
}

func refsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refs <file>",
		Short: "List the bibliography references of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pretty, _ := cmd.Flags().GetBool("pretty")
			res, err := parseFile(args[0])
			if err != nil {
				return err
			}
			return printJSON(res.References, pretty)
		},
	}
	cmd.Flags().Bool("pretty", false, "Indent JSON output")
	return cmd
}
