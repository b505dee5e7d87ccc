package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-reader/internal/convert"
	"github.com/pdiddy/arxiv-reader/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [file.html]",
	Short: "Convert a saved LaTeXML HTML page to Markdown",
	Long: `Convert reads a paper's HTML from a local file, or stdin when the argument
is "-" or omitted, and prints its Markdown at the requested level. No network
requests are made; use --base-url to resolve page-relative image paths.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("level", "body", "detail level: abstract, body, appendix, or all")
	convertCmd.Flags().String("base-url", "", "URL the page was served from")
	convertCmd.Flags().Bool("outline", false, "print the heading outline instead of the Markdown")
	convertCmd.Flags().Bool("generic-fallback", false, "convert pages that are not LaTeXML output with a generic converter")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	levelFlag, _ := cmd.Flags().GetString("level")
	level, err := types.ParseDetailLevel(levelFlag)
	if err != nil {
		return err
	}

	in := io.Reader(os.Stdin)
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("reading HTML: %w", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	opts := convert.OptionsFromConfig(cfg)
	opts.BaseURL, _ = cmd.Flags().GetString("base-url")
	if cmd.Flags().Changed("generic-fallback") {
		opts.GenericFallback, _ = cmd.Flags().GetBool("generic-fallback")
	}

	md, err := convert.Convert(string(data), level, opts)
	if err != nil {
		return err
	}

	if outline, _ := cmd.Flags().GetBool("outline"); outline {
		convert.WriteOutline(os.Stdout, convert.Outline(md))
		return nil
	}
	_, err = io.WriteString(os.Stdout, md)
	return err
}
