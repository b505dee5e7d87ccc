// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the arxiv-reader CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	_ "go.uber.org/automaxprocs"

	"github.com/pdiddy/arxiv-reader/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the arxiv-reader CLI.
var rootCmd = &cobra.Command{
	Use:   "arxiv-reader",
	Short: "Read arXiv papers as Markdown",
	Long: `arxiv-reader fetches the HTML rendering of arXiv papers and converts it to
Markdown at a chosen level of detail: abstract, body, appendix, or all.

The read command prints papers to stdout, search queries the arXiv API, and
serve exposes both operations as tools over the Model Context Protocol.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./arxiv-reader.yaml or ~/.config/arxiv-reader/arxiv-reader.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("arxiv-reader")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "arxiv-reader"))
		}
	}

	setDefaults(types.DefaultConfig())

	viper.SetEnvPrefix("ARXIV_READER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setDefaults registers every configuration key so environment variables
// can override keys that appear in no config file.
func setDefaults(d types.Config) {
	viper.SetDefault("http.timeout", d.HTTP.Timeout)
	viper.SetDefault("http.user_agent", d.HTTP.UserAgent)
	viper.SetDefault("source.primary_base", d.Source.PrimaryBase)
	viper.SetDefault("source.secondary_base", d.Source.SecondaryBase)
	viper.SetDefault("source.image_host", d.Source.ImageHost)
	viper.SetDefault("source.max_bytes", d.Source.MaxBytes)
	viper.SetDefault("convert.generic_fallback", d.Convert.GenericFallback)
	viper.SetDefault("read.concurrency", d.Read.Concurrency)
	viper.SetDefault("search.api_base", d.Search.APIBase)
	viper.SetDefault("search.max_results", d.Search.MaxResults)
	viper.SetDefault("search.sort_by", d.Search.SortBy)
	viper.SetDefault("server.http_addr", d.Server.HTTPAddr)
}

// loadConfig decodes the merged flag, environment, file and default
// settings into a Config.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("loading configuration: %w", err)
	}
	cfg.Search.UserAgent = cfg.HTTP.UserAgent
	return cfg, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
