// Package cli implements the labctl commands.
package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/circuitlab/circuitlab/api/internal/client"
)

// Version is set at build time
var Version = "0.1.0"

const (
	outputJSON  = "json"
	outputTable = "table"
)

// options holds global flag values shared by every command
type options struct {
	host     string
	basePath string
	output   string
	verbose  bool

	client *client.Client
}

// NewRootCmd builds the labctl command tree
func NewRootCmd() *cobra.Command {
	o := &options{}

	rootCmd := &cobra.Command{
		Use:   "labctl",
		Short: "labctl - Circuit Lab API client",
		Long: `labctl manages the experiment catalogue, users and progress records
of a Circuit Lab API server.

Example:
  labctl experiments list
  labctl users create --name "Asha Rao" --email asha@example.edu --password secret
  labctl progress upsert --user-id 1 --experiment-id 3 --completed --score 92`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if o.output != outputJSON && o.output != outputTable {
				return fmt.Errorf("unknown output format %q (want json or table)", o.output)
			}
			o.client = client.New(client.Config{
				Host:     o.host,
				BasePath: o.basePath,
			})
			o.logVerbose(cmd, "using %s%s", o.host, o.basePath)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&o.host, "host", envOr("LABCTL_HOST", "http://localhost:8080"), "API host (or set LABCTL_HOST)")
	rootCmd.PersistentFlags().StringVar(&o.basePath, "base-path", "/api", "Path prefix of the resource routes")
	rootCmd.PersistentFlags().StringVarP(&o.output, "output", "o", outputTable, "Output format: json or table")
	rootCmd.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(newExperimentsCmd(o))
	rootCmd.AddCommand(newUsersCmd(o))
	rootCmd.AddCommand(newProgressCmd(o))

	return rootCmd
}

// Execute runs the CLI
func Execute() error {
	cmd := NewRootCmd()
	err := cmd.Execute()
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
	}
	return err
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// logVerbose logs a message if verbose mode is enabled
func (o *options) logVerbose(cmd *cobra.Command, format string, args ...any) {
	if o.verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "[labctl] "+format+"\n", args...)
	}
}

// parseExperimentArg parses a positional experiment id
func parseExperimentArg(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("experiment id must be an integer, got %q", arg)
	}
	return id, nil
}
