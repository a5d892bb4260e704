/*-------------------------------------------------------------------------
 *
 * root.go
 *    Root command and global flags for codescore-cli
 *
 * Copyright (c) 2024-2026, Arjun Kumbakkara <outsource.arjun@gmail.com>
 *
 * IDENTIFICATION
 *    codeScore/cli/cmd/root.go
 *
 *-------------------------------------------------------------------------
 */

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	apiURL       string
	adminKey     string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "codescore-cli",
	Short: "CodeScore CLI - Manage access requests from the terminal",
	Long: `CodeScore CLI lets an administrator work the signup approval queue
without leaving the terminal.

Examples:
  # List pending access requests
  codescore-cli pending

  # Approve a request by its decision token
  codescore-cli decide <token> approve

  # Deny a request
  codescore-cli decide <token> deny
`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "url", getEnvOrDefault("CODESCORE_URL", "http://localhost:8080"), "CodeScore API URL")
	rootCmd.PersistentFlags().StringVar(&adminKey, "key", getEnvOrDefault("CODESCORE_ADMIN_API_KEY", ""), "Admin API key (required)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "text", "Output format (text, json)")

	rootCmd.AddCommand(pendingCmd)
	rootCmd.AddCommand(decideCmd)
	rootCmd.AddCommand(sweepCmd)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
