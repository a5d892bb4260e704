/*-------------------------------------------------------------------------
 *
 * approvals.go
 *    Approval queue commands for codescore-cli
 *
 * Copyright (c) 2024-2026, Arjun Kumbakkara <outsource.arjun@gmail.com>
 *
 * IDENTIFICATION
 *    codeScore/cli/cmd/approvals.go
 *
 *-------------------------------------------------------------------------
 */

package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arjunKumbakkara/codeScore/cli/pkg/client"
)

var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List pending access requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.NewClient(apiURL, adminKey)
		pending, err := c.ListPending()
		if err != nil {
			return err
		}

		if outputFormat == "json" {
			return json.NewEncoder(os.Stdout).Encode(pending)
		}

		if len(pending) == 0 {
			fmt.Println("No pending requests.")
			return nil
		}

		fmt.Printf("%-38s %-32s %-20s %s\n", "ID", "EMAIL", "REQUESTED", "REASON")
		for _, p := range pending {
			reason := p.Reason
			if len(reason) > 40 {
				reason = reason[:37] + "..."
			}
			fmt.Printf("%-38s %-32s %-20s %s\n", p.ID, p.Email, p.CreatedAt, reason)
		}
		return nil
	},
}

var decideCmd = &cobra.Command{
	Use:   "decide <token> <approve|deny>",
	Short: "Approve or deny an access request by its decision token",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		token, action := args[0], args[1]
		if action != "approve" && action != "deny" {
			return fmt.Errorf("action must be approve or deny, got %q", action)
		}

		c := client.NewClient(apiURL, adminKey)
		result, err := c.Decide(token, action)
		if err != nil {
			return err
		}

		if outputFormat == "json" {
			return json.NewEncoder(os.Stdout).Encode(result)
		}

		fmt.Println(result.Message)
		return nil
	},
}
