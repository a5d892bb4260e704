/*-------------------------------------------------------------------------
 *
 * sweep.go
 *    Retention sweep command for codescore-cli
 *
 * Copyright (c) 2024-2026, Arjun Kumbakkara <outsource.arjun@gmail.com>
 *
 * IDENTIFICATION
 *    codeScore/cli/cmd/sweep.go
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

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Delete expired reviews now instead of waiting for the scheduled pass",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.NewClient(apiURL, adminKey)
		result, err := c.TriggerSweep()
		if err != nil {
			return err
		}

		if outputFormat == "json" {
			return json.NewEncoder(os.Stdout).Encode(result)
		}

		fmt.Printf("Removed %d expired review(s).\n", result.ReviewsDeleted)
		return nil
	},
}
