/*-------------------------------------------------------------------------
 *
 * main.go
 *    Main entry point for codescore-cli
 *
 * Copyright (c) 2024-2026, Arjun Kumbakkara <outsource.arjun@gmail.com>
 *
 * IDENTIFICATION
 *    codeScore/cli/main.go
 *
 *-------------------------------------------------------------------------
 */

package main

import (
	"github.com/arjunKumbakkara/codeScore/cli/cmd"
)

func main() {
	cmd.Execute()
}
