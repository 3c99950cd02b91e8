package cmd

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"
	"syscall"
)

// Environment passed down to extension processes, mirroring the global
// flags.
const (
	EnvLedgerFile    = "FSIM_LEDGER_FILE"
	EnvMarketFile    = "FSIM_MARKET_FILE"
	EnvSnapshotsFile = "FSIM_SNAPSHOTS_FILE"
	EnvCurrency      = "FSIM_CURRENCY"
	EnvVerbose       = "FSIM_VERBOSE"
)

// RunExtension attempts to find and execute an external fsim-<subcommand>
// binary. It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := "fsim-" + subcommand

	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		if *Verbose {
			log.Printf("external command %q not found in PATH: %v", externalCmdName, err)
		}
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	// Pass the global flags as environment variables.
	cmd.Env = append(os.Environ(),
		EnvLedgerFile+"="+*ledgerFile,
		EnvMarketFile+"="+*marketFile,
		EnvSnapshotsFile+"="+*snapshotsFile,
		EnvCurrency+"="+*defaultCurrency,
		EnvVerbose+"="+strconv.FormatBool(*Verbose),
	)

	if err := cmd.Run(); err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			if status, ok := exitError.Sys().(syscall.WaitStatus); ok {
				return true, status.ExitStatus()
			}
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}

	return true, 0
}
