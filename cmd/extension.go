package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// RunExtension attempts to find and execute an external spt-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found or executed.
//
// The resolved configuration is passed to the extension as SPT_*
// environment variables.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := "spt-" + subcommand

	// Look for the external command in PATH
	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		return false, 0
	}

	cfg, err := ResolveConfig()
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return true, 1
	}
	log := newLogger(stderr, cfg.Verbose)
	log.Debug().Str("path", lp).Strs("args", args).Msg("running extension")

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.Env = append(os.Environ(), cfg.Env()...)

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		// If it's not an ExitError or we can't get the status, report a generic error
		fmt.Fprintf(stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}
	return true, 0
}
