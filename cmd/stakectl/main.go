// Command stakectl inspects NFT staking accounts and builds unsigned staking
// transactions for external signing.
package main

import (
	"io"
	"os"
)

type ExitCode int

const (
	exitCodeSuccess ExitCode = 0
	exitCodeError   ExitCode = 1
)

func main() {
	os.Exit(int(run(os.Args[1:], os.Stdout, os.Stderr)))
}

func run(args []string, stdout, stderr io.Writer) ExitCode {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		return exitCodeError
	}
	return exitCodeSuccess
}
