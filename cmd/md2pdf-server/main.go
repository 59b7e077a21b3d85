package main

import (
	"fmt"
	"os"
	"strings"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(runMain(os.Args[1:], DefaultEnv()))
}

// runMain dispatches to a command and returns the process exit code.
// Without a command, or when the first argument is a flag, it serves.
func runMain(args []string, env *Environment) int {
	if len(args) == 0 || (strings.HasPrefix(args[0], "-") && !isHelpFlag(args[0])) {
		return runServeCmd(args, env)
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "serve":
		return runServeCmd(rest, env)
	case "doctor":
		return runDoctorCmd(rest, env)
	case "config":
		return runConfigCmd(rest, env)
	case "version":
		fmt.Fprintf(env.Stdout, "md2pdf-server %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		return runHelp(rest, env)
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}
}

func isHelpFlag(s string) bool {
	return s == "-h" || s == "--help"
}
