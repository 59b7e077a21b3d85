package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2pdf-server [command] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  serve      Run the HTTP service (default)")
	fmt.Fprintln(w, "  doctor     Check that the rendering engine works here")
	fmt.Fprintln(w, "  config     Print the effective configuration")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2pdf-server help <command>' for details on a specific command.")
}

func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2pdf-server serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serve POST /api/generate-pdf and GET /health.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -a, --addr <addr>         Listen address (default \":3001\")")
	fmt.Fprintln(w, "      --max-concurrent <n>  Max simultaneous browsers (0 = unbounded)")
	printCommonFlags(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MD2PDF_CONFIG, MD2PDF_ADDR, MD2PDF_LOG_LEVEL, MD2PDF_MAX_CONCURRENT, ROD_BROWSER_BIN")
}

func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2pdf-server doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Launch the browser, render a test page to PDF and report each step.")
	fmt.Fprintln(w, "Exits 4 when the rendering engine is not usable.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json                Machine-readable output")
	printCommonFlags(w)
}

func printCommonFlags(w io.Writer) {
	fmt.Fprintln(w, "  -c, --config <path>       YAML config file")
	fmt.Fprintln(w, "      --browser-bin <path>  Chrome/Chromium executable")
	fmt.Fprintln(w, "  -v, --verbose             Debug logging")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "serve":
		printServeUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "config":
		fmt.Fprintln(env.Stdout, "Usage: md2pdf-server config [--config <path>]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Print the configuration after applying file, environment and flags.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: md2pdf-server version")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
