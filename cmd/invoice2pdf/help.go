package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: invoice2pdf [command] [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  serve      Run the HTTP invoice service (default)")
	fmt.Fprintln(w, "  render     Convert one invoice file to PDF")
	fmt.Fprintln(w, "  doctor     Check the conversion toolchain")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'invoice2pdf help <command>' for details on a specific command.")
}

// printConverterFlags prints the engine flags shared by serve and render.
func printConverterFlags(w io.Writer) {
	fmt.Fprintln(w, "Converter:")
	fmt.Fprintln(w, "  -e, --engine <s>          PDF engine: html2pdf, chrome, native")
	fmt.Fprintln(w, "      --binary <path>       html2pdf executable (default html2pdf)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Conversion timeout (default 30s)")
	fmt.Fprintln(w, "      --work-dir <dir>      Directory for transient files")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed output")
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: invoice2pdf serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serve POST /create_invoice: JSON invoice in, PDF out.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Server:")
	fmt.Fprintln(w, "  -a, --addr <host:port>    Listen address (default 0.0.0.0:3000)")
	fmt.Fprintln(w, "  -w, --workers <n>         Concurrent conversions (0 = auto)")
	fmt.Fprintln(w, "      --log-level <s>       debug, info, warn, error")
	fmt.Fprintln(w, "      --log-format <s>      text, json")
	fmt.Fprintln(w)
	printConverterFlags(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  INVOICE2PDF_CONFIG, INVOICE2PDF_ADDR, INVOICE2PDF_ENGINE,")
	fmt.Fprintln(w, "  INVOICE2PDF_BINARY, INVOICE2PDF_TIMEOUT, INVOICE2PDF_WORKERS,")
	fmt.Fprintln(w, "  INVOICE2PDF_WORK_DIR, INVOICE2PDF_LOG_LEVEL, INVOICE2PDF_LOG_FORMAT")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: invoice2pdf render <invoice.json|invoice.yaml> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert one invoice file to PDF.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file, \"-\" for stdout (default: input with .pdf)")
	fmt.Fprintln(w, "      --html                Write the HTML page instead of the PDF")
	fmt.Fprintln(w)
	printConverterFlags(w)
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: invoice2pdf doctor [--json] [--binary <path>]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check html2pdf, Chrome and the temp directory.")
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
	case "render":
		printRenderUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: invoice2pdf version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: invoice2pdf help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
