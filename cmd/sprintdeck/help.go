package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: sprintdeck [command] [flags] [outline...]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render     Render outlines to Beamer LaTeX (default)")
	fmt.Fprintln(w, "  handout    Render a speaker handout (md, html, pdf)")
	fmt.Fprintln(w, "  watch      Re-render a deck whenever its outline changes")
	fmt.Fprintln(w, "  doctor     Check LaTeX engines and Chrome")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'sprintdeck help <command>' for details on a specific command.")
}

func printTitleUsage(w io.Writer) {
	fmt.Fprintln(w, "Title slide:")
	fmt.Fprintln(w, "      --title <s>           Override the title")
	fmt.Fprintln(w, "      --author <s>          Override the author")
	fmt.Fprintln(w, "      --date <s>            Date: \"auto\", \"auto:FORMAT\", or literal")
	fmt.Fprintln(w, "                            Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D")
	fmt.Fprintln(w, "                            Presets (case-insensitive): iso, european, us, long")
	fmt.Fprintln(w, "      --logo <path>         Override the logo image path")
	fmt.Fprintln(w)
}

func printOutputControlUsage(w io.Writer) {
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show skipped sections and timings")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: sprintdeck render [outline...] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render sprint review outlines to Beamer LaTeX.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  outline    YAML outline files (default: outline.yaml)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file, or directory for several outlines")
	fmt.Fprintln(w, "                            One outline without -o is written to stdout")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel renders (0 = auto)")
	fmt.Fprintln(w, "      --strict              Fail on unknown section tags")
	fmt.Fprintln(w)
	printTitleUsage(w)
	printOutputControlUsage(w)
}

// printHandoutUsage prints usage for the handout command.
func printHandoutUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: sprintdeck handout [outline] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render a speaker handout for an outline.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (md/html default to stdout)")
	fmt.Fprintln(w, "  -f, --format <s>          Format: md, html, pdf (default pdf)")
	fmt.Fprintln(w, "  -t, --timeout <d>         PDF printing timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "      --strict              Fail on unknown section tags")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --style <name>        CSS style name (default handout)")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory holding styles/NAME.css")
	fmt.Fprintln(w, "      --include-source      Append the LaTeX source")
	fmt.Fprintln(w, "      --no-footer           Omit the generated-on footer")
	fmt.Fprintln(w)
	printTitleUsage(w)
	printOutputControlUsage(w)
}

// printWatchUsage prints usage for the watch command.
func printWatchUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: sprintdeck watch [outline] -o <file.tex> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render once, then re-render whenever the outline changes. Stop with Ctrl+C.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output .tex file (required)")
	fmt.Fprintln(w, "      --debounce <d>        Quiet period before re-rendering (default 300ms)")
	fmt.Fprintln(w, "      --strict              Fail on unknown section tags")
	fmt.Fprintln(w)
	printTitleUsage(w)
	printOutputControlUsage(w)
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: sprintdeck doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check for LaTeX engines, Chrome and a writable temp directory.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "      --json                Print results as JSON")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "handout":
		printHandoutUsage(env.Stdout)
	case "watch":
		printWatchUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: sprintdeck version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: sprintdeck help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
