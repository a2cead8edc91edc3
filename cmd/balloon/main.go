package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"balloon/interpreter-go/pkg/builtins"
	"balloon/interpreter-go/pkg/driver"
	"balloon/interpreter-go/pkg/interpreter"
	"balloon/interpreter-go/pkg/runtime"
	"balloon/interpreter-go/pkg/typechecker"
)

const cliVersion = "balloon 0.1.0-dev"

var (
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	resultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stderr)
		return 1
	}
	switch args[0] {
	case "--help", "-h", "help":
		printUsage(stdout)
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(stdout, cliVersion)
		return 0
	case "run":
		return runProgram(args[1:], stdout, stderr, true)
	case "check":
		return runProgram(args[1:], stdout, stderr, false)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", args[0])
		printUsage(stderr)
		return 1
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: balloon run [--no-check] [PROGRAM]")
	fmt.Fprintln(w, "       balloon check [PROGRAM]")
	fmt.Fprintln(w, "       balloon version")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "PROGRAM is a parsed program (JSON tree) or a balloon.yml manifest;")
	fmt.Fprintln(w, "with no argument, balloon.yml in the current directory is used.")
}

func runProgram(args []string, stdout, stderr io.Writer, execute bool) int {
	check := true
	var paths []string
	for _, arg := range args {
		if arg == "--no-check" {
			check = false
			continue
		}
		paths = append(paths, arg)
	}
	if len(paths) > 1 {
		fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(paths[1:], " "))
		return 1
	}

	entry, manifestCheck, err := resolveEntry(paths)
	if err != nil {
		fmt.Fprintln(stderr, errorStyle.Render(err.Error()))
		return 1
	}
	if manifestCheck != nil && check {
		check = *manifestCheck
	}

	stmts, err := driver.LoadProgram(entry)
	if err != nil {
		fmt.Fprintln(stderr, errorStyle.Render(err.Error()))
		return 1
	}

	if check || !execute {
		issues := typechecker.CheckProgram(stmts)
		renderIssues(issues, stderr)
		if !execute {
			if hasHardError(issues) {
				return 1
			}
			return 0
		}
		if hasHardError(issues) {
			return 1
		}
	}

	env := runtime.NewRootEnvironment()
	builtins.Install(env)
	result, runErr := interpreter.Run(stmts, env)
	if runErr != nil {
		renderRuntimeError(runErr, stderr)
		return 1
	}
	if result.Kind == runtime.ResultValue {
		fmt.Fprintln(stdout, resultStyle.Render(runtime.ToString(result.Value)))
	}
	return 0
}

// resolveEntry maps the optional path argument onto the program file to
// load, consulting a manifest when given one (or none).
func resolveEntry(paths []string) (string, *bool, error) {
	if len(paths) == 0 {
		manifest, err := driver.LoadManifest(driver.ManifestName)
		if err != nil {
			return "", nil, fmt.Errorf("no program given and %s not loadable: %w", driver.ManifestName, err)
		}
		return manifest.Entry, &manifest.Check, nil
	}
	path := paths[0]
	if isManifestPath(path) {
		manifest, err := driver.LoadManifest(path)
		if err != nil {
			return "", nil, err
		}
		return manifest.Entry, &manifest.Check, nil
	}
	return path, nil, nil
}

func isManifestPath(path string) bool {
	base := filepath.Base(path)
	return base == driver.ManifestName || strings.HasSuffix(base, ".yml") || strings.HasSuffix(base, ".yaml")
}

func renderIssues(issues []typechecker.Issue, w io.Writer) {
	for _, issue := range issues {
		if issue.IsWarning() {
			fmt.Fprintln(w, warnStyle.Render("warning: "+issue.Error()))
		} else {
			fmt.Fprintln(w, errorStyle.Render("check: "+issue.Error()))
		}
	}
}

func hasHardError(issues []typechecker.Issue) bool {
	for _, issue := range issues {
		if !issue.IsWarning() {
			return true
		}
	}
	return false
}

func renderRuntimeError(err *runtime.PositionedError, w io.Writer) {
	fmt.Fprintln(w, errorStyle.Render("runtime error: "+err.Error()))
	if origin := err.Origin(); origin != err {
		fmt.Fprintln(w, mutedStyle.Render("  raised at "+origin.Span.String()+": "+origin.Err.Error()))
	}
}
