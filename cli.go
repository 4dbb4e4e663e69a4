package main

import (
	"flag"
	"fmt"
	"os"
)

// showUsage prints the subcommand summary in a single Fprintf block.
func showUsage() {
	fmt.Fprintf(os.Stderr, `Noble - a small statically typed language compiled to x86-64 NASM

Usage:
    noble <command> [arguments]

Commands:
    build <file.nbl>   Compile a Noble source file to NASM assembly
    check <file.nbl>   Parse and resolve a Noble source file without codegen
    help                Show this help message

Examples:
    noble build examples/loop.nbl
    noble check examples/loop.nbl

Use "noble <command> -h" for more information about a command.
`)
}

func buildCommand(args []string) {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	output := fs.String("o", "src/out.asm", "Output assembly file path")
	verbose := fs.Bool("v", false, "Show verbose compilation details")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: noble build [-o output] [-v] <file.nbl>\n")
		fmt.Fprintf(os.Stderr, "Compile a Noble source file to NASM assembly\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one file argument\n")
		fs.Usage()
		os.Exit(1)
	}

	filename := fs.Arg(0)
	source, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", colorizeError(fmt.Sprintf("Error reading file %s: %v", filename, err)))
		os.Exit(1)
	}

	result, err := Compile(string(source))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", colorizeError(fmt.Sprintf("Compilation failed:\n%v", err)))
		os.Exit(1)
	}

	if *verbose {
		fmt.Fprintf(os.Stderr, "%s\n", colorizeInfo(fmt.Sprintf("Tokens: %d", result.TokenCount)))
		fmt.Fprintf(os.Stderr, "%s\n", colorizeInfo("AST: "+ToSExpr(result.AST)))
	}

	if err := os.WriteFile(*output, []byte(result.Assembly), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", colorizeError(fmt.Sprintf("Error writing assembly file %s: %v", *output, err)))
		os.Exit(1)
	}

	fmt.Println(colorizeSuccess(fmt.Sprintf("Generated %s (%d bytes)", *output, len(result.Assembly))))
}

// checkCommand runs lexing and parsing (including symbol resolution) but
// skips code generation, for fast syntax/scope validation.
func checkCommand(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	verbose := fs.Bool("v", false, "Show verbose checking details")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: noble check [-v] <file.nbl>\n")
		fmt.Fprintf(os.Stderr, "Parse and resolve a Noble source file\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one file argument\n")
		fs.Usage()
		os.Exit(1)
	}

	filename := fs.Arg(0)
	source, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", colorizeError(fmt.Sprintf("Error reading file %s: %v", filename, err)))
		os.Exit(1)
	}

	lex := NewLexer(source)
	ast, diags := ParseProgram(lex)
	if diags.HasErrors() {
		fmt.Fprintf(os.Stderr, "%s\n", colorizeError(fmt.Sprintf("Errors in %s:\n%s", filename, diags.String())))
		os.Exit(1)
	}

	fmt.Println(colorizeSuccess(fmt.Sprintf("%s: no errors found", filename)))
	if *verbose {
		fmt.Fprintf(os.Stderr, "%s\n", colorizeInfo(fmt.Sprintf("Tokens: %d", CountTokens(string(source)))))
		fmt.Fprintf(os.Stderr, "%s\n", colorizeInfo("AST: "+ToSExpr(ast)))
	}
}

func main() {
	if len(os.Args) < 2 {
		showUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "build":
		buildCommand(args)
	case "check":
		checkCommand(args)
	case "help", "-h", "--help":
		showUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		showUsage()
		os.Exit(1)
	}
}
