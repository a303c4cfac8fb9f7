package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"htmltree"
)

func main() {
	os.Exit(run())
}

func run() int {
	return runWithArgs(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

func runWithArgs(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("html2xml", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: html2xml [file]\n\n")
		fmt.Fprintln(stderr, "Converts an HTML document to well-formed XML on stdout.")
		fmt.Fprintln(stderr, "Reads standard input when no file is given.")
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	var tree *htmltree.Tree
	var err error

	switch rest := fs.Args(); len(rest) {
	case 0:
		var data []byte
		data, err = io.ReadAll(stdin)
		if err != nil {
			fmt.Fprintf(stderr, "error reading input: %v\n", err)
			return 1
		}
		tree, err = htmltree.FromText(string(data))
	case 1:
		tree, err = htmltree.ParseFile(rest[0])
	default:
		fmt.Fprintln(stderr, "error: at most one input file")
		fs.Usage()
		return 2
	}

	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	if _, err := tree.WriteTo(stdout); err != nil {
		fmt.Fprintf(stderr, "error writing output: %v\n", err)
		return 1
	}
	fmt.Fprintln(stdout)
	return 0
}
