// Command tmplfmt is a small diagnostic tool around the tmpl parser: it
// parses a template file, reports diagnostics to stderr, and dumps the AST
// as an indented tree (or, with -json, a Go-syntax-free JSON document). It
// never emits renderable or generated code; it only inspects and reports.
package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd, args := os.Args[1], os.Args[2:]
	switch cmd {
	case "dump":
		cmdDump(args)
	case "check":
		cmdCheck(args)
	case "serve":
		cmdServe(args)
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: tmplfmt <dump|check|serve> [flags] <file>\n")
}
