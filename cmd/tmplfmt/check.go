package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dpotapov/tmplreactive/internal/exprbridge"
	"github.com/dpotapov/tmplreactive/tmpl"
)

func cmdCheck(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	namespaces := fs.String("namespaces", "", "optional XML file mapping tag prefixes to namespaces")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: tmplfmt check [-namespaces file.xml] <file>\n\nFlags:\n")
		fs.PrintDefaults()
	}
	_ = fs.Parse(args)

	if fs.NArg() < 1 {
		fs.Usage()
		os.Exit(1)
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "tmplfmt: %v\n", err)
		os.Exit(1)
	}

	opts := tmpl.Options{}
	if *namespaces != "" {
		nsMap, err := exprbridge.LoadNamespaceMap(*namespaces)
		if err != nil {
			fmt.Fprintf(os.Stderr, "tmplfmt: %v\n", err)
			os.Exit(1)
		}
		opts.GetNamespace = func(tag string, _ *tmpl.ElementNode) tmpl.Namespace {
			return tmpl.Namespace(nsMap.NamespaceFor(tag))
		}
	}

	root, diags := tmpl.ParseCollecting(string(data), opts)
	exitCode := 0
	for _, d := range diags {
		fmt.Fprintf(os.Stderr, "%s: parse error: %s\n", d.Loc.Start, d.Code)
		exitCode = 1
	}

	for _, r := range exprbridge.CheckTree(root) {
		if r.Err == nil {
			continue
		}
		fmt.Fprintf(os.Stderr, "%s: expression error: %v\n", r.Node.Loc().Start, r.Err)
		exitCode = 1
	}

	os.Exit(exitCode)
}
