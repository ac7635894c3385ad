// Command facet generates views, records, builders, references and graph
// processors from entity declarations.
//
//	facet generate --package example.com/shapes --target ./shapes decls/
//	facet describe decls/shapes.yaml
//	facet render --entity Point --kind data decls/
package main

import (
	"fmt"
	"os"
)

// Version is set at build time.
var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorColor.Sprint("error: ")+err.Error())
		os.Exit(1)
	}
}
