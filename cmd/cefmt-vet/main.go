// Command cefmt-vet runs the cefmt format checker as a vet tool:
//
//	go vet -vettool=$(which cefmt-vet) ./...
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"cefmt/internal/fmtcheck"
)

func main() {
	singlechecker.Main(fmtcheck.Analyzer)
}
