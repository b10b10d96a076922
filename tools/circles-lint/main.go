// circles-lint is a custom static analyzer for circle-core conventions.
package main

import (
	"golang.org/x/tools/go/analysis/multichecker"

	"github.com/ersonp/circle-core/tools/circles-lint/analyzers"
)

func main() {
	multichecker.Main(analyzers.All()...)
}
