// Package analyzers provides all custom static analyzers for circle-core.
package analyzers

import (
	"golang.org/x/tools/go/analysis"

	"github.com/ersonp/circle-core/tools/circles-lint/analyzers/loopcall"
	"github.com/ersonp/circle-core/tools/circles-lint/analyzers/rawcategory"
)

// All returns all analyzers to run.
func All() []*analysis.Analyzer {
	return []*analysis.Analyzer{
		loopcall.Analyzer,
		rawcategory.Analyzer,
	}
}
