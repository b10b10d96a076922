// Package rawcategory detects comparisons of stored category fields
// against string literals.
package rawcategory

import (
	"go/ast"
	"go/token"
	"strconv"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// Analyzer detects stored category values compared to literals. Stored
// values come from several taxonomy generations and must be resolved
// through the classifier first.
var Analyzer = &analysis.Analyzer{
	Name:     "rawcategory",
	Doc:      "detects stored category fields compared to string literals instead of being resolved",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

// storedFields are the event fields holding unnormalized category values.
var storedFields = map[string]bool{
	"Category":     true,
	"MainCategory": true,
}

func run(pass *analysis.Pass) (interface{}, error) {
	inspect := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.BinaryExpr)(nil),
		(*ast.CallExpr)(nil),
	}

	inspect.Preorder(nodeFilter, func(n ast.Node) {
		switch node := n.(type) {
		case *ast.BinaryExpr:
			if node.Op != token.EQL && node.Op != token.NEQ {
				return
			}
			checkPair(pass, node.Pos(), node.X, node.Y)
		case *ast.CallExpr:
			if !isEqualFold(node) || len(node.Args) != 2 {
				return
			}
			checkPair(pass, node.Pos(), node.Args[0], node.Args[1])
		}
	})

	return nil, nil
}

func checkPair(pass *analysis.Pass, pos token.Pos, a, b ast.Expr) {
	field, ok := storedField(a)
	if !ok || !isNonEmptyLiteral(b) {
		field, ok = storedField(b)
		if !ok || !isNonEmptyLiteral(a) {
			return
		}
	}
	pass.Reportf(pos,
		"stored %s compared to a literal - resolve it with Classifier.ResolveCategory or TaxonomyService.Normalize",
		field)
}

func storedField(expr ast.Expr) (string, bool) {
	sel, ok := expr.(*ast.SelectorExpr)
	if !ok || !storedFields[sel.Sel.Name] {
		return "", false
	}
	return sel.Sel.Name, true
}

func isNonEmptyLiteral(expr ast.Expr) bool {
	lit, ok := expr.(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return false
	}
	s, err := strconv.Unquote(lit.Value)
	return err == nil && s != ""
}

func isEqualFold(call *ast.CallExpr) bool {
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != "EqualFold" {
		return false
	}
	pkg, ok := sel.X.(*ast.Ident)
	return ok && pkg.Name == "strings"
}
