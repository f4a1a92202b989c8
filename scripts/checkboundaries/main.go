// Command checkboundaries enforces the layering rules of the contexts tree:
// contexts never import each other, and domain/application code stays free
// of adapters and runtime infrastructure.
package main

import (
	"fmt"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const modulePath = "simpleq"

type violation struct {
	File   string
	Line   int
	Import string
	Rule   string
}

// Third-party packages each layer may use beyond the standard library.
var (
	domainThirdParty = []string{
		"github.com/google/uuid",
	}
	applicationThirdParty = []string{
		"go.opentelemetry.io/otel/trace",
	}
)

func main() {
	root := "contexts"
	if len(os.Args) > 1 {
		root = os.Args[1]
	}
	violations := collectViolations(root)
	if len(violations) == 0 {
		fmt.Println("boundary checks passed")
		return
	}

	fmt.Println("boundary violations found:")
	for _, v := range violations {
		fmt.Printf("- %s:%d imports %q (%s)\n", v.File, v.Line, v.Import, v.Rule)
	}
	os.Exit(1)
}

func collectViolations(root string) []violation {
	var violations []violation

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		rel, err := filepath.Rel(filepath.Dir(root), path)
		if err != nil {
			return nil
		}
		parts := strings.Split(filepath.ToSlash(rel), "/")
		if len(parts) < 4 || parts[0] != "contexts" {
			return nil
		}

		servicePrefix := fmt.Sprintf("%s/contexts/%s/%s", modulePath, parts[1], parts[2])
		violations = append(violations, validateFile(path, filepath.ToSlash(rel), parts[3], servicePrefix)...)
		return nil
	})

	sort.Slice(violations, func(i, j int) bool {
		if violations[i].File == violations[j].File {
			if violations[i].Line == violations[j].Line {
				return violations[i].Import < violations[j].Import
			}
			return violations[i].Line < violations[j].Line
		}
		return violations[i].File < violations[j].File
	})
	return violations
}

func validateFile(path string, displayPath string, layer string, servicePrefix string) []violation {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
	if err != nil {
		return []violation{{File: displayPath, Line: 1, Rule: "file must parse"}}
	}

	var violations []violation
	for _, imp := range file.Imports {
		importPath := strings.Trim(imp.Path.Value, "\"")
		line := fset.Position(imp.Pos()).Line
		add := func(rule string) {
			violations = append(violations, violation{File: displayPath, Line: line, Import: importPath, Rule: rule})
		}

		if hasPrefix(importPath, modulePath+"/contexts") && !hasPrefix(importPath, servicePrefix) {
			add("cross-module imports are forbidden")
		}

		switch layer {
		case "domain":
			if rule := checkLayer(importPath, "domain", []string{servicePrefix + "/domain"}, domainThirdParty); rule != "" {
				add(rule)
			}
		case "application":
			allowed := []string{
				servicePrefix + "/application",
				servicePrefix + "/domain",
				servicePrefix + "/ports",
				modulePath + "/contracts",
				modulePath + "/internal/shared",
			}
			if rule := checkLayer(importPath, "application", allowed, applicationThirdParty); rule != "" {
				add(rule)
			}
		}
	}
	return violations
}

func checkLayer(importPath string, layer string, allowedLocal []string, allowedThirdParty []string) string {
	switch {
	case strings.Contains(importPath, "/adapters/") || strings.HasSuffix(importPath, "/adapters"):
		return layer + " must not import adapters"
	case hasPrefix(importPath, modulePath+"/internal/platform"), hasPrefix(importPath, modulePath+"/internal/app"):
		return layer + " must not import runtime infrastructure"
	case isStdlib(importPath), isAllowed(importPath, allowedLocal), isAllowed(importPath, allowedThirdParty):
		return ""
	default:
		return layer + " import is outside explicit allowlist"
	}
}

func hasPrefix(path string, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func isAllowed(importPath string, allowedPrefixes []string) bool {
	for _, p := range allowedPrefixes {
		if hasPrefix(importPath, p) {
			return true
		}
	}
	return false
}

func isStdlib(importPath string) bool {
	if hasPrefix(importPath, modulePath) {
		return false
	}
	first, _, _ := strings.Cut(importPath, "/")
	return !strings.Contains(first, ".")
}
