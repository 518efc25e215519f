package resolver

import "github.com/funvibe/quill/internal/ast"

// namespaceFor computes the key prefix for a whole-module import or
// export: the declared qualifier when given, otherwise the referenced
// module's name. Single-name forms take no namespace at all — their "as"
// clause renames the definition instead of qualifying it.
func namespaceFor(qualifier, moduleName, defName string) string {
	if singleName(defName) {
		return ""
	}
	if qualifier != "" {
		return qualifier
	}
	return moduleName
}

// targetName is the identifier a single-name import or export installs:
// the "as" alias when given, otherwise the original name.
func targetName(qualifier, defName string) string {
	if qualifier != "" {
		return qualifier
	}
	return defName
}

// singleName reports whether defName picks one definition rather than the
// whole module ("" and "*" both mean everything).
func singleName(defName string) bool {
	return defName != "" && defName != ast.ImportAll
}
