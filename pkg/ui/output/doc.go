// Package output holds the presentation assets shared by the renderers.
//
// The styles subpackage loads the semantic style registry from an embedded
// styles.yaml. Renderers refer to styles by name ("Error", "FilePath", ...)
// so colours can change without touching the layout code.
package output
