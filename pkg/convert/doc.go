// Package convert rewrites the lines of the demo page into the popup page
// and the Velocity screen template.
//
// Both converters are line filters built on plain substring search; no HTML
// parsing takes place. The popup converter keeps every line. The template
// converter replaces the first source line (the opening <html> tag) with the
// Velocity type annotations, blanks structural tags and turns quoted
// href=/src= values into $content.getURI(...) calls.
//
// The mode flag is matched as a plain substring, so an unrelated identifier
// that happens to contain the flag name on a line with a single "=" is
// rewritten too.
package convert
