// Package display renders the user-facing blocks printed around a
// verification run: warnings about how the run was set up and the final
// result banner.
//
//	display.NoTokenWarning("MCP_GITHUB_TOKEN").Display(os.Stderr)
//	...
//	display.NewBanner(report).Display(os.Stdout)
//
// Colors come from fatih/color and are dropped automatically when output is
// not a terminal or NO_COLOR is set. All functions take an io.Writer.
package display
