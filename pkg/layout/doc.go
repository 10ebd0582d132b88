// Package layout flows a substituted agreement onto fixed-size pages.
//
// Render writes the title, the preamble and every section through a Canvas,
// wrapping text to the content width and breaking pages whenever the next line
// would cross the low-water mark above the bottom margin. The letterhead is
// drawn on every page, section titles are kept with their first body line and
// never repeated, and an optional two-party signature block is appended under
// the same pagination rules.
//
// The vertical write position is private to a single Render call, so separate
// calls may run concurrently on separate canvases.
package layout
