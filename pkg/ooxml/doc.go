// Package ooxml is the container and markup substrate for the rendering
// engine. It reads and rewrites zip-based document packages, scans and
// substitutes placeholder tokens inside WordprocessingML text runs, splices
// requisites-table fragments into an existing body, and builds complete
// packages from scratch through a small structural builder.
//
// The scanner works over the concatenated text of <w:t> runs with a
// position map back into the raw markup, so tokens that a word processor has
// split across several runs are still found and substituted without
// disturbing the surrounding formatting.
package ooxml
