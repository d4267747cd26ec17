// Package viz formats the terminal side of an analysis run: section
// banners, metric lines, sparklines for summary tables, an asciigraph
// preview of a length series and a Braille sketch of a rope frame.
package viz
