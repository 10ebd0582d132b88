// Package letterhead loads the brand logo and draws the per-page letterhead.
//
// The logo is read once, on first use, from a well-known file name inside an
// asset file system. Any raster format registered with the image package is
// accepted (PNG, JPEG, GIF, WebP, BMP, TIFF); the image is scaled down to a
// bounded width and re-encoded as 8-bit PNG. A missing or undecodable logo is
// not an error for callers: the letterhead falls back to the brand name set in
// text.
package letterhead
