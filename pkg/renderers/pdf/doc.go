// Package pdf serialises laid-out agreements into PDF documents using fpdf.
// Output is deterministic: identical inputs and options produce identical
// bytes, because dates are pinned and catalog entries are sorted.
package pdf
