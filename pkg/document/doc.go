// Package document defines the closed set of agreement types and the
// substituted document shape handed from the substitution engine to the
// layout engine.
package document
