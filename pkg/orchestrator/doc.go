// Package orchestrator assembles finished agreements: it looks up the template
// for a document type, substitutes the agreement record, lays the result out
// with letterhead and signatures, and serialises it with the selected
// renderer.
package orchestrator
