// Package templates holds the versioned legal prose of every supported
// agreement as data. Each document type is one YAML file under definitions/
// with a title, a preamble, ordered sections and a signature requirement.
// Prose references input values through {{token}} placeholders that the
// substitute package resolves.
//
// Adding a document type means adding one definition file and one
// substitution function; the layout engine is unaware of document types.
package templates
