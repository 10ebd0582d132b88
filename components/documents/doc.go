// Package documents exposes agreement generation over HTTP using gin.
//
// Routes, relative to the mount path:
//
//	GET  /document-types                 supported types, labels and tokens
//	GET  /document-types/:type/schema    JSON schema of the input record
//	POST /documents/:type                JSON record in, document attachment out
//	POST /documents/:type/validate       JSON record in, validation result out
//
// The renderer defaults to pdf and can be switched with ?renderer=text.
package documents
