// Package substitute fills agreement definitions with caller supplied values.
//
// Every document type has a substitution function (see For) that turns an
// agreement.Record into a complete Values map: blank fields take the catalog
// default, numeric terms that do not look like numbers fall back to their
// default, and derived phrases such as the work-type list and the partnership
// fee sentence are computed. Apply then performs a single literal pass over the
// definition so inserted values are never re-scanned for placeholders.
//
// Values are sanitised before substitution. Markup is stripped, brace
// characters are removed and whitespace (including newlines) is collapsed, so a
// value can neither introduce a new placeholder nor break the paragraph
// structure of the legal text.
package substitute
