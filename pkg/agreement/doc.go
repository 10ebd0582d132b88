// Package agreement defines the caller supplied records that feed the
// substitution engine: the standard counterparty shape, the partnership shape,
// the partnership fee-model union, and the field catalog that documents every
// default.
package agreement
