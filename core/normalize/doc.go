// Package normalize turns loosely-typed backend responses into stable records.
//
// The legacy REST backend answers with whatever shape the endpoint happens to produce:
// bare arrays, objects emulated as arrays of [key, value] pairs, {data: ...} envelopes,
// JSON documents encoded as strings (sometimes twice) and options carrying escaped unicode.
// Field names vary between snake_case, camelCase and abbreviations.
//
// Everything in this package is pure and never panics on malformed input:
// unparseable strings are treated as opaque scalars, entities without an identity are dropped
// and fields that cannot be resolved come out null.
package normalize
