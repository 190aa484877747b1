// Package config defines the format-agnostic raw loot document: the records
// a deserializer produces before any cross-referencing happens, along with
// the Loader interface implemented by the format-specific packages.
//
// Every value is kept as the string found in the source file. Parsing of
// counts, probabilities and flags is the job of the store package, so a
// loader never has to know the loot grammar.
package config
