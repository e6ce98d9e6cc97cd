// Package pipeline streams FASTA records through a Searcher on a pool of
// workers and hands every amplicon to a single visit callback.
//
// The only contract to implement is Searcher (SearchAll).
package pipeline
