// Package normalisers provides implementations of the Normaliser
// interface for journal entry formats. Each normaliser knows how to
// extract clean text and a title from a specific file format.
//
// The Registry routes entries to normalisers by file extension and is
// populated at startup via NewDefaultRegistry. Unrecognised extensions
// fall back to plain text handling, so the indexer never refuses an
// entry because of its format.
package normalisers
