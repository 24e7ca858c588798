// Package normalisers extracts text from knowledge files. Each normaliser
// handles a set of file extensions; the Registry dispatches a file to the
// highest priority normaliser for its extension.
package normalisers
