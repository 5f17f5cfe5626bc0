// Package normalisers provides implementations of the Decoder interface
// for various document formats. Each decoder knows how to extract text
// content from files with specific extensions.
//
// Decoders are registered with the Registry at startup.
package normalisers
