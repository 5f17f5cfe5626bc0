package driven

// Decoder extracts raw text from one uploaded file format.
// Each decoder handles specific file extensions (e.g. .pdf, .md).
// The core only consumes the resulting string; layout repair is
// the text normaliser's job.
type Decoder interface {
	// Extensions returns the lower-case file extensions this decoder
	// handles, including the leading dot.
	Extensions() []string

	// Decode extracts text from the raw file bytes.
	// It returns domain.ErrNoTextExtracted when the file contains
	// no usable text (e.g. an image-only PDF).
	Decode(content []byte) (string, error)
}
