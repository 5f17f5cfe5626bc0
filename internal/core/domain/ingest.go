package domain

// UploadFile is one raw file submitted for ingestion.
type UploadFile struct {
	// Filename is the original name with extension.
	Filename string

	// Content is the undecoded file bytes.
	Content []byte
}

// FileFailure records why a single file in a batch was not ingested.
type FileFailure struct {
	// Filename is the file that failed.
	Filename string

	// Reason is a stable, human-readable failure description.
	Reason string
}

// IngestReport summarises a multi-file ingestion batch.
// Partial success is a valid outcome: failed files are reported
// alongside the ones that were indexed.
type IngestReport struct {
	// Ingested holds the successfully indexed documents.
	Ingested []Document

	// Failed holds per-file failures.
	Failed []FileFailure
}
