package models

// Document is the temporary on-disk copy of an uploaded resume. It lives only
// for the duration of one analyze request.
type Document struct {
	Filename         string
	OriginalFilename string
	MediaType        string
	FilePath         string
	Size             int64
}
