package services

import (
	"errors"
	"fmt"
	"mime"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2/log"
)

const (
	MediaTypePDF    = "application/pdf"
	MediaTypeText   = "text/plain"
	MediaTypeBinary = "application/octet-stream"
)

// ExtractionStrategy names the ordered list of readers tried for a media type.
type ExtractionStrategy string

const (
	StrategyPDF         ExtractionStrategy = "pdf"
	StrategyText        ExtractionStrategy = "text"
	StrategyPDFThenText ExtractionStrategy = "pdf-then-text"
)

// Reader names used inside strategies.
const (
	ReaderPDF  = "pdf"
	ReaderText = "text"
)

// strategyReaders is the whole dispatch policy. Some clients label plain text
// files as application/octet-stream, so that type tries PDF first and falls
// back to raw text.
var strategyReaders = map[ExtractionStrategy][]string{
	StrategyPDF:         {ReaderPDF},
	StrategyText:        {ReaderText},
	StrategyPDFThenText: {ReaderPDF, ReaderText},
}

var mediaTypeStrategies = map[string]ExtractionStrategy{
	MediaTypePDF:    StrategyPDF,
	MediaTypeText:   StrategyText,
	MediaTypeBinary: StrategyPDFThenText,
}

// ExtractedText is the plain text of a document and where it came from.
type ExtractedText struct {
	Text     string
	Strategy ExtractionStrategy
	Reader   string
}

type TextExtractor interface {
	StrategyFor(mediaType string) (ExtractionStrategy, error)
	Readers(strategy ExtractionStrategy) []string
	Extract(filePath, mediaType string) (*ExtractedText, error)
}

type textExtractor struct {
	pdfParser DocumentParser
}

func NewTextExtractor(pdfParser DocumentParser) TextExtractor {
	return &textExtractor{pdfParser: pdfParser}
}

// ResolveMediaType reduces a declared Content-Type to its lower-case base type.
// An undeclared type is the multipart default, application/octet-stream.
func ResolveMediaType(declared string) string {
	declared = strings.TrimSpace(declared)
	if declared == "" {
		return MediaTypeBinary
	}

	mediaType, _, err := mime.ParseMediaType(declared)
	if err != nil {
		return strings.ToLower(declared)
	}
	return mediaType
}

func (e *textExtractor) StrategyFor(mediaType string) (ExtractionStrategy, error) {
	strategy, ok := mediaTypeStrategies[mediaType]
	if !ok {
		return "", NewUnsupportedTypeError(mediaType)
	}
	return strategy, nil
}

func (e *textExtractor) Readers(strategy ExtractionStrategy) []string {
	readers := strategyReaders[strategy]
	out := make([]string, len(readers))
	copy(out, readers)
	return out
}

// Extract runs the readers of the media type's strategy in order and returns
// the first success. Earlier failures are only logged. If every reader fails
// the returned ExtractionError joins all of their errors. A PDF that parses
// but holds no text ends the strategy: its bytes are never read as text.
func (e *textExtractor) Extract(filePath, mediaType string) (*ExtractedText, error) {
	strategy, err := e.StrategyFor(mediaType)
	if err != nil {
		return nil, err
	}

	var errs []error
	for _, reader := range e.Readers(strategy) {
		text, err := e.read(reader, filePath)
		if err == nil {
			if len(errs) > 0 {
				log.Debugf("📄 %s reader succeeded after earlier failure: %v", reader, errors.Join(errs...))
			}
			return &ExtractedText{Text: text, Strategy: strategy, Reader: reader}, nil
		}
		errs = append(errs, fmt.Errorf("%s reader: %w", reader, err))
		if errors.Is(err, ErrNoTextContent) {
			break
		}
	}

	return nil, &ExtractionError{Strategy: string(strategy), Err: errors.Join(errs...)}
}

func (e *textExtractor) read(reader, filePath string) (string, error) {
	switch reader {
	case ReaderPDF:
		return e.pdfParser.ExtractText(filePath)
	case ReaderText:
		return readPlainText(filePath)
	default:
		return "", fmt.Errorf("unknown reader %q", reader)
	}
}

// readPlainText decodes the file as UTF-8, replacing invalid sequences.
func readPlainText(filePath string) (string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	text := strings.ToValidUTF8(string(data), "\uFFFD")
	text = strings.TrimPrefix(text, "\uFEFF")
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("no text content found in file")
	}

	return text, nil
}
