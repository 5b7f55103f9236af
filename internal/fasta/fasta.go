// Package fasta extracts nucleotide text from loosely formatted FASTA and
// plain-text uploads. No grammar is enforced: header lines are dropped and
// whitespace is removed.
package fasta

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrUnsupportedFormat is returned for file extensions other than .fasta, .fa and .txt.
var ErrUnsupportedFormat = errors.New("unsupported sequence file format")

// Format is the detected upload format.
type Format string

const (
	FormatFASTA Format = "fasta"
	FormatText  Format = "text"
)

// Parsed is the outcome of reading an upload.
type Parsed struct {
	Format   Format
	Sequence string
	Length   int
	Size     string
}

// DetectFormat maps a file name to its upload format.
func DetectFormat(fileName string) (Format, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".fasta", ".fa":
		return FormatFASTA, nil
	case ".txt":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, fileName)
	}
}

// Parse cleans content according to the format implied by fileName.
func Parse(fileName string, content []byte) (Parsed, error) {
	format, err := DetectFormat(fileName)
	if err != nil {
		return Parsed{}, err
	}

	sequence := Clean(string(content))
	if format == FormatText {
		sequence = strings.ToUpper(sequence)
	}

	return Parsed{
		Format:   format,
		Sequence: sequence,
		Length:   utf8.RuneCountInString(sequence),
		Size:     FormatSize(int64(len(content))),
	}, nil
}

// Clean drops '>' header lines and removes all whitespace.
func Clean(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	for line := range strings.Lines(text) {
		if strings.HasPrefix(strings.TrimLeftFunc(line, unicode.IsSpace), ">") {
			continue
		}
		for _, r := range line {
			if !unicode.IsSpace(r) {
				b.WriteRune(r)
			}
		}
	}

	return b.String()
}

// SequenceLength returns the length of the cleaned nucleotide text.
func SequenceLength(text string) int {
	return utf8.RuneCountInString(Clean(text))
}

// FormatSize renders a byte count the way upload listings display it.
func FormatSize(bytes int64) string {
	switch {
	case bytes < 1024:
		return fmt.Sprintf("%d B", bytes)
	case bytes < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(bytes)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(bytes)/(1024*1024))
	}
}
