// Package metadata reads the descriptive tag block of GSF rips.
//
// PSF-family files carry an optional text trailer: the marker "[TAG]"
// followed by "key=value" lines. The block sits at the end of the file
// and is capped at 50001 bytes including the marker.
package metadata

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rcanales/gsfdeck/internal/domain"
	"go.uber.org/zap"
)

const (
	tagMarker  = "[TAG]"
	maxTagSize = 50001
)

// Reader implements domain.MetadataReader for PSF tag trailers
type Reader struct {
	logger *zap.Logger
}

// NewReader creates a tag reader
func NewReader(logger *zap.Logger) *Reader {
	return &Reader{logger: logger}
}

// Read parses the tag trailer of the file at path. Missing or malformed
// trailers are an error; callers absorb it and keep previous metadata.
func (r *Reader) Read(path string) (domain.TrackMetadata, error) {
	meta := domain.TrackMetadata{Path: path}

	f, err := os.Open(path)
	if err != nil {
		return meta, fmt.Errorf("failed to open track: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return meta, fmt.Errorf("failed to stat track: %w", err)
	}

	// Only the tail of the file can hold the tag block
	readLen := int64(maxTagSize)
	if info.Size() < readLen {
		readLen = info.Size()
	}
	if _, err := f.Seek(-readLen, io.SeekEnd); err != nil {
		return meta, fmt.Errorf("failed to seek tag block: %w", err)
	}
	tail := make([]byte, readLen)
	if _, err := io.ReadFull(f, tail); err != nil {
		return meta, fmt.Errorf("failed to read tag block: %w", err)
	}

	idx := bytes.LastIndex(tail, []byte(tagMarker))
	if idx < 0 {
		return meta, fmt.Errorf("no tag block in %s", path)
	}

	vars := parseVars(tail[idx+len(tagMarker):])
	meta.Title = vars["title"]
	meta.Artist = vars["artist"]
	meta.Game = vars["game"]
	meta.Year = vars["year"]
	meta.Copyright = vars["copyright"]
	meta.GSFBy = vars["gsfby"]
	meta.LengthText = vars["length"]

	r.logger.Debug("Tag block parsed",
		zap.String("path", path),
		zap.String("title", meta.Title),
		zap.String("length", meta.LengthText))
	return meta, nil
}

// parseVars splits key=value lines. The first occurrence of a key wins;
// keys are lowercased for case-insensitive lookup.
func parseVars(block []byte) map[string]string {
	vars := make(map[string]string)
	for _, line := range strings.Split(string(block), "\n") {
		line = strings.TrimRight(line, "\r")
		eq := strings.IndexByte(line, '=')
		if eq < 0 {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(line[:eq]))
		val := strings.TrimSpace(line[eq+1:])
		if key == "" {
			continue
		}
		if _, seen := vars[key]; !seen {
			vars[key] = val
		}
	}
	return vars
}

// ParseLength converts a length tag to whole seconds. Supported formats:
// "m:ss", "ss.fraction" and plain integer seconds. Anything unparsable
// yields 0, meaning unknown/unbounded.
func ParseLength(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	if colon := strings.IndexByte(s, ':'); colon >= 0 {
		min, err1 := strconv.Atoi(s[:colon])
		sec, err2 := strconv.Atoi(stripFraction(s[colon+1:]))
		if err1 != nil || err2 != nil || min < 0 || sec < 0 {
			return 0
		}
		return min*60 + sec
	}

	n, err := strconv.Atoi(stripFraction(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func stripFraction(s string) string {
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		return s[:dot]
	}
	return s
}
