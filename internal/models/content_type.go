package models

import (
	"path/filepath"
	"strings"
)

type ContentType string

const (
	ContentTypeDocument ContentType = "document"
	ContentTypeVideo    ContentType = "video"
	ContentTypeWord     ContentType = "word"
	ContentTypeText     ContentType = "text"
	ContentTypeLink     ContentType = "link"
)

func (t ContentType) Valid() bool {
	switch t {
	case ContentTypeDocument, ContentTypeVideo, ContentTypeWord, ContentTypeText, ContentTypeLink:
		return true
	}
	return false
}

// ClassifyContent maps a filename extension onto a content type. Unknown
// extensions fall back to the caller-supplied hint, or to text when the
// hint is empty or invalid.
func ClassifyContent(filename string, hint ContentType) ContentType {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	switch ext {
	case "pdf":
		return ContentTypeDocument
	case "mp4", "mov", "avi":
		return ContentTypeVideo
	case "doc", "docx":
		return ContentTypeWord
	}
	if hint.Valid() {
		return hint
	}
	return ContentTypeText
}
