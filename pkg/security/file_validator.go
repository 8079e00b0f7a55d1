package security

import (
	"bytes"
	"mime"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// FileValidationResult contains the result of file validation
type FileValidationResult struct {
	Valid        bool   // Whether the file passed all validation checks
	Extension    string // Lowercased file extension
	DetectedMIME string // Content type sniffed from the bytes
	Error        string // Error message if validation failed
}

var (
	oleHeader = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
	zipHeader = []byte{0x50, 0x4B, 0x03, 0x04}
)

// Magic byte signatures for allowed file types. An empty list means the
// type has no signature and is judged by MIME detection alone.
var magicBytes = map[string][][]byte{
	".pdf":  {{0x25, 0x50, 0x44, 0x46}}, // %PDF
	".jpg":  {{0xFF, 0xD8, 0xFF}},
	".jpeg": {{0xFF, 0xD8, 0xFF}},
	".png":  {{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
	".doc":  {oleHeader},
	".xls":  {oleHeader},
	".docx": {zipHeader},
	".xlsx": {zipHeader},
	".txt":  {},
	".csv":  {},
}

// Strict MIME types. application/octet-stream is never accepted.
var strictMIMETypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
	"text/plain":      true,
	"text/csv":        true,

	"application/msword":        true,
	"application/vnd.ms-excel":  true,
	"application/x-ole-storage": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":       true,
	"application/zip": true,
}

// ValidateFile performs 3-layer file validation:
// 1. Extension whitelist check
// 2. Magic byte verification (content matches extension)
// 3. MIME type whitelist on the sniffed type or any of its parents
func ValidateFile(filename string, data []byte) FileValidationResult {
	result := FileValidationResult{}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		result.Error = "file has no extension"
		return result
	}
	result.Extension = ext

	signatures, ok := magicBytes[ext]
	if !ok {
		result.Error = "file extension not allowed: " + ext
		return result
	}

	if len(signatures) > 0 && !hasPrefix(data, signatures) {
		result.Error = "file content does not match extension"
		return result
	}

	detected := mimetype.Detect(data)
	result.DetectedMIME = detected.String()

	for m := detected; m != nil; m = m.Parent() {
		if strictMIMETypes[baseType(m.String())] {
			result.Valid = true
			return result
		}
	}

	result.Error = "MIME type not allowed: " + result.DetectedMIME
	return result
}

func hasPrefix(data []byte, signatures [][]byte) bool {
	for _, sig := range signatures {
		if bytes.HasPrefix(data, sig) {
			return true
		}
	}
	return false
}

func baseType(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return contentType
	}
	return mediaType
}

// GetAllowedExtensions returns the sorted whitelist for error messages
func GetAllowedExtensions() []string {
	extensions := make([]string, 0, len(magicBytes))
	for ext := range magicBytes {
		extensions = append(extensions, ext)
	}
	sort.Strings(extensions)
	return extensions
}
