package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateFile(t *testing.T) {
	pdf := append([]byte("%PDF-1.4\n"), []byte("1 0 obj\n<<>>\nendobj\n%%EOF")...)
	png := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00, 0x00, 0x0D, 0x49, 0x48, 0x44, 0x52}

	tests := []struct {
		name     string
		filename string
		data     []byte
		valid    bool
		errPart  string
	}{
		{name: "pdf accepted", filename: "drawing.PDF", data: pdf, valid: true},
		{name: "png accepted", filename: "site.png", data: png, valid: true},
		{name: "plain text accepted", filename: "notes.txt", data: []byte("100 kVA, 11kV/433V, ONAN cooling"), valid: true},
		{name: "csv accepted", filename: "load.csv", data: []byte("kva,qty\n100,2\n250,1\n"), valid: true},
		{name: "no extension", filename: "README", data: []byte("text"), errPart: "no extension"},
		{name: "executable rejected", filename: "setup.exe", data: []byte("MZ\x90\x00"), errPart: "not allowed"},
		{name: "spoofed pdf", filename: "quote.pdf", data: png, errPart: "does not match"},
		{name: "binary disguised as text", filename: "notes.txt", data: []byte{0x7F, 0x45, 0x4C, 0x46, 0x02, 0x01, 0x01, 0x00}, errPart: "MIME type not allowed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateFile(tt.filename, tt.data)
			assert.Equal(t, tt.valid, res.Valid, res.Error)
			if !tt.valid {
				assert.Contains(t, res.Error, tt.errPart)
			}
		})
	}
}

func TestGetAllowedExtensions(t *testing.T) {
	exts := GetAllowedExtensions()
	assert.Len(t, exts, 10)
	assert.Contains(t, exts, ".xlsx")
	assert.NotContains(t, exts, ".gif")
}
