package utils

import (
	"io"
	"net/http"
	"os"
	"unicode/utf8"
)

// sniffLength defines the maximum number of bytes read when detecting binary content.
const sniffLength = 8000

// IsBinary reports whether the provided byte slice appears to contain binary data.
func IsBinary(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	if !utf8.Valid(data) {
		return true
	}
	for _, byteValue := range data {
		if byteValue == 0 {
			return true
		}
	}
	return false
}

// DetectMimeType returns the MIME type of the file at filePath.
// It reads up to sniffLength bytes and uses http.DetectContentType.
// If the file cannot be read, an empty string is returned.
func DetectMimeType(filePath string) string {
	fileHandle, openError := os.Open(filePath)
	if openError != nil {
		return ""
	}
	defer fileHandle.Close()

	buffer := make([]byte, sniffLength)
	bytesRead, readError := fileHandle.Read(buffer)
	if readError != nil && readError != io.EOF {
		return ""
	}

	return http.DetectContentType(buffer[:bytesRead])
}
