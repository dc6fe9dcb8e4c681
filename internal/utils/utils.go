// Package utils contains general helper functions used across the ctc tool.
package utils

import (
	"path/filepath"
)

// File and directory name constants used across the project.
const (
	// PatternStoreFileName is the name of the persisted pattern store.
	PatternStoreFileName = ".copytoclipboard_config.json"
	// GitIgnoreFileName is the name of the Git ignore file.
	GitIgnoreFileName = ".gitignore"
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"
	// ConfigFileName is the name of the application configuration file.
	ConfigFileName = "config.yaml"
	// GlobalConfigDirectoryName is the directory under the user home holding global configuration.
	GlobalConfigDirectoryName = ".ctc"
)

// DeduplicateStrings removes duplicate values from a slice while preserving order.
// The first occurrence of each unique value is kept.
func DeduplicateStrings(values []string) []string {
	encounteredValues := make(map[string]struct{})
	result := make([]string, 0, len(values))
	for _, value := range values {
		if _, exists := encounteredValues[value]; !exists {
			encounteredValues[value] = struct{}{}
			result = append(result, value)
		}
	}
	return result
}

// ContainsString checks if a slice of strings contains a specific target string.
func ContainsString(stringSlice []string, targetString string) bool {
	for _, currentString := range stringSlice {
		if currentString == targetString {
			return true
		}
	}
	return false
}

// RemoveString returns stringSlice without the first occurrence of targetString
// and reports whether a removal happened.
func RemoveString(stringSlice []string, targetString string) ([]string, bool) {
	for index, currentString := range stringSlice {
		if currentString == targetString {
			return append(stringSlice[:index:index], stringSlice[index+1:]...), true
		}
	}
	return stringSlice, false
}

// RelativePathOrSelf calculates the slash-separated relative path from root to fullPath.
// Returns the cleaned fullPath if relative calculation fails.
// Returns "." if fullPath and root resolve to the same directory.
func RelativePathOrSelf(fullPath, root string) string {
	cleanPath := filepath.Clean(fullPath)
	absoluteRoot, err := filepath.Abs(root)
	if err != nil {
		return cleanPath
	}
	cleanAbsoluteRoot := filepath.Clean(absoluteRoot)

	if cleanPath == cleanAbsoluteRoot {
		return "."
	}

	relativePath, relErr := filepath.Rel(cleanAbsoluteRoot, cleanPath)
	if relErr != nil {
		return cleanPath
	}
	return filepath.ToSlash(relativePath)
}
