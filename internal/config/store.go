// Package config persists the pattern store and loads application configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/temirov/ctc/internal/types"
	"github.com/temirov/ctc/internal/utils"
)

const (
	storeFilePermissions = 0o600
	storeIndentation     = "    "
	// errorStoreParseFormat reports a malformed pattern store document.
	errorStoreParseFormat = "parse pattern store %s: %w"
	// errorStoreReadFormat reports an unreadable pattern store file.
	errorStoreReadFormat = "read pattern store %s: %w"
	// errorStoreWriteFormat reports a failed pattern store write.
	errorStoreWriteFormat = "write pattern store %s: %w"
)

// Store holds the include patterns and explicit file paths selected by the
// user. It is loaded once per invocation, mutated in memory, and persisted
// explicitly via Save. There is no locking; concurrent invocations race by
// accepted limitation.
type Store struct {
	documentPath string
	patterns     types.StoredPatterns
}

// ResolveStorePath determines where the pattern store lives. The working
// directory is checked first, then the user home directory; the first
// existing file wins. When neither exists the working directory location is
// returned so that the first Save creates the store there.
func ResolveStorePath(workingDirectory string) (string, error) {
	localPath := filepath.Join(workingDirectory, utils.PatternStoreFileName)
	if _, statError := os.Stat(localPath); statError == nil {
		return localPath, nil
	}
	homeDirectory, homeError := os.UserHomeDir()
	if homeError == nil && homeDirectory != "" {
		homePath := filepath.Join(homeDirectory, utils.PatternStoreFileName)
		if _, statError := os.Stat(homePath); statError == nil {
			return homePath, nil
		}
	}
	return localPath, nil
}

// LoadStore reads the pattern store for the given working directory. A
// missing store file yields an empty store bound to the resolved path.
// Malformed JSON is a fatal configuration error; no partial state is returned.
func LoadStore(workingDirectory string) (*Store, error) {
	storePath, resolveError := ResolveStorePath(workingDirectory)
	if resolveError != nil {
		return nil, resolveError
	}

	store := &Store{
		documentPath: storePath,
		patterns: types.StoredPatterns{
			IncludePatterns: []string{},
			ExplicitFiles:   []string{},
		},
	}

	documentBytes, readError := os.ReadFile(storePath)
	if readError != nil {
		if os.IsNotExist(readError) {
			return store, nil
		}
		return nil, fmt.Errorf(errorStoreReadFormat, storePath, readError)
	}

	var document types.StoredPatterns
	if unmarshalError := json.Unmarshal(documentBytes, &document); unmarshalError != nil {
		return nil, fmt.Errorf(errorStoreParseFormat, storePath, unmarshalError)
	}
	if document.IncludePatterns != nil {
		store.patterns.IncludePatterns = document.IncludePatterns
	}
	if document.ExplicitFiles != nil {
		store.patterns.ExplicitFiles = document.ExplicitFiles
	}
	return store, nil
}

// Path returns the location the store was read from and will be written to.
func (store *Store) Path() string {
	return store.documentPath
}

// Patterns returns a copy of the stored pattern document with insertion order preserved.
func (store *Store) Patterns() types.StoredPatterns {
	return types.StoredPatterns{
		IncludePatterns: append([]string{}, store.patterns.IncludePatterns...),
		ExplicitFiles:   append([]string{}, store.patterns.ExplicitFiles...),
	}
}

// AddPattern appends an include pattern unless it is already present.
// It reports whether the store changed.
func (store *Store) AddPattern(pattern string) bool {
	if utils.ContainsString(store.patterns.IncludePatterns, pattern) {
		return false
	}
	store.patterns.IncludePatterns = append(store.patterns.IncludePatterns, pattern)
	return true
}

// AddExplicitFile appends an explicit file path unless it is already present.
// It reports whether the store changed.
func (store *Store) AddExplicitFile(filePath string) bool {
	if utils.ContainsString(store.patterns.ExplicitFiles, filePath) {
		return false
	}
	store.patterns.ExplicitFiles = append(store.patterns.ExplicitFiles, filePath)
	return true
}

// Remove deletes the entry from whichever list contains it and reports the
// list it was found in. Removing an absent entry is a no-op.
func (store *Store) Remove(entry string) (types.EntryKind, bool) {
	if updated, removed := utils.RemoveString(store.patterns.IncludePatterns, entry); removed {
		store.patterns.IncludePatterns = updated
		return types.EntryKindPattern, true
	}
	if updated, removed := utils.RemoveString(store.patterns.ExplicitFiles, entry); removed {
		store.patterns.ExplicitFiles = updated
		return types.EntryKindExplicitPath, true
	}
	return "", false
}

// ClearAll empties both lists and reports whether anything was removed.
func (store *Store) ClearAll() bool {
	hadEntries := len(store.patterns.IncludePatterns) > 0 || len(store.patterns.ExplicitFiles) > 0
	store.patterns.IncludePatterns = []string{}
	store.patterns.ExplicitFiles = []string{}
	return hadEntries
}

// IsEmpty reports whether the store holds no patterns and no explicit files.
func (store *Store) IsEmpty() bool {
	return len(store.patterns.IncludePatterns) == 0 && len(store.patterns.ExplicitFiles) == 0
}

// Save persists the store to the location it was loaded from.
func (store *Store) Save() error {
	documentBytes, marshalError := json.MarshalIndent(store.patterns, "", storeIndentation)
	if marshalError != nil {
		return fmt.Errorf(errorStoreWriteFormat, store.documentPath, marshalError)
	}
	if writeError := os.WriteFile(store.documentPath, documentBytes, storeFilePermissions); writeError != nil {
		return fmt.Errorf(errorStoreWriteFormat, store.documentPath, writeError)
	}
	return nil
}
