package analyzer

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"api-recon/internal/logger"
)

// ScanDirectory walks the root directory and finds .java files
// It excludes directories matching excludePatterns
func ScanDirectory(root string, excludePatterns []string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Check exclusion for directories
		if d.IsDir() {
			// Skip .git always
			if d.Name() == ".git" || d.Name() == ".svn" {
				return filepath.SkipDir
			}

			// Normalize path for matching (forward slashes)
			relPath, _ := filepath.Rel(root, path)
			relPath = filepath.ToSlash(relPath)
			if relPath == "." {
				return nil
			}

			for _, pat := range excludePatterns {
				if matchGlob(relPath, pat) {
					logger.Debug("[SCAN] Excluded %s (%s)", relPath, pat)
					return filepath.SkipDir
				}
			}
			return nil
		}

		if IsJavaFile(path) {
			files = append(files, path)
		}

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}

	return files, nil
}

// matchGlob matches a slash-separated relative directory against an exclude
// pattern. "**/name/**" excludes any directory named name at any depth;
// other patterns are matched against the whole path and against its last
// segment with path.Match.
func matchGlob(rel, pattern string) bool {
	pattern = strings.Trim(filepath.ToSlash(pattern), "/")
	if pattern == "" {
		return false
	}
	if strings.Contains(pattern, "**") {
		clean := strings.Trim(strings.ReplaceAll(pattern, "**", ""), "/")
		if clean == "" {
			return false
		}
		for _, seg := range strings.Split(rel, "/") {
			if ok, _ := path.Match(clean, seg); ok {
				return true
			}
		}
		return rel == clean || strings.HasPrefix(rel, clean+"/") || strings.Contains(rel, "/"+clean+"/") || strings.HasSuffix(rel, "/"+clean)
	}
	if ok, _ := path.Match(pattern, rel); ok {
		return true
	}
	ok, _ := path.Match(pattern, path.Base(rel))
	return ok
}

// IsJavaFile checks if a file is a Java source file
func IsJavaFile(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".java")
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadFile reads a file and decodes it to UTF-8.
// Valid UTF-8 is returned as is (minus a byte order mark). Otherwise each
// encoding hint is tried in order and the first decoding without replacement
// characters wins. Comments are kept; the Java reader strips them itself.
func ReadFile(path string, encodingHints []string) (string, error) {
	// Read raw bytes
	rawBytes, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return Decode(rawBytes, encodingHints), nil
}

// Decode converts raw source bytes to a UTF-8 string using the encoding hints.
func Decode(raw []byte, encodingHints []string) string {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if utf8.Valid(raw) {
		return string(raw)
	}

	for _, label := range encodingHints {
		enc, err := htmlindex.Get(label)
		if err != nil {
			logger.Debug("[READ] Unknown encoding hint %q: %v", label, err)
			continue
		}
		decoded, _, err := transform.Bytes(enc.NewDecoder(), raw)
		if err != nil || bytes.ContainsRune(decoded, utf8.RuneError) {
			continue
		}
		logger.Debug("[READ] Decoded source as %s", label)
		return string(decoded)
	}

	// Nothing decodes cleanly; keep what UTF-8 can make of it
	return strings.ToValidUTF8(string(raw), string(utf8.RuneError))
}
