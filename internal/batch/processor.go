// Package batch reads word lists for batch processing
package batch

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"codeberg.org/snonux/wordtoons/internal/words"
)

// WordEntry is one word to process and the language to translate it into
type WordEntry struct {
	Word     string
	Language words.Language
	Line     int
}

// ReadBatchFile reads words from a file and returns WordEntry slice
// Supports formats:
// - Word only: "happy" (translated into defaultLang)
// - With language: "happy = Tamil"
// Blank lines and lines starting with '#' are skipped. An unknown language
// name is an error naming the line.
func ReadBatchFile(filename string, defaultLang words.Language) ([]WordEntry, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	defer file.Close()

	var entries []WordEntry
	scanner := bufio.NewScanner(file)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		word, langName, hasLang := strings.Cut(line, "=")
		word = strings.TrimSpace(word)
		if word == "" {
			continue
		}

		lang := defaultLang
		if hasLang && strings.TrimSpace(langName) != "" {
			lang, err = words.ParseLanguage(langName)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w", filename, lineNo, err)
			}
		}

		entries = append(entries, WordEntry{Word: word, Language: lang, Line: lineNo})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	return entries, nil
}
