// Copyright (c) 2025 Sitescope Authors
// Sitescope - on-page SEO analysis toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// i18n-linter is a tool to check for missing or orphaned translation keys.
// It scans the Go source code for i18n.T() calls and compares them against
// the YAML locale files to ensure consistency.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Location stores the file and line number of a found string.
type Location struct {
	Filepath string
	Line     int
}

const (
	localesDir    = "internal/i18n/locales"
	primaryLocale = "en.yaml"
	projectRoot   = "."
)

// skipDirs are directories excluded from source scans.
var skipDirs = map[string]struct{}{"tools": {}, "_examples": {}}

func main() {
	fmt.Println("🔍 Running i18n linter...")

	usedKeys, err := findUsedKeys(projectRoot)
	if err != nil {
		fmt.Printf("❌ Error finding used keys: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ Found %d unique translation keys used in source code.\n", len(usedKeys))

	localeFiles, err := filepath.Glob(filepath.Join(localesDir, "*.yaml"))
	if err != nil {
		fmt.Printf("❌ Error finding locale files: %v\n", err)
		os.Exit(1)
	}

	// The primary locale is the source of truth for every other locale.
	primaryKeys, err := loadKeysFromLocale(filepath.Join(localesDir, primaryLocale))
	if err != nil {
		fmt.Printf("❌ Error loading primary locale '%s': %v\n", primaryLocale, err)
		os.Exit(1)
	}
	fmt.Printf("✅ Loaded %d keys from primary locale (%s).\n\n", len(primaryKeys), primaryLocale)

	untranslatedStrings, err := findUntranslatedStrings(projectRoot, primaryKeys)
	if err != nil {
		fmt.Printf("❌ Error finding untranslated strings: %v\n", err)
		os.Exit(1)
	}

	hasMissingKeys := false
	hasOrphanedKeys := false

	fmt.Println("--- Checking for Orphaned Keys (in primary locale but not used in code) ---")
	var orphanedKeys []string
	for key := range primaryKeys {
		if _, exists := usedKeys[key]; !exists {
			orphanedKeys = append(orphanedKeys, key)
		}
	}
	sort.Strings(orphanedKeys)
	for _, key := range orphanedKeys {
		fmt.Printf("  - Orphaned: %s\n", key)
		hasOrphanedKeys = true
	}
	if len(orphanedKeys) == 0 {
		fmt.Println("  ✨ None found.")
	}
	fmt.Println()

	fmt.Println("--- Checking for Missing Keys (in primary locale but not in others) ---")
	for _, file := range localeFiles {
		if filepath.Base(file) == primaryLocale {
			continue
		}

		fmt.Printf("Checking %s:\n", file)
		secondaryKeys, err := loadKeysFromLocale(file)
		if err != nil {
			fmt.Printf("  - ❌ Error loading %s: %v\n", file, err)
			hasMissingKeys = true
			continue
		}

		var missingKeys []string
		for key := range primaryKeys {
			if _, exists := secondaryKeys[key]; !exists {
				missingKeys = append(missingKeys, key)
			}
		}
		sort.Strings(missingKeys)
		for _, key := range missingKeys {
			fmt.Printf("  - Missing: %s\n", key)
			hasMissingKeys = true
		}
		if len(missingKeys) == 0 {
			fmt.Println("  ✨ All keys present.")
		}
	}

	fmt.Println("\n--- Checking for Potentially Untranslated Strings ---")
	if len(untranslatedStrings) > 0 {
		var sortedLiterals []string
		for literal := range untranslatedStrings {
			sortedLiterals = append(sortedLiterals, literal)
		}
		sort.Strings(sortedLiterals)

		for _, literal := range sortedLiterals {
			paths := untranslatedStrings[literal]
			fmt.Printf("  - Potential: \"%s\" (found in %s:%d)\n", literal, paths[0].Filepath, paths[0].Line)
		}
		// Treated as a warning; it does not fail the lint.
	} else {
		fmt.Println("  ✨ None found.")
	}

	fmt.Println("\n--- Linter Finished ---")
	if hasMissingKeys {
		fmt.Println("❌ Found issues that need to be addressed.")
		os.Exit(1)
	} else if hasOrphanedKeys {
		fmt.Println("⚠️  Found orphaned keys. Please consider removing them.")
	} else {
		fmt.Println("✅ All translation files are consistent!")
	}
}

// findUsedKeys scans all .go files for i18n.T("key") calls.
func findUsedKeys(root string) (map[string]struct{}, error) {
	keys := make(map[string]struct{})
	// Matches i18n.T("some.key") as well as bare string literals that look
	// like translation keys (e.g. IDs built into a slice).
	re := regexp.MustCompile(`i18n\.T\("([^"]+)"|\"([a-z]+\.[a-z\._]+)\"`)

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if _, skip := skipDirs[info.Name()]; skip {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, ".go") && !strings.HasSuffix(path, "_test.go") {
			content, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			matches := re.FindAllStringSubmatch(string(content), -1)
			for _, match := range matches {
				if len(match) > 1 && match[1] != "" {
					keys[match[1]] = struct{}{}
				} else if len(match) > 2 && match[2] != "" {
					keys[match[2]] = struct{}{}
				}
			}
		}
		return nil
	})

	return keys, err
}

// findUntranslatedStrings scans for hardcoded strings that might need
// translation.
func findUntranslatedStrings(root string, allKeys map[string]struct{}) (map[string][]Location, error) {
	untranslated := make(map[string][]Location)
	// Matches string literals inside calls that are likely to produce
	// user-facing output.
	re := regexp.MustCompile(`([a-zA-Z0-9_]+\.)?([a-zA-Z0-9_]+)\("([^"]+)"`)
	blacklist := map[string]struct{}{"Print": {}, "Println": {}, "Printf": {}, "Fatal": {}, "Fatalf": {}, "WriteString": {}}
	keyRe := regexp.MustCompile(`^[a-z_]+\.[a-z\._]+$`)

	reAllCaps := regexp.MustCompile(`^[A-Z_]+$`)
	reFormatString := regexp.MustCompile(`^[\s%.,:;()#\d\w-]*%[\s\w-]*$`)

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if _, skip := skipDirs[info.Name()]; skip {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, ".go") && !strings.HasSuffix(path, "_test.go") {
			content, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			lines := strings.Split(string(content), "\n")
			for i, line := range lines {
				matches := re.FindAllStringSubmatch(line, -1)
				for _, match := range matches {
					if len(match) < 4 {
						continue
					}
					funcName := match[2]
					literal := match[3]

					if _, isBlacklisted := blacklist[funcName]; isBlacklisted {
						continue
					}

					// Heuristics to filter out false positives.
					if _, exists := allKeys[literal]; exists {
						continue
					}
					if keyRe.MatchString(literal) {
						continue
					}
					if len(literal) < 4 {
						continue
					}
					if strings.HasPrefix(literal, "file:") || strings.HasPrefix(literal, "http") {
						continue
					}

					upperLiteral := strings.ToUpper(literal)
					sqlKeywords := []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "TRUNCATE ", "PRAGMA ", "CREATE ", "ALTER ", "DROP "}
					isSQL := false
					for _, keyword := range sqlKeywords {
						if strings.HasPrefix(upperLiteral, keyword) {
							isSQL = true
							break
						}
					}
					if isSQL {
						continue
					}

					// Go time layout strings.
					if strings.HasPrefix(literal, "2006-") {
						continue
					}

					// All-caps audit action constants (e.g. SITEMAP_GENERATE).
					if reAllCaps.MatchString(literal) {
						continue
					}

					if reFormatString.MatchString(literal) && !strings.Contains(literal, " ") {
						continue
					}

					untranslated[literal] = append(untranslated[literal], Location{Filepath: path, Line: i + 1})
				}
			}
		}
		return nil
	})

	return untranslated, err
}

// loadKeysFromLocale reads a YAML file and returns a flat map of its keys.
func loadKeysFromLocale(path string) (map[string]struct{}, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var data map[string]interface{}
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, err
	}

	keys := make(map[string]struct{})
	flattenYAML("", data, keys)
	return keys, nil
}

// flattenYAML converts a nested map into a flat map with dot-separated keys.
func flattenYAML(prefix string, node interface{}, keys map[string]struct{}) {
	switch v := node.(type) {
	case map[string]interface{}:
		for k, val := range v {
			newPrefix := k
			if prefix != "" {
				newPrefix = prefix + "." + k
			}
			flattenYAML(newPrefix, val, keys)
		}
	case []interface{}:
		for i, val := range v {
			newPrefix := fmt.Sprintf("%s[%d]", prefix, i)
			flattenYAML(newPrefix, val, keys)
		}
	default:
		if prefix != "" {
			keys[prefix] = struct{}{}
		}
	}
}
