// Package prompts loads the generation prompts and their localized labels.
// Prompt files are flat JSON objects embedded at compile time; keys are prefixed with the locale.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"
	"text/template"

	"github.com/jonathan/nutriplan/internal/types"
)

//go:embed *.json
var promptFiles embed.FS

var (
	cacheMu sync.RWMutex
	cache   = make(map[string]map[string]string)
)

// Get returns the entry stored under key in filename (e.g. "nutrition.json").
func Get(filename, key string) (string, error) {
	entries, err := load(filename)
	if err != nil {
		return "", err
	}

	prompt, ok := entries[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return prompt, nil
}

// GetLocalized retrieves "<locale>.<key>", falling back to the English entry.
func GetLocalized(filename string, locale types.Locale, key string) (string, error) {
	prompt, err := Get(filename, string(locale)+"."+key)
	if err == nil || locale == types.LocaleEnglish {
		return prompt, err
	}
	return Get(filename, string(types.LocaleEnglish)+"."+key)
}

// Render executes a prompt template such as "Age: {{.Age}}" against data.
// A placeholder without a value is an error.
func Render(prompt string, data map[string]string) (string, error) {
	tmpl, err := template.New("prompt").Option("missingkey=error").Parse(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to parse prompt template: %w", err)
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}
	return sb.String(), nil
}

// Keys returns the sorted keys of a prompt file.
func Keys(filename string) ([]string, error) {
	entries, err := load(filename)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys, nil
}

// ClearCache drops every parsed file.
func ClearCache() {
	cacheMu.Lock()
	cache = make(map[string]map[string]string)
	cacheMu.Unlock()
}

func load(filename string) (map[string]string, error) {
	cacheMu.RLock()
	entries, ok := cache[filename]
	cacheMu.RUnlock()
	if ok {
		return entries, nil
	}

	data, err := promptFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	cacheMu.Lock()
	cache[filename] = entries
	cacheMu.Unlock()
	return entries, nil
}
