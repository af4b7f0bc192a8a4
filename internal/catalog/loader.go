package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/terra-clan/catalogue-browser/internal/models"
)

var (
	ErrDuplicateCourse = errors.New("duplicate course id")
	ErrUnknownFormat   = errors.New("unknown catalogue format")
)

// LoadFromFile loads a catalogue from a single JSON or YAML file.
// The file holds one ordered sequence of courses.
func LoadFromFile(path string) ([]models.Course, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var courses []models.Course
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &courses); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &courses); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}

	if err := Validate(courses); err != nil {
		return nil, err
	}

	slog.Info("catalogue file loaded", "path", path, "courses", len(courses))
	return courses, nil
}

// LoadFromDir loads every catalogue file in dir and concatenates them
// in lexical file order. Unreadable files are skipped with a warning.
func LoadFromDir(dir string) ([]models.Course, error) {
	slog.Info("loading catalogue from directory", "dir", dir)

	var files []string
	for _, pattern := range []string{"*.json", "*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			continue
		}
		files = append(files, matches...)
	}
	sort.Strings(files)

	var all []models.Course
	for _, file := range files {
		courses, err := LoadFromFile(file)
		if err != nil {
			slog.Warn("failed to load catalogue file", "file", file, "error", err)
			continue
		}
		all = append(all, courses...)
	}

	if err := Validate(all); err != nil {
		return nil, err
	}
	return all, nil
}

// Load loads a catalogue from path, which may be a file or a directory
func Load(path string) ([]models.Course, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat catalogue path: %w", err)
	}
	if info.IsDir() {
		return LoadFromDir(path)
	}
	return LoadFromFile(path)
}

// Validate checks catalogue-wide invariants that a single record cannot
func Validate(courses []models.Course) error {
	seen := make(map[int]struct{}, len(courses))
	for _, c := range courses {
		if _, ok := seen[c.ID]; ok {
			return fmt.Errorf("%w: %d", ErrDuplicateCourse, c.ID)
		}
		seen[c.ID] = struct{}{}

		if c.Title == "" {
			return fmt.Errorf("course %d: title is required", c.ID)
		}
	}
	return nil
}
