package task

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/natefinch/atomic"
)

const (
	dirPerms  = 0o750
	filePerms = 0o600
)

// tagSeparator joins tags inside the single tags column. Tags that contain
// it are quoted CSV-style within the column.
const tagSeparator = ';'

// Column order of a task record.
const (
	colID = iota
	colDescription
	colStatus
	colDue
	colPriority
	colTags
	numColumns
)

var header = []string{"id", "description", "status", "due", "priority", "tags"}

// Load reads the task file at path. A missing file yields an empty store.
// A header row (first field "id") and empty records are skipped.
func Load(path string) (*Store, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewStore(), nil
		}

		return nil, fmt.Errorf("opening task file: %w", err)
	}

	defer func() { _ = file.Close() }()

	tasks, err := readTasks(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return NewStore(tasks...), nil
}

func readTasks(r io.Reader) ([]Task, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var tasks []Task

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return tasks, nil
		}

		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
		}

		if isBlankRecord(record) || record[colID] == header[colID] {
			continue
		}

		line, _ := reader.FieldPos(0)

		t, err := parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrMalformedRecord, line, err)
		}

		tasks = append(tasks, t)
	}
}

func isBlankRecord(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}

	return true
}

func parseRecord(record []string) (Task, error) {
	if len(record) != numColumns {
		return Task{}, fmt.Errorf("want %d fields, got %d", numColumns, len(record))
	}

	id, err := strconv.Atoi(record[colID])
	if err != nil || id <= 0 {
		return Task{}, fmt.Errorf("invalid id %q", record[colID])
	}

	status, err := ParseStatus(record[colStatus])
	if err != nil {
		return Task{}, err
	}

	due, err := ParseDate(record[colDue])
	if err != nil {
		return Task{}, err
	}

	priority, err := ParsePriority(record[colPriority])
	if err != nil {
		return Task{}, err
	}

	tags, err := decodeTags(record[colTags])
	if err != nil {
		return Task{}, err
	}

	return Task{
		ID:          id,
		Description: record[colDescription],
		Tags:        tags,
		Due:         due,
		Priority:    priority,
		Status:      status,
	}, nil
}

func formatRecord(t Task) ([]string, error) {
	tags, err := encodeTags(t.Tags)
	if err != nil {
		return nil, err
	}

	return []string{
		strconv.Itoa(t.ID),
		t.Description,
		t.Status.String(),
		t.Due.Format(DateLayout),
		t.Priority.String(),
		tags,
	}, nil
}

// encodeTags writes tags as one tagSeparator-delimited CSV line.
func encodeTags(tags []string) (string, error) {
	if len(tags) == 0 {
		return "", nil
	}

	var buf strings.Builder

	writer := csv.NewWriter(&buf)
	writer.Comma = tagSeparator

	err := writer.Write(tags)
	if err != nil {
		return "", fmt.Errorf("encoding tags: %w", err)
	}

	writer.Flush()

	err = writer.Error()
	if err != nil {
		return "", fmt.Errorf("encoding tags: %w", err)
	}

	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func decodeTags(field string) ([]string, error) {
	if field == "" {
		return nil, nil
	}

	reader := csv.NewReader(strings.NewReader(field))
	reader.Comma = tagSeparator

	tags, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("invalid tags %q: %w", field, err)
	}

	return tags, nil
}

// Save replaces the task file at path with the contents of s.
// The file is written atomically; parent directories are created as needed.
func Save(path string, s *Store) error {
	var buf bytes.Buffer

	writer := csv.NewWriter(&buf)

	err := writer.Write(header)
	if err != nil {
		return fmt.Errorf("encoding header: %w", err)
	}

	for _, t := range s.tasks {
		record, recordErr := formatRecord(t)
		if recordErr != nil {
			return fmt.Errorf("encoding task %d: %w", t.ID, recordErr)
		}

		err = writer.Write(record)
		if err != nil {
			return fmt.Errorf("encoding task %d: %w", t.ID, err)
		}
	}

	writer.Flush()

	err = writer.Error()
	if err != nil {
		return fmt.Errorf("encoding tasks: %w", err)
	}

	mkdirErr := os.MkdirAll(filepath.Dir(path), dirPerms)
	if mkdirErr != nil {
		return fmt.Errorf("creating data directory: %w", mkdirErr)
	}

	writeErr := atomic.WriteFile(path, &buf)
	if writeErr != nil {
		return fmt.Errorf("writing task file: %w", writeErr)
	}

	// atomic.WriteFile doesn't set permissions for new files
	chmodErr := os.Chmod(path, filePerms)
	if chmodErr != nil {
		return fmt.Errorf("setting task file permissions: %w", chmodErr)
	}

	return nil
}
