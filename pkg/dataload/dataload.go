// Package dataload reads message lists from CSV and JSON files.
package dataload

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/entrhq/wasend/pkg/whatsapp"
)

// ErrUnsupportedFormat is returned for files that are neither CSV nor JSON.
var ErrUnsupportedFormat = errors.New("unsupported data file format")

var supported = glob.MustCompile("*.{csv,json}")

// IsValid reports whether path is an existing file with a .csv or .json
// extension.
func IsValid(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	return supported.Match(strings.ToLower(filepath.Base(path)))
}

// Table is a CSV file: the header and one mapping per row, keyed by the
// header fields.
type Table struct {
	Header []string
	Rows   []map[string]string
}

// LoadCSV reads a CSV file whose first line is the header. Short rows leave
// the missing fields empty and extra fields are dropped.
func LoadCSV(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return &Table{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	table := &Table{Header: header}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		row := make(map[string]string, len(header))
		for i, field := range header {
			if i < len(record) {
				row[field] = record[i]
			} else {
				row[field] = ""
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// LoadJSON decodes a JSON file into generic values.
func LoadJSON(path string) (interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return v, nil
}

// LoadMessages reads outgoing messages from a CSV or JSON file.
//
// CSV files use the columns receiver, type, message, path and caption, in
// any case. JSON files hold an array of objects with the same keys. An
// empty type means text.
func LoadMessages(path string) ([]whatsapp.Message, error) {
	if !IsValid(path) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	var raw []rawMessage
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		table, err := LoadCSV(path)
		if err != nil {
			return nil, err
		}
		for _, row := range table.Rows {
			row = foldKeys(row)
			raw = append(raw, rawMessage{
				Receiver: row["receiver"],
				Type:     row["type"],
				Message:  row["message"],
				Path:     row["path"],
				Caption:  row["caption"],
			})
		}
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	messages := make([]whatsapp.Message, 0, len(raw))
	for i, r := range raw {
		msg, err := r.message()
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// foldKeys lower-cases column names, matching the case-insensitive key
// matching encoding/json applies to the JSON form.
func foldKeys(row map[string]string) map[string]string {
	folded := make(map[string]string, len(row))
	for k, v := range row {
		folded[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return folded
}

type rawMessage struct {
	Receiver string `json:"receiver"`
	Type     string `json:"type"`
	Message  string `json:"message"`
	Path     string `json:"path"`
	Caption  string `json:"caption"`
}

func (r rawMessage) message() (whatsapp.Message, error) {
	kind := whatsapp.KindText
	if strings.TrimSpace(r.Type) != "" {
		var err error
		kind, err = whatsapp.ParseMessageKind(r.Type)
		if err != nil {
			return whatsapp.Message{}, err
		}
	}

	return whatsapp.Message{
		Kind:     kind,
		Receiver: strings.TrimSpace(r.Receiver),
		Text:     r.Message,
		Path:     r.Path,
		Caption:  r.Caption,
	}, nil
}
