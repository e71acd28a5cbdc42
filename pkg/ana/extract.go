package ana

import (
	"fmt"

	"github.com/beevik/etree"
)

// Record is one matched row element: child element tag to verbatim text.
type Record map[string]string

// Field is a child element read from every matched row element.
type Field struct {
	Name     string
	Optional bool
}

// Extract parses body and reads fields from every element matching path, in
// document order. A required field absent from an element is a *FieldError;
// an optional one is recorded as an empty string.
func Extract(body []byte, path string, fields []Field) ([]Record, error) {
	doc, err := parseDocument(body)
	if err != nil {
		return nil, err
	}
	return extractRecords(doc, path, fields)
}

func extractRecords(doc *etree.Document, path string, fields []Field) ([]Record, error) {
	p, err := etree.CompilePath(path)
	if err != nil {
		return nil, fmt.Errorf("compile element path %q: %w", path, err)
	}

	elements := doc.FindElementsPath(p)
	records := make([]Record, 0, len(elements))
	for i, el := range elements {
		rec, err := readRecord(el, i, fields)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func readRecord(el *etree.Element, row int, fields []Field) (Record, error) {
	rec := make(Record, len(fields))
	for _, f := range fields {
		child := el.SelectElement(f.Name)
		if child == nil {
			if f.Optional {
				rec[f.Name] = ""
				continue
			}
			return nil, &FieldError{Element: el.Tag, Field: f.Name, Row: row}
		}
		rec[f.Name] = child.Text()
	}
	return rec, nil
}

