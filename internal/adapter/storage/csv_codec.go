package storage

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/rl1809/shoe-inventory/internal/core/domain"
)

// readShoes parses a header line followed by one record per line. Each line
// is decoded on its own, so an unbalanced quote cannot run into the next
// record. Parsing stops at the first malformed line; the records before it
// are returned.
func readShoes(r io.Reader) ([]domain.Shoe, error) {
	scanner := bufio.NewScanner(r)

	var shoes []domain.Shoe
	header := true
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		if header {
			header = false
			continue
		}

		shoe, err := decodeRow(text)
		if err != nil {
			return shoes, &domain.LineError{Line: line, Err: err}
		}
		shoes = append(shoes, shoe)
	}
	if err := scanner.Err(); err != nil {
		return shoes, fmt.Errorf("%w: %w", domain.ErrFileIO, err)
	}
	return shoes, nil
}

func writeShoes(w io.Writer, shoes []domain.Shoe) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(domain.Header); err != nil {
		return err
	}
	for _, shoe := range shoes {
		if err := writer.Write(shoe.Fields()); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// encodeRow renders one record without the trailing newline.
func encodeRow(shoe domain.Shoe) (string, error) {
	var b strings.Builder
	writer := csv.NewWriter(&b)
	if err := writer.Write(shoe.Fields()); err != nil {
		return "", err
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return strings.TrimSuffix(b.String(), "\n"), nil
}

// decodeRow reads one CSV-escaped record. A legacy row whose quotes do not
// parse as CSV falls back to a plain comma split with the quotes kept.
func decodeRow(row string) (domain.Shoe, error) {
	fields, err := newReader(strings.NewReader(row)).Read()
	if (err != nil || len(fields) != len(domain.Header)) && strings.Contains(row, `"`) {
		if plain := strings.Split(row, ","); len(plain) == len(domain.Header) {
			fields, err = plain, nil
		}
	}
	if err != nil {
		return domain.Shoe{}, fmt.Errorf("%w: %w", domain.ErrMalformedField, err)
	}
	return domain.ParseShoe(fields)
}

// newReader accepts the legacy unquoted format: stray quotes inside a field
// are kept literally and the field count is checked by domain.ParseShoe.
func newReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	return reader
}
