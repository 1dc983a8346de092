package report

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/go-tangra/go-tangra-specs/internal/convert"
	"github.com/go-tangra/go-tangra-specs/internal/record"
	"github.com/go-tangra/go-tangra-specs/internal/store"
)

// Render prints text to out, or writes the report file for any other format.
// It never fails: save errors become a notice on out.
func Render(ctx context.Context, f Format, base string, v record.Value, out io.Writer) {
	if f == FormatText {
		if err := Text(out, v); err != nil {
			fmt.Fprintf(out, "❌ Failed to print report: %v\n", err)
		}
		return
	}
	Save(ctx, f, base, v, out)
}

// Save writes the report to base plus the format's extension, replacing any
// previous file, and prints a success or failure notice to out. It reports
// whether the file was written.
func Save(ctx context.Context, f Format, base string, v record.Value, out io.Writer) bool {
	filename := base + f.Extension()

	if err := save(ctx, f, filename, v); err != nil {
		fmt.Fprintf(out, "❌ Failed to save %s: %v\n", strings.ToUpper(string(f)), err)
		return false
	}
	fmt.Fprintf(out, "✅ Successfully saved to %s\n", filename)
	return true
}

func save(ctx context.Context, f Format, filename string, v record.Value) error {
	switch f {
	case FormatCSV:
		return writeFile(filename, func(w io.Writer) error { return WriteCSV(w, v) })
	case FormatJSON:
		return writeFile(filename, func(w io.Writer) error { return WriteJSON(w, v) })
	case FormatYAML:
		return writeFile(filename, func(w io.Writer) error { return WriteYAML(w, v) })
	case FormatTOML:
		return writeFile(filename, func(w io.Writer) error { return WriteTOML(w, v) })
	case FormatSQLite:
		return replaceFile(filename, func(tmp string) error { return WriteSQLite(ctx, tmp, v) })
	default:
		return fmt.Errorf("format %q cannot be saved to a file", f)
	}
}

// WriteSQLite stores the flattened report in the properties table of the
// database at path and reads the rows back before the file is kept.
func WriteSQLite(ctx context.Context, path string, v record.Value) (err error) {
	db, err := store.New(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close database: %w", cerr)
		}
	}()

	props := convert.RecordToProperties(v)
	if err := db.Replace(ctx, props); err != nil {
		return err
	}

	stored, err := db.List(ctx)
	if err != nil {
		return fmt.Errorf("read back: %w", err)
	}
	if len(stored) != len(props) {
		return fmt.Errorf("read back: stored %d of %d rows", len(stored), len(props))
	}
	return nil
}

// writeFile streams write into a temporary sibling of filename and renames it
// into place once everything is flushed and closed.
func writeFile(filename string, write func(io.Writer) error) error {
	return replaceFile(filename, func(tmp string) (err error) {
		f, err := os.Create(tmp)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()

		bw := bufio.NewWriter(f)
		if err := write(bw); err != nil {
			return err
		}
		return bw.Flush()
	})
}

// replaceFile runs create against a temporary path and renames the result
// over filename. The temporary file is removed on every failure path.
func replaceFile(filename string, create func(tmp string) error) error {
	tmp := fmt.Sprintf("%s.%s.tmp", filename, uuid.NewString())

	if err := create(tmp); err != nil {
		return errors.Join(err, removeIfExists(tmp))
	}
	if err := os.Rename(tmp, filename); err != nil {
		return errors.Join(err, removeIfExists(tmp))
	}
	return nil
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
