// Package shell implements the interactive menu surface. It is glue
// around the record service: every prompt failure is recoverable and
// re-prompts, and the session ends on the exit option or EOF.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/farmtech/fieldbook/internal/apperr"
	"github.com/farmtech/fieldbook/internal/catalog"
	"github.com/farmtech/fieldbook/internal/field"
	"github.com/farmtech/fieldbook/internal/fieldsvc"
)

// Shell drives one interactive session over the given streams.
type Shell struct {
	in  *bufio.Scanner
	out io.Writer
	svc *fieldsvc.Service
	cat *catalog.Catalog
}

// New creates a shell reading from in and writing to out.
func New(in io.Reader, out io.Writer, svc *fieldsvc.Service, cat *catalog.Catalog) *Shell {
	return &Shell{
		in:  bufio.NewScanner(in),
		out: out,
		svc: svc,
		cat: cat,
	}
}

// Run loops over the main menu until the user exits or input ends.
func (s *Shell) Run(ctx context.Context) error {
	for ctx.Err() == nil {
		s.printMenu()
		choice, err := s.readLine("Enter your choice (1-7): ")
		if err != nil {
			return s.sessionErr(err)
		}

		switch strings.TrimSpace(choice) {
		case "1":
			err = s.enter()
		case "2":
			s.display()
		case "3":
			err = s.update()
		case "4":
			err = s.delete()
		case "5":
			s.export()
		case "6":
			err = s.importCSV()
		case "7":
			fmt.Fprintln(s.out, "Exiting the program. Goodbye!")
			return nil
		default:
			fmt.Fprintln(s.out, "Invalid choice. Please try again.")
		}
		if err != nil {
			return s.sessionErr(err)
		}
	}
	return nil
}

// sessionErr maps end-of-input to a clean session end.
func (s *Shell) sessionErr(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (s *Shell) printMenu() {
	fmt.Fprintln(s.out, "\n--- FieldBook Menu ---")
	fmt.Fprintln(s.out, "1. Enter crop data")
	fmt.Fprintln(s.out, "2. Display crop data")
	fmt.Fprintln(s.out, "3. Update crop data")
	fmt.Fprintln(s.out, "4. Delete crop data")
	fmt.Fprintln(s.out, "5. Export data to CSV")
	fmt.Fprintln(s.out, "6. Import data from CSV")
	fmt.Fprintln(s.out, "7. Exit")
}

func (s *Shell) enter() error {
	rec, err := s.enterRecord()
	if err != nil {
		return err
	}
	s.svc.Add(rec)
	fmt.Fprintln(s.out, "Data added successfully.")
	return nil
}

// enterRecord walks through the full record prompt flow: crop type by
// catalog index, dimensions, row count, then one per-hectare amount per
// input kind in catalog order (0 skips the kind).
func (s *Shell) enterRecord() (field.Record, error) {
	crops := s.cat.CropTypes()
	fmt.Fprintln(s.out, "\nSelect crop type:")
	for i, crop := range crops {
		fmt.Fprintf(s.out, "%d. %s\n", i+1, crop)
	}
	choice, err := s.promptChoice("Enter the number of your choice: ", len(crops))
	if err != nil {
		return field.Record{}, err
	}
	cropType := crops[choice-1]

	length, err := s.promptFloat("Enter field length (in meters): ", false)
	if err != nil {
		return field.Record{}, err
	}
	width, err := s.promptFloat("Enter field width (in meters): ", false)
	if err != nil {
		return field.Record{}, err
	}
	numRows, err := s.promptNonNegativeInt("Enter the number of rows in the field: ")
	if err != nil {
		return field.Record{}, err
	}

	rec, err := field.NewRecord(cropType, length, width, numRows)
	if err != nil {
		return field.Record{}, err
	}

	kinds, err := s.cat.Kinds(cropType)
	if err != nil {
		return field.Record{}, err
	}
	fmt.Fprintln(s.out, "\nEnter the quantity for each input (or 0 to skip):")
	for kind := kinds.Oldest(); kind != nil; kind = kind.Next() {
		prompt := fmt.Sprintf("%s (%s) in %s per hectare: ", kind.Key, kind.Value.Name, kind.Value.Unit)
		amount, err := s.promptFloat(prompt, true)
		if err != nil {
			return field.Record{}, err
		}
		if err := rec.AddInput(kind.Key, kind.Value, amount); err != nil {
			return field.Record{}, err
		}
	}
	return rec, nil
}

func (s *Shell) display() {
	records := s.svc.Records()
	if len(records) == 0 {
		fmt.Fprintln(s.out, "No data available.")
		return
	}
	for i, rec := range records {
		fmt.Fprintf(s.out, "\nCrop %d:\n", i+1)
		fmt.Fprintf(s.out, "Type: %s\n", rec.Type)
		fmt.Fprintf(s.out, "Field dimensions: %gm x %gm\n", rec.Length, rec.Width)
		fmt.Fprintf(s.out, "Area: %.2f ha\n", rec.Area)
		fmt.Fprintf(s.out, "Number of rows: %d\n", rec.NumRows)
		fmt.Fprintln(s.out, "Input Management:")
		for pair := rec.Inputs.Oldest(); pair != nil; pair = pair.Next() {
			m := pair.Value
			fmt.Fprintf(s.out, "  %s (%s):\n", pair.Key, m.Name)
			fmt.Fprintf(s.out, "    Amount per hectare: %.2f %s\n", m.AmountPerHa, m.Unit)
			fmt.Fprintf(s.out, "    Total amount needed: %.2f %s\n", m.TotalAmount, m.Unit)
		}
	}
}

func (s *Shell) update() error {
	if s.svc.Len() == 0 {
		fmt.Fprintln(s.out, "No data available to update.")
		return nil
	}
	index, err := s.promptInt("Enter the index of the crop to update: ")
	if err != nil {
		return err
	}
	if index < 1 || index > s.svc.Len() {
		fmt.Fprintln(s.out, "Invalid index.")
		return nil
	}
	rec, err := s.enterRecord()
	if err != nil {
		return err
	}
	if err := s.svc.UpdateAt(index, rec); err != nil {
		if errors.Is(err, apperr.ErrIndexOutOfRange) {
			fmt.Fprintln(s.out, "Invalid index.")
			return nil
		}
		return err
	}
	fmt.Fprintln(s.out, "Data updated successfully.")
	return nil
}

func (s *Shell) delete() error {
	if s.svc.Len() == 0 {
		fmt.Fprintln(s.out, "No data available to delete.")
		return nil
	}
	index, err := s.promptInt("Enter the index of the crop to delete: ")
	if err != nil {
		return err
	}
	if err := s.svc.DeleteAt(index); err != nil {
		if errors.Is(err, apperr.ErrIndexOutOfRange) {
			fmt.Fprintln(s.out, "Invalid index.")
			return nil
		}
		return err
	}
	fmt.Fprintln(s.out, "Data deleted successfully.")
	return nil
}

func (s *Shell) export() {
	file, n, err := s.svc.Export()
	switch {
	case errors.Is(err, apperr.ErrNoData):
		fmt.Fprintln(s.out, "No data available to export.")
	case err != nil:
		fmt.Fprintf(s.out, "Error: %v\n", err)
	default:
		fmt.Fprintf(s.out, "Exported %d crops to %s successfully.\n", n, file)
	}
}

func (s *Shell) importCSV() error {
	if files, err := s.svc.ListFiles(); err == nil && len(files) > 0 {
		fmt.Fprintf(s.out, "Available files: %s\n", strings.Join(files, ", "))
	}
	name, err := s.readLine("Enter the name of the CSV file to import: ")
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)

	n, err := s.svc.Import(name)
	switch {
	case err == nil:
		fmt.Fprintf(s.out, "Successfully imported %d crops from %s.\n", n, name)
	case errors.Is(err, os.ErrNotExist):
		fmt.Fprintf(s.out, "File %q not found. Please make sure the file exists and try again.\n", name)
	case errors.Is(err, apperr.ErrMissingColumn):
		fmt.Fprintf(s.out, "Error: Missing column in CSV file. %v\n", err)
	case errors.Is(err, apperr.ErrBadValue):
		fmt.Fprintf(s.out, "Error: Invalid data in CSV file. %v\n", err)
	case errors.Is(err, apperr.ErrUnknownCrop):
		fmt.Fprintf(s.out, "Error: Unknown crop type in CSV file. %v\n", err)
	default:
		fmt.Fprintf(s.out, "Error: %v\n", err)
	}
	return nil
}

// readLine prints prompt and returns the next input line, or io.EOF
// when input has ended.
func (s *Shell) readLine(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.in.Text(), nil
}

// promptInt re-prompts until the user enters a valid integer.
func (s *Shell) promptInt(prompt string) (int, error) {
	for {
		line, err := s.readLine(prompt)
		if err != nil {
			return 0, err
		}
		v, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			fmt.Fprintln(s.out, "Please enter a valid number.")
			continue
		}
		return v, nil
	}
}

// promptNonNegativeInt re-prompts until the user enters an integer >= 0.
func (s *Shell) promptNonNegativeInt(prompt string) (int, error) {
	for {
		v, err := s.promptInt(prompt)
		if err != nil {
			return 0, err
		}
		if v < 0 {
			fmt.Fprintln(s.out, "Please enter a non-negative number.")
			continue
		}
		return v, nil
	}
}

// promptChoice re-prompts until the user picks a 1-based option <= max.
func (s *Shell) promptChoice(prompt string, max int) (int, error) {
	for {
		v, err := s.promptInt(prompt)
		if err != nil {
			return 0, err
		}
		if v < 1 || v > max {
			fmt.Fprintln(s.out, "Invalid choice. Please try again.")
			continue
		}
		return v, nil
	}
}

// promptFloat re-prompts until the user enters a valid number: >= 0
// when allowZero is set, > 0 otherwise.
func (s *Shell) promptFloat(prompt string, allowZero bool) (float64, error) {
	for {
		line, err := s.readLine(prompt)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
		if err != nil {
			fmt.Fprintln(s.out, "Please enter a valid number.")
			continue
		}
		if allowZero && v < 0 {
			fmt.Fprintln(s.out, "Please enter a non-negative number.")
			continue
		}
		if !allowZero && v <= 0 {
			fmt.Fprintln(s.out, "Please enter a positive number.")
			continue
		}
		return v, nil
	}
}
