// Package storage defines the data-directory abstraction used for CSV
// export and import.
package storage

// Provider is the interface for data file operations.
type Provider interface {
	// Read returns the raw bytes of the file with the given name
	// (relative to the data directory).
	Read(name string) ([]byte, error)
	// Write atomically replaces the file with the given name.
	Write(name string, data []byte) error
	// List returns the names of the .csv files in the data directory.
	List() ([]string, error)
}
