package internal

import (
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app"`
	Catalog CatalogConfig     `yaml:"catalog"`
	Data    DataConfig        `yaml:"data"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Catalog.Validate(); err != nil {
		return err
	}
	return c.Data.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
}

// CatalogConfig holds the path to the crop input catalog document.
type CatalogConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the catalog configuration.
func (c *CatalogConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// DataConfig holds the data directory and the export file name.
//
// Dir is created at startup if it does not exist. ExportFile is the
// name, inside Dir, that the export operation overwrites wholesale;
// import files are resolved inside Dir as well.
type DataConfig struct {
	Dir        string `yaml:"dir"`
	ExportFile string `yaml:"export_file"`
}

// Validate validates the data configuration.
func (c *DataConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Dir, validation.Required),
		validation.Field(&c.ExportFile, validation.Required, validation.By(csvName)),
	)
}

func csvName(value interface{}) error {
	name, _ := value.(string)
	if name != "" && !strings.HasSuffix(name, ".csv") {
		return validation.NewError("validation_csv_name", "must be a .csv file name")
	}
	return nil
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
		},
		Catalog: CatalogConfig{
			Path: "config/catalog.yaml",
		},
		Data: DataConfig{
			Dir:        "./data",
			ExportFile: "crop_data.csv",
		},
	}
}
