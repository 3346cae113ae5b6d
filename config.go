package salesbook

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/kelseyhightower/envconfig"
)

// Config locates the backing file and the table layout inside it. It is an
// explicit value passed to the store at construction, never ambient state.
//
// Rows are 1-based file row numbers: row 1 is the header, [DataStartRow,
// DataEndRow] is the data region, and SummaryRow holds the aggregates.
type Config struct {
	FilePath     string `json:"file_path" envconfig:"SALESBOOK_FILE"`
	TableName    string `json:"table_name" envconfig:"SALESBOOK_TABLE"`
	DataStartRow int    `json:"data_start_row" envconfig:"SALESBOOK_DATA_START"`
	DataEndRow   int    `json:"data_end_row" envconfig:"SALESBOOK_DATA_END"`
	SummaryRow   int    `json:"summary_row" envconfig:"SALESBOOK_SUMMARY"`
}

// DefaultConfig mirrors the historical layout: 998 data rows (2..999) and the
// summary on row 1000.
func DefaultConfig() Config {
	return Config{
		FilePath:     "salesbook.csv",
		TableName:    "sales",
		DataStartRow: 2,
		DataEndRow:   999,
		SummaryRow:   1000,
	}
}

// Capacity returns the number of slots in the data region.
func (c Config) Capacity() int { return c.DataEndRow - c.DataStartRow + 1 }

// Validate checks the region layout for consistency.
func (c Config) Validate() error {
	if c.FilePath == "" {
		return fmt.Errorf("config: file path must not be empty")
	}
	if c.DataStartRow < 2 {
		return fmt.Errorf("config: data region cannot start before row 2 (row 1 is the header), got %d", c.DataStartRow)
	}
	if c.DataEndRow < c.DataStartRow {
		return fmt.Errorf("config: data region end %d before start %d", c.DataEndRow, c.DataStartRow)
	}
	if c.SummaryRow <= c.DataEndRow {
		return fmt.Errorf("config: summary row %d must be beyond the data region ending at %d", c.SummaryRow, c.DataEndRow)
	}
	return nil
}

// LoadConfig resolves the configuration: defaults, then the JSON config file
// if it exists, then SALESBOOK_* environment overrides. A missing config
// file is not an error; it is created on the first SaveConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// first run, keep defaults
	case err != nil:
		return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
	default:
		if err := json.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("could not parse config file %q: %w", path, err)
		}
	}

	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("could not process environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// SaveConfig persists the configuration as indented JSON.
func SaveConfig(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal config: %w", err)
	}
	if err := os.WriteFile(path, append(b, '\n'), 0644); err != nil {
		return fmt.Errorf("could not write config file %q: %w", path, err)
	}
	return nil
}
