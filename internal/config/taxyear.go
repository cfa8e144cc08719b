package config

import (
	"fmt"
	"os"

	"github.com/finbr/brcalc/internal/calculation"
	"github.com/finbr/brcalc/internal/domain"
	"gopkg.in/yaml.v3"
)

// TaxYearLoader handles parsing of tax-year table files
type TaxYearLoader struct{}

// NewTaxYearLoader creates a new tax-year loader
func NewTaxYearLoader() *TaxYearLoader {
	return &TaxYearLoader{}
}

// LoadFromFile loads a tax year from a YAML file and validates it
func (l *TaxYearLoader) LoadFromFile(filename string) (*domain.TaxYearConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	cfg, err := l.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return cfg, nil
}

// Parse decodes and validates a tax year from YAML bytes
func (l *TaxYearLoader) Parse(data []byte) (*domain.TaxYearConfig, error) {
	var cfg domain.TaxYearConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := l.Validate(&cfg); err != nil {
		return nil, fmt.Errorf("tax year validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks the metadata and every table of cfg
func (l *TaxYearLoader) Validate(cfg *domain.TaxYearConfig) error {
	if cfg.Metadata.Year < 2000 || cfg.Metadata.Year > 2100 {
		return domain.NewValidationError("metadata.year", "year %d out of range", cfg.Metadata.Year)
	}
	return calculation.ValidateTaxYear(*cfg)
}

// LoadOrDefault loads filename, or returns the compiled-in 2024 tables when
// filename is empty.
func (l *TaxYearLoader) LoadOrDefault(filename string) (*domain.TaxYearConfig, error) {
	if filename == "" {
		cfg := domain.DefaultTaxYear2024()
		return &cfg, nil
	}
	return l.LoadFromFile(filename)
}

// Marshal renders cfg as YAML, in the same layout LoadFromFile reads.
func (l *TaxYearLoader) Marshal(cfg domain.TaxYearConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to render YAML: %w", err)
	}
	return data, nil
}
