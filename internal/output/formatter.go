package output

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rgehrsitz/salarytax/internal/domain"
)

// Formatter renders a tax breakdown in one output format
type Formatter interface {
	Name() string
	Format(b *domain.TaxBreakdown) ([]byte, error)
}

// FormatterFunc adapts a plain function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(b *domain.TaxBreakdown) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(b *domain.TaxBreakdown) ([]byte, error) { return f.F(b) }

var formatters = map[string]Formatter{
	"console": ConsoleFormatter{},
	"json":    JSONFormatter{},
	"csv":     CSVFormatter{},
	"yaml":    YAMLFormatter{},
}

var formatAliases = map[string]string{
	"text": "console",
	"yml":  "yaml",
}

// GetFormatterByName returns the formatter registered under name or alias,
// or nil when there is none.
func GetFormatterByName(name string) Formatter {
	name = strings.ToLower(strings.TrimSpace(name))
	if target, ok := formatAliases[name]; ok {
		name = target
	}
	return formatters[name]
}

// AvailableFormatterNames lists registered formatter names in sorted order
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for n := range formatters {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists accepted aliases in sorted order
func AvailableFormatAliases() []string {
	aliases := make([]string, 0, len(formatAliases))
	for a := range formatAliases {
		aliases = append(aliases, a)
	}
	sort.Strings(aliases)
	return aliases
}

// WriteFormatted formats b and writes it into dir as
// tax_estimate_<regime>_<timestamp>.<ext>, returning the file path.
func WriteFormatted(dir string, f Formatter, b *domain.TaxBreakdown, ext string) (string, error) {
	data, err := f.Format(b)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}

	name := fmt.Sprintf("tax_estimate_%s_%s.%s", b.Regime, time.Now().Format("20060102_150405"), ext)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
