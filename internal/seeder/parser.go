package seeder

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/NoraMoser/exploring/internal/config"
	"github.com/NoraMoser/exploring/internal/model"
)

// Parser reads a REST-Countries-shaped JSON dump, either plain or inside a zip archive
type Parser struct {
	dumpPath string
	skipped  int
}

// NewParser creates a new parser instance with config
func NewParser(seederCfg config.SeederConfig) *Parser {
	return &Parser{dumpPath: seederCfg.DumpPath}
}

// Skipped returns how many records the last parse dropped
func (p *Parser) Skipped() int {
	return p.skipped
}

// ParseCountries parses the dump. Records without a code or a common name are skipped.
func (p *Parser) ParseCountries() ([]model.Country, error) {
	if strings.HasSuffix(strings.ToLower(p.dumpPath), ".zip") {
		return p.parseCountriesFromZip(p.dumpPath)
	}

	file, err := os.Open(p.dumpPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", p.dumpPath, err)
	}
	defer file.Close()

	return p.parseCountriesFromReader(file)
}

func (p *Parser) parseCountriesFromZip(zipPath string) ([]model.Country, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open zip: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		if strings.HasSuffix(f.Name, ".json") {
			rc, err := f.Open()
			if err != nil {
				return nil, fmt.Errorf("failed to open file in zip: %w", err)
			}
			defer rc.Close()
			return p.parseCountriesFromReader(rc)
		}
	}

	return nil, fmt.Errorf("no json file found in zip")
}

// parseCountriesFromReader decodes the top-level array one element at a time
func (p *Parser) parseCountriesFromReader(reader io.Reader) ([]model.Country, error) {
	p.skipped = 0
	dec := json.NewDecoder(reader)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to read dump: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, fmt.Errorf("dump must be a JSON array, got %v", tok)
	}

	var countries []model.Country
	seen := make(map[string]bool)
	for dec.More() {
		var c model.Country
		if err := dec.Decode(&c); err != nil {
			return nil, fmt.Errorf("failed to decode country #%d: %w", len(countries)+p.skipped+1, err)
		}

		code := strings.ToUpper(strings.TrimSpace(c.CCA3))
		if code == "" || strings.TrimSpace(c.Name.Common) == "" || seen[code] {
			p.skipped++
			continue
		}
		c.CCA3 = code
		seen[code] = true
		countries = append(countries, c)
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("failed to read end of dump: %w", err)
	}

	return countries, nil
}
