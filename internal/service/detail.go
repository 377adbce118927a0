package service

import (
	"fmt"
	"html"
	"math"
	"sort"
	"strings"

	"github.com/NoraMoser/exploring/internal/catalog"
	"github.com/NoraMoser/exploring/internal/model"
	"github.com/microcosm-cc/bluemonday"
	"github.com/nyaruka/phonenumbers"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	mapZoom        = 5
	mapTileURL     = "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"
	mapAttribution = `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`
)

var textPolicy = bluemonday.StrictPolicy()

// BuildDetail turns a country record into its display model.
// Every optional field that is absent or empty reads "N/A".
func BuildDetail(c model.Country) model.CountryDetail {
	p := message.NewPrinter(language.English)

	detail := model.CountryDetail{
		Code:         c.CCA3,
		CommonName:   c.Name.Common,
		OfficialName: orNA(c.Name.Official),
		Flag:         c.Flags,
		CoatOfArms:   c.CoatOfArms,
		Capital:      NA,
		Region:       orNA(c.Region),
		Subregion:    orNA(c.Subregion),
		Continents:   joinOrNA(c.Continents),
		Languages:    joinOrNA(sortedValues(c.Languages)),
		Population:   NA,
		Area:         NA,
		Currencies:   currencies(c.Currencies),
		Timezones:    joinOrNA(c.Timezones),
		CallingCode:  callingCode(c),
		Map:          buildMap(c),
	}

	if len(c.Capital) > 0 {
		detail.Capital = orNA(c.Capital[0])
	}
	if c.Population != nil {
		detail.Population = p.Sprintf("%d", *c.Population)
	}
	if c.Area != nil && *c.Area > 0 {
		if *c.Area == math.Trunc(*c.Area) {
			detail.Area = p.Sprintf("%.0f km²", *c.Area)
		} else {
			detail.Area = p.Sprintf("%.2f km²", *c.Area)
		}
	}

	detail.Flag.Alt = cleanText(c.Flags.Alt)
	if detail.Flag.Alt == "" {
		detail.Flag.Alt = "The flag of " + c.Name.Common
	}
	detail.CoatOfArms.Alt = "The coat of arms for the country " + c.Name.Common

	return detail
}

// NA is the fallback text of absent fields
const NA = catalog.NotAvailable

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return NA
	}
	return s
}

func joinOrNA(values []string) string {
	if len(values) == 0 {
		return NA
	}
	return strings.Join(values, ", ")
}

func sortedValues(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for _, v := range m {
		if v != "" {
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

func currencies(m map[string]model.Currency) []string {
	codes := make([]string, 0, len(m))
	for code := range m {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	out := make([]string, 0, len(codes))
	for _, code := range codes {
		cur := m[code]
		name := cur.Name
		if name == "" {
			name = code
		}
		if cur.Symbol != "" {
			out = append(out, fmt.Sprintf("%s (%s)", name, cur.Symbol))
		} else {
			out = append(out, name)
		}
	}
	if len(out) == 0 {
		return []string{NA}
	}
	return out
}

// callingCode prefers the idd data and falls back to libphonenumber's region table.
// A root shared by many suffixes (e.g. +1) is shown without a suffix.
func callingCode(c model.Country) string {
	if c.IDD.Root != "" {
		if len(c.IDD.Suffixes) == 1 {
			return c.IDD.Root + c.IDD.Suffixes[0]
		}
		return c.IDD.Root
	}
	if c.CCA2 != "" {
		if code := phonenumbers.GetCountryCodeForRegion(strings.ToUpper(c.CCA2)); code > 0 {
			return fmt.Sprintf("+%d", code)
		}
	}
	return NA
}

func buildMap(c model.Country) *model.MapView {
	if len(c.LatLng) < 2 {
		return nil
	}
	capital := NA
	if len(c.Capital) > 0 {
		capital = orNA(c.Capital[0])
	}
	return &model.MapView{
		Center:      model.Coordinate{Lat: c.LatLng[0], Lon: c.LatLng[1]},
		Zoom:        mapZoom,
		TileURL:     mapTileURL,
		Attribution: mapAttribution,
		Popup:       fmt.Sprintf("%s / Capital: %s", c.Name.Common, capital),
		ExternalURL: c.Maps.OpenStreetMaps,
	}
}

// cleanText strips markup from upstream free text. The result is plain text;
// html/template escapes it again on output.
func cleanText(s string) string {
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(s)))
}
