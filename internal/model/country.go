package model

// Country is one record as returned by the REST Countries v3.1 API
type Country struct {
	Name       CountryName         `json:"name"`
	CCA2       string              `json:"cca2,omitempty"`
	CCA3       string              `json:"cca3"`
	Capital    []string            `json:"capital,omitempty"`
	Region     string              `json:"region,omitempty"`
	Subregion  string              `json:"subregion,omitempty"`
	Population *int64              `json:"population,omitempty"`
	Area       *float64            `json:"area,omitempty"`
	Languages  map[string]string   `json:"languages,omitempty"`
	Currencies map[string]Currency `json:"currencies,omitempty"`
	Timezones  []string            `json:"timezones,omitempty"`
	Continents []string            `json:"continents,omitempty"`
	LatLng     []float64           `json:"latlng,omitempty"`
	Flags      Image               `json:"flags"`
	CoatOfArms Image               `json:"coatOfArms"`
	Maps       Maps                `json:"maps"`
	IDD        IDD                 `json:"idd"`
}

// CountryName holds the display names of a country
type CountryName struct {
	Common   string `json:"common"`
	Official string `json:"official,omitempty"`
}

// Currency describes one currency in use
type Currency struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol,omitempty"`
}

// Image references a flag or coat of arms picture
type Image struct {
	SVG string `json:"svg,omitempty"`
	PNG string `json:"png,omitempty"`
	Alt string `json:"alt,omitempty"`
}

// Maps holds links to external map services
type Maps struct {
	GoogleMaps     string `json:"googleMaps,omitempty"`
	OpenStreetMaps string `json:"openStreetMaps,omitempty"`
}

// IDD is the international direct dialling prefix
type IDD struct {
	Root     string   `json:"root,omitempty"`
	Suffixes []string `json:"suffixes,omitempty"`
}

// Favorite is the reduced projection of a Country kept in a favorites store
type Favorite struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// ToFavorite projects the record onto its favorites entry
func (c Country) ToFavorite() Favorite {
	return Favorite{Code: c.CCA3, Name: c.Name.Common}
}
