package model

// ListRequest represents the parameters for the countries list
type ListRequest struct {
	Query         string
	PreviousQuery *string
	Page          int
	PageSize      int
}

// ListView is one derived page of the sorted, filtered country list
type ListView struct {
	Query       string       `json:"query"`
	Rows        []CountryRow `json:"rows"`
	Total       int          `json:"total"`
	Page        int          `json:"page"`
	PageCount   int          `json:"page_count"`
	PageSize    int          `json:"page_size"`
	HasPrevious bool         `json:"has_previous"`
	HasNext     bool         `json:"has_next"`
	Empty       bool         `json:"empty"`
}

// CountryRow is a single line of the countries table
type CountryRow struct {
	Code         string `json:"code"`
	CommonName   string `json:"common_name"`
	OfficialName string `json:"official_name"`
}

// CountryDetail is the display model of the detail page
type CountryDetail struct {
	Code         string   `json:"code"`
	CommonName   string   `json:"common_name"`
	OfficialName string   `json:"official_name"`
	Flag         Image    `json:"flag"`
	CoatOfArms   Image    `json:"coat_of_arms"`
	Capital      string   `json:"capital"`
	Region       string   `json:"region"`
	Subregion    string   `json:"subregion"`
	Continents   string   `json:"continents"`
	Languages    string   `json:"languages"`
	Population   string   `json:"population"`
	Area         string   `json:"area"`
	Currencies   []string `json:"currencies"`
	Timezones    string   `json:"timezones"`
	CallingCode  string   `json:"calling_code"`
	Map          *MapView `json:"map,omitempty"`
}

// MapView describes a map centered on a country with a single marker
type MapView struct {
	Center      Coordinate `json:"center"`
	Zoom        int        `json:"zoom"`
	TileURL     string     `json:"tile_url"`
	Attribution string     `json:"attribution"`
	Popup       string     `json:"popup"`
	ExternalURL string     `json:"external_url,omitempty"`
}

// Coordinate represents geographic coordinates
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}
