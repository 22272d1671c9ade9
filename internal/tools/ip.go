package tools

import (
	"io"

	"github.com/tbckr/lookupkit/internal/output"
)

// IPResult is the payload of the ip tool.
type IPResult struct {
	rawPayload
	IP          Text `json:"ip"`
	Hostname    Text `json:"hostname"`
	City        Text `json:"city"`
	Region      Text `json:"region"`
	Country     Text `json:"country"`
	CountryCode Text `json:"country_code"`
	Postal      Text `json:"postal"`
	Latitude    Text `json:"latitude"`
	Longitude   Text `json:"longitude"`
	Timezone    Text `json:"timezone"`
	ISP         Text `json:"isp"`
	Org         Text `json:"org"`
	ASN         Text `json:"asn"`
}

// IsEmpty returns true when no location or network field is set.
func (r *IPResult) IsEmpty() bool {
	for _, f := range r.fields()[1:] {
		if f.Value != "" {
			return false
		}
	}
	return true
}

func (r *IPResult) fields() []output.Field {
	location := ""
	if r.Latitude != "" && r.Longitude != "" {
		location = r.Latitude.String() + ", " + r.Longitude.String()
	}
	country := r.Country.String()
	if r.CountryCode != "" {
		if country == "" {
			country = r.CountryCode.String()
		} else {
			country += " (" + r.CountryCode.String() + ")"
		}
	}
	return []output.Field{
		{Label: "IP", Value: r.IP.String()},
		{Label: "Hostname", Value: r.Hostname.String()},
		{Label: "City", Value: r.City.String()},
		{Label: "Region", Value: r.Region.String()},
		{Label: "Country", Value: country},
		{Label: "Postal", Value: r.Postal.String()},
		{Label: "Location", Value: location},
		{Label: "Timezone", Value: r.Timezone.String()},
		{Label: "ISP", Value: r.ISP.String()},
		{Label: "Org", Value: r.Org.String()},
		{Label: "ASN", Value: r.ASN.String()},
	}
}

// WriteTable writes a Field/Value table to w.
func (r *IPResult) WriteTable(w io.Writer) error {
	return output.WriteFieldTable(w, r.fields())
}

// WritePlain writes one "Field: value" line per populated field.
func (r *IPResult) WritePlain(w io.Writer) error {
	return output.WriteFieldLines(w, r.fields())
}
