// Package dto defines data transfer objects for the Yahoo Finance API responses.
package dto

// SearchResponse represents the JSON response from the Yahoo Finance search endpoint.
type SearchResponse struct {
	Quotes []struct {
		Symbol    string `json:"symbol"`
		ShortName string `json:"shortname"`
		LongName  string `json:"longname"`
		Exchange  string `json:"exchange"`
		QuoteType string `json:"quoteType"`
	} `json:"quotes"`
	News []struct {
		Title string `json:"title"`
		Link  string `json:"link"`
	} `json:"news"`
}
