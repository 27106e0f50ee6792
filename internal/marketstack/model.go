package marketstack

// Bar represents one raw price observation as returned by Marketstack for
// one symbol. Dates arrive as strings ("2024-01-02T00:00:00+0000" for EOD,
// full timestamps for intraday) and are parsed during normalization, not
// here: the adapter returns bars exactly as the provider sent them.
type Bar struct {
	Date     string  `json:"date"`
	Symbol   string  `json:"symbol"`
	Exchange string  `json:"exchange"`
	Open     float64 `json:"open"`
	High     float64 `json:"high"`
	Low      float64 `json:"low"`
	Close    float64 `json:"close"`
	Volume   float64 `json:"volume"`
}

// envelope is the common Marketstack response wrapper. The error field is
// only present when the provider rejected the request at the API level
// despite a successful transport response.
type envelope struct {
	Data  []Bar          `json:"data"`
	Error *providerError `json:"error"`
}

// providerError is the error object Marketstack embeds in a response payload.
type providerError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
