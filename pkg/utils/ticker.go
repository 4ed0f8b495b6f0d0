// Package utils provides small shared helpers for ticker symbols and
// time series timestamps.
package utils

import "strings"

// marketSuffixes maps tickers that trade on non-US exchanges to the
// Yahoo Finance suffix for their home market. US-listed tickers need
// no suffix and are queried as-is.
var marketSuffixes = map[string]string{
	// NSE (India)
	"RELIANCE":   ".NS",
	"TCS":        ".NS",
	"INFY":       ".NS",
	"HDFCBANK":   ".NS",
	"ICICIBANK":  ".NS",
	"SBIN":       ".NS",
	"BHARTIARTL": ".NS",
	"TATAMOTORS": ".NS",
	"WIPRO":      ".NS",
	// LSE (UK)
	"BP":    ".L",
	"HSBA":  ".L",
	"VOD":   ".L",
	"SHEL":  ".L",
	"BARC":  ".L",
	// TSE (Japan)
	"7203": ".T", // Toyota
	"6758": ".T", // Sony
	"9984": ".T", // SoftBank
}

// NormalizeSymbol uppercases and trims a raw ticker, stripping the $
// prefix common in chat and social input.
func NormalizeSymbol(symbol string) string {
	symbol = strings.TrimSpace(strings.ToUpper(symbol))
	return strings.TrimPrefix(symbol, "$")
}

// YahooSymbol converts a normalized ticker to Yahoo Finance query form,
// appending the home-market suffix for known non-US tickers.
func YahooSymbol(symbol string) string {
	symbol = NormalizeSymbol(symbol)
	if strings.Contains(symbol, ".") {
		return symbol
	}
	if suffix, ok := marketSuffixes[symbol]; ok {
		return symbol + suffix
	}
	return symbol
}

// CompanyLeadWord returns the first word of a company name, lowercased,
// for relevance matching ("Apple Inc." → "apple"). Returns "" for empty
// names.
func CompanyLeadWord(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}
