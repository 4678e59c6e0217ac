// Package eodhd retrieves current fund prices from the EOD Historical Data
// API (https://eodhd.com).
//
// Only the latest end-of-day close is needed to plan a purchase, so the
// package fetches a single bar per symbol, through a daily-expiring disk
// cache.
package eodhd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// PriceUnavailableError reports that no current price could be retrieved for
// a symbol. Callers decide whether one unavailable price fails the whole run.
type PriceUnavailableError struct {
	Symbol string
	Err    error
}

func (e *PriceUnavailableError) Error() string {
	return fmt.Sprintf("price unavailable for %s: %v", e.Symbol, e.Err)
}

func (e *PriceUnavailableError) Unwrap() error { return e.Err }

// Quote is the latest known end-of-day price of a symbol.
type Quote struct {
	Symbol string
	Date   string
	Close  decimal.Decimal
}

// Ticker returns the EODHD ticker for a plain fund symbol. EODHD expects a
// "SYMBOL.EXCHANGE" format, US funds and ETFs live on the virtual "US"
// exchange.
func Ticker(symbol string) string {
	if strings.Contains(symbol, ".") {
		return symbol
	}
	return symbol + ".US"
}

// Latest fetches the latest end-of-day close for one symbol.
func Latest(apiKey, symbol string) (Quote, error) {
	// https://eodhd.com/api/eod/VTI.US?api_token=demo&fmt=json&order=d&limit=1
	// [
	//	{
	//		"date": "2024-02-13",
	//		"open": 675.066,
	//		"high": 684.219,
	//		"low": 648.659,
	//		"close": 668.445,
	//		"adjusted_close": 67.705,
	//		"volume": 0
	//	  },
	addr := fmt.Sprintf("https://eodhd.com/api/eod/%s?fmt=json&order=d&limit=1&api_token=%s", Ticker(symbol), apiKey)

	type bar struct {
		Date  string          `json:"date"`
		Close decimal.Decimal `json:"close"`
	}

	content := make([]bar, 0)
	if err := jwget(newDailyCachingClient(), addr, &content); err != nil {
		return Quote{}, &PriceUnavailableError{Symbol: symbol, Err: err}
	}
	if len(content) == 0 {
		return Quote{}, &PriceUnavailableError{Symbol: symbol, Err: errors.New("empty history returned")}
	}
	if !content[0].Close.IsPositive() {
		return Quote{}, &PriceUnavailableError{Symbol: symbol, Err: fmt.Errorf("degenerate close price %s", content[0].Close)}
	}
	return Quote{Symbol: symbol, Date: content[0].Date, Close: content[0].Close}, nil
}

// LatestAll fetches the latest end-of-day close for every symbol. Quotes for
// the symbols that succeeded are always returned; failures are joined into
// the returned error, one PriceUnavailableError per missing symbol.
func LatestAll(apiKey string, symbols ...string) (map[string]Quote, error) {
	quotes := make(map[string]Quote, len(symbols))
	var errs error
	for _, symbol := range symbols {
		q, err := Latest(apiKey, symbol)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		quotes[symbol] = q
	}
	return quotes, errs
}
