package scraper

import (
	"regexp"
	"strconv"
	"strings"
)

// Conversion rates to USD for currencies that show up in prize strings.
var currencyRates = map[string]float64{
	"$":   1.0,
	"usd": 1.0,
	"€":   1.08,
	"eur": 1.08,
	"£":   1.25,
	"gbp": 1.25,
	"₹":   0.012,
	"inr": 0.012,
	"cad": 0.74,
	"aud": 0.65,
}

// prizeExpr groups: currency prefix, amount, k/m modifier, currency suffix.
// Matches "$50,000", "50,000 USD", "50k usd" and the like in lowercased text.
var prizeExpr = regexp.MustCompile(`([$€£₹])?\s*([0-9,]+(?:\.[0-9]{1,2})?)\s*(k|m|mil|million)?\s*([a-z]{3})?`)

// ParsePrize pulls the largest USD-normalized prize amount out of card text.
// Returns 0 when the text carries no recognizable amount.
func ParsePrize(text string) float64 {
	lower := strings.ToLower(text)
	mentionsPrize := strings.Contains(lower, "prize")

	var maxPrize float64
	for _, m := range prizeExpr.FindAllStringSubmatch(lower, -1) {
		prefix, amount, modifier, suffix := m[1], m[2], m[3], m[4]

		// Bare numbers without a currency marker are usually years or
		// participant counts.
		if prefix == "" && suffix == "" && !mentionsPrize {
			continue
		}
		if suffix != "" {
			if _, ok := currencyRates[suffix]; !ok {
				continue
			}
		}

		value, err := strconv.ParseFloat(strings.ReplaceAll(amount, ",", ""), 64)
		if err != nil {
			continue
		}

		switch modifier {
		case "k":
			value *= 1000
		case "m", "mil", "million":
			value *= 1000000
		}

		rate := 1.0
		if r, ok := currencyRates[prefix]; ok {
			rate = r
		} else if r, ok := currencyRates[suffix]; ok {
			rate = r
		}

		// Anything at or below 100 is more likely a date fragment or count
		// than a prize pool.
		if value*rate > 100 && value*rate > maxPrize {
			maxPrize = value * rate
		}
	}

	return maxPrize
}
