package extract

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"paynlp/internal/domain"
)

// A number is either comma-grouped thousands ("1,234.50") or a plain run of
// digits ("1234.50"). Commas are thousands separators; dot is the decimal point.
const numberPattern = `([0-9]{1,3}(?:,[0-9]{3})+(?:\.[0-9]+)?|[0-9]+(?:\.[0-9]+)?)`

const symbolFirstPattern = `(?:about\s+|around\s+|approximately\s+|~)?([\p{Sc}€£$¥₹₩₽₺₴₦₫])\s*` + numberPattern

const numberWordPattern = numberPattern + `\s*` +
	`(dollars?|d[oó]lares?|bucks|usd|euros?|eur|pounds?|libras?|gbp|yen|jpy|rupees?|rupias?|inr|` +
	`pesos?|mxn|cop|ars|clp|pen|soles?|cad|aud|chf|francs?|reales?|brl)`

var (
	symbolFirstRe         = regexp.MustCompile(`(?i)^` + symbolFirstPattern)
	numberWordRe          = regexp.MustCompile(`(?i)^` + numberWordPattern)
	symbolFirstAnywhereRe = regexp.MustCompile(`(?i)` + symbolFirstPattern)
	numberWordAnywhereRe  = regexp.MustCompile(`(?i)` + numberWordPattern)
)

var symbolCurrencies = map[string]string{
	"$": "USD",
	"€": "EUR",
	"£": "GBP",
	"¥": "JPY",
	"₹": "INR",
	"₩": "KRW",
	"₽": "RUB",
}

// amount is a normalized money span. Either field may be nil.
type amount struct {
	value    *float64
	currency *string
}

type amountStrategy struct {
	name string
	find func(in *input) (string, bool)
}

func amountStrategies() []amountStrategy {
	return []amountStrategy{
		{name: "ner-money", find: func(in *input) (string, bool) {
			return in.sentence.FirstMention(domain.EntityMoney)
		}},
		{name: "raw-scan", find: func(in *input) (string, bool) {
			return findMoneyInText(in.raw)
		}},
	}
}

// extractAmount picks the money span and normalizes it. A span that matches
// neither amount pattern triggers a re-scan of the raw input; if that finds
// nothing the span is kept without value or currency.
func (e *Extractor) extractAmount(in *input, out *domain.ParseResult) {
	for _, s := range e.amounts {
		span, ok := s.find(in)
		if !ok {
			continue
		}
		out.AmountText = &span
		trace(out, FieldAmount, s.name)

		if amt, ok := normalizeAmount(span); ok {
			out.AmountValue, out.Currency = amt.value, amt.currency
			return
		}
		if found, ok := findMoneyInText(in.raw); ok {
			if amt, ok := normalizeAmount(found); ok {
				out.AmountText = &found
				out.AmountValue, out.Currency = amt.value, amt.currency
				trace(out, FieldAmount, s.name+"+raw-rescan")
			}
		}
		return
	}
}

// normalizeAmount parses a money span that starts with a symbol ("$15",
// "about € 20.50") or a number followed by a currency word ("20 dólares").
func normalizeAmount(text string) (amount, bool) {
	t := strings.TrimSpace(norm.NFC.String(text))
	if m := symbolFirstRe.FindStringSubmatch(t); m != nil {
		return amount{value: parseNumber(m[2]), currency: currencyForSymbol(m[1])}, true
	}
	if m := numberWordRe.FindStringSubmatch(t); m != nil {
		return amount{value: parseNumber(m[1]), currency: currencyForWord(m[2])}, true
	}
	return amount{}, false
}

// findMoneyInText returns the first money-like span anywhere in text.
// Symbol-first spans win over number-word spans.
func findMoneyInText(text string) (string, bool) {
	// Composed form, so a decomposed "dólares" still matches d[oó]lares.
	text = norm.NFC.String(text)
	if m := symbolFirstAnywhereRe.FindString(text); m != "" {
		return strings.TrimSpace(m), true
	}
	if m := numberWordAnywhereRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1] + " " + m[2]), true
	}
	return "", false
}

func parseNumber(s string) *float64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return nil
	}
	return &v
}

func currencyForSymbol(sym string) *string {
	code, ok := symbolCurrencies[sym]
	if !ok {
		return nil
	}
	return &code
}

// currencyForWord maps a currency word to its code by accent-stripped stem.
// Generic "pesos" default to MXN.
func currencyForWord(word string) *string {
	base := stripAccents(strings.ToLower(word))
	var code string
	switch {
	case strings.HasPrefix(base, "dollar"), strings.HasPrefix(base, "dolar"), base == "bucks", base == "usd":
		code = "USD"
	case strings.HasPrefix(base, "euro"), base == "eur":
		code = "EUR"
	case strings.HasPrefix(base, "pound"), base == "libras", base == "gbp":
		code = "GBP"
	case base == "yen", base == "jpy":
		code = "JPY"
	case strings.HasPrefix(base, "rupee"), strings.HasPrefix(base, "rupia"), base == "inr":
		code = "INR"
	case strings.HasPrefix(base, "franc"), base == "chf":
		code = "CHF"
	case strings.HasPrefix(base, "peso"), base == "mxn":
		code = "MXN"
	case base == "cop":
		code = "COP"
	case base == "ars":
		code = "ARS"
	case base == "clp":
		code = "CLP"
	case base == "pen", strings.HasPrefix(base, "sol"):
		code = "PEN"
	case base == "brl", strings.HasPrefix(base, "real"):
		code = "BRL"
	case base == "cad":
		code = "CAD"
	case base == "aud":
		code = "AUD"
	default:
		return nil
	}
	return &code
}
