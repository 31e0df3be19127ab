package domain

import "regexp"

// countryCurrencies maps each supported country to the currencies a group or
// company in that country may use.
var countryCurrencies = map[string][]string{
	"UY": {"UYU", "USD"},
	"AR": {"ARS", "USD"},
	"BR": {"BRL", "USD"},
	"CL": {"CLP", "USD"},
	"PY": {"PYG", "USD"},
	"US": {"USD"},
}

// rutPatterns maps each supported country to the format of its tax id.
var rutPatterns = map[string]*regexp.Regexp{
	"UY": regexp.MustCompile(`^[0-9]{12}$`),
	"AR": regexp.MustCompile(`^[0-9]{11}$`),
	"BR": regexp.MustCompile(`^[0-9]{14}$`),
	"CL": regexp.MustCompile(`^[0-9]{7,8}-[0-9Kk]$`),
	"PY": regexp.MustCompile(`^[0-9]{6,8}-[0-9]$`),
	"US": regexp.MustCompile(`^[0-9]{9}$`),
}

// IsSupportedCountry reports whether the country code is known.
func IsSupportedCountry(country string) bool {
	_, ok := countryCurrencies[country]
	return ok
}

// IsCurrencyAllowed reports whether the currency is valid for the country.
func IsCurrencyAllowed(country, currency string) bool {
	for _, c := range countryCurrencies[country] {
		if c == currency {
			return true
		}
	}
	return false
}

// AllowedCurrencies returns the currency whitelist for a country.
func AllowedCurrencies(country string) []string {
	return countryCurrencies[country]
}

// IsValidRut reports whether the tax id matches the country's format.
// Unknown countries never validate.
func IsValidRut(country, rut string) bool {
	pattern, ok := rutPatterns[country]
	if !ok {
		return false
	}
	return pattern.MatchString(rut)
}
