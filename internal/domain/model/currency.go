package model

import "strings"

// Currency is a currency code understood by the scraped converter site.
type Currency string

const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
	PKR Currency = "PKR"
	INR Currency = "INR"
	JPY Currency = "JPY"
)

// SupportedCurrencies lists every code the converter accepts, in the order
// batch tables are built. Positions are significant: a code listed twice is
// fetched and reported twice.
var SupportedCurrencies = codes(
	"USD", "EUR", "GBP", "CAD", "AUD", "JPY", "INR", "NZD", "CHF", "ZAR", "RUB", "BGN",
	"SGD", "HKD", "SEK", "THB", "HUF", "CNY", "NOK", "MXN", "DKK", "MYR", "PLN", "BRL",
	"PHP", "IDR", "CZK", "AED", "TWD", "KRW", "ILS", "ARS", "CLP", "EGP", "TRY", "RON",
	"SAR", "PKR", "COP", "IQD", "XAU", "FJD", "KWD", "BAM", "ISK", "MAD", "HRK", "VND",
	"JMD", "JOD", "DOP", "PEN", "CRC", "BHD", "BDT", "DZD", "KES", "XAG", "LKR", "OMR",
	"QAR", "XOF", "IRR", "XCD", "TND", "TTD", "XPF", "EEK", "ZMK", "ZMW", "BBD", "NGN",
	"LBP", "XAF", "MUR", "XPT", "BSD", "ALL", "UYU", "BMD", "LVL", "UAH", "GTQ", "XDR",
	"BWP", "BOB", "CUP", "PYG", "HNL", "LTL", "ZWD", "NIO", "RSD", "NPR", "HTG", "PAB",
	"SVC", "GYD", "KYD", "TZS", "CNH", "CVE", "FKP", "ANG", "UGX", "MGA", "GEL", "ETB",
	"MDL", "VUV", "SYP", "BND", "KHR", "NAD", "MKD", "AOA", "PGK", "MMK", "KZT", "MOP",
	"MZN", "LYD", "SLE", "SLL", "GNF", "BYN", "BYR", "GMD", "AWG", "AMD", "YER", "LAK",
	"WST", "MWK", "KPW", "BIF", "DJF", "MNT", "UZS", "TOP", "SCR", "KGS", "BTN", "SBD",
	"GIP", "RWF", "CDF", "MVR", "MRU", "ERN", "SOS", "SZL", "TJS", "LRD", "LSL", "SHP",
	"STN", "KMF", "SPL", "TMT", "SRD", "IMP", "JEP", "TVD", "GGP", "AFN", "AZN", "BZD",
	"CUC", "GHS", "SDG", "VES", "VEF", "XPD", "BTC", "ADA", "BCH", "DOGE", "DOT", "ETH",
	"LINK", "LTC", "LUNA", "UNI", "XLM", "XRP", "ATS", "AZM", "BEF", "CYP", "DEM", "ESP",
	"FIM", "FRF", "GHC", "GRD", "IEP", "ITL", "LUF", "MGF", "MRO", "MTL", "MZM", "NLG",
	"PTE", "ROL", "SDD", "SIT", "SKK", "SRG", "STD", "TMM", "TRL", "VAL", "VEB", "XEU",
)

func codes(cs ...string) []Currency {
	out := make([]Currency, len(cs))
	for i, c := range cs {
		out[i] = Currency(c)
	}
	return out
}

func (c Currency) IsSupported() bool {
	return c.In(SupportedCurrencies)
}

// In reports whether c is a member of set.
func (c Currency) In(set []Currency) bool {
	for _, supportedCurrency := range set {
		if c == supportedCurrency {
			return true
		}
	}
	return false
}

// Normalize upper-cases and trims a user supplied code.
func Normalize(s string) Currency {
	return Currency(strings.ToUpper(strings.TrimSpace(s)))
}

func (c Currency) String() string {
	return string(c)
}
