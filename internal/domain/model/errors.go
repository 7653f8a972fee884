package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrProxy           = errors.New("proxy check failed")
	ErrFetch           = errors.New("fetch failed")
	ErrExtraction      = errors.New("rate not found in page")
	ErrValidation      = errors.New("invalid request")
	ErrNamingExhausted = errors.New("no free file name")
)

// ProxyError reports a proxy that could not reach the IP echo endpoint.
// StatusCode is zero when the failure happened below HTTP.
type ProxyError struct {
	Proxy      string
	StatusCode int
	Err        error
}

func (e *ProxyError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("proxy %s is not working: status code %d", e.Proxy, e.StatusCode)
	}
	return fmt.Sprintf("proxy %s is not working: %v", e.Proxy, e.Err)
}

func (e *ProxyError) Unwrap() error { return e.Err }

func (e *ProxyError) Is(target error) bool { return target == ErrProxy }

// FetchError reports a converter page that could not be retrieved. The site
// answers unknown codes with an error page, so the message lists the
// supported codes to help the caller spot a typo.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
	Supported  []Currency
}

func (e *FetchError) Error() string {
	var b strings.Builder
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, "fetch %s: status code %d", e.URL, e.StatusCode)
	} else {
		fmt.Fprintf(&b, "fetch %s: %v", e.URL, e.Err)
	}
	if len(e.Supported) > 0 {
		b.WriteString("; check the currency codes, supported: ")
		b.WriteString(joinCodes(e.Supported))
	}
	return b.String()
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool { return target == ErrFetch }

type ExtractionError struct {
	URL string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("no exchange rate found in page %s", e.URL)
}

func (e *ExtractionError) Is(target error) bool { return target == ErrExtraction }

// ValidationError rejects a request before any network activity.
type ValidationError struct {
	Field     string
	Value     string
	Reason    string
	Supported []Currency
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
	if len(e.Supported) > 0 {
		msg += "; supported: " + joinCodes(e.Supported)
	}
	return msg
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

type NamingExhaustedError struct {
	Base     string
	Attempts int
}

func (e *NamingExhaustedError) Error() string {
	return fmt.Sprintf("could not find a free name for %q after %d attempts", e.Base, e.Attempts)
}

func (e *NamingExhaustedError) Is(target error) bool { return target == ErrNamingExhausted }

func joinCodes(cs []Currency) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = string(c)
	}
	return strings.Join(parts, ", ")
}
