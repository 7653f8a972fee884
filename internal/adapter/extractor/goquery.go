package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"xchanger/internal/metrics"
	"xchanger/pkg/logger"
)

// Locator identifies the element holding the rendered rate: a tag name and
// the value of its class attribute. Every class listed must be present.
type Locator struct {
	Tag   string
	Class string
}

// Selector renders the locator as a CSS selector, e.g. "p.a.b".
func (l Locator) Selector() string {
	sel := l.Tag
	for _, class := range strings.Fields(l.Class) {
		sel += "." + class
	}
	return sel
}

// GoQuery extracts the first whitespace separated token of the located
// element's text.
type GoQuery struct {
	locator  Locator
	selector string
	log      *logger.Logger
	metrics  *metrics.Metrics
}

func NewGoQuery(locator Locator, log *logger.Logger, m *metrics.Metrics) *GoQuery {
	return &GoQuery{
		locator:  locator,
		selector: locator.Selector(),
		log:      log,
		metrics:  m,
	}
}

func (g *GoQuery) Extract(body string) (string, bool) {
	rate, ok := g.extract(body)
	g.metrics.Extraction(ok)
	return rate, ok
}

func (g *GoQuery) extract(body string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		g.log.Debug("Failed to parse page", "error", err)
		return "", false
	}

	sel := doc.Find(g.selector).First()
	if sel.Length() == 0 {
		g.log.Debug("Rate element not found", "selector", g.selector)
		return "", false
	}

	fields := strings.Fields(sel.Text())
	if len(fields) == 0 {
		g.log.Debug("Rate element is empty", "selector", g.selector)
		return "", false
	}

	return fields[0], true
}
