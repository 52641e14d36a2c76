// Package acromine looks up abbreviation meanings from the Acromine dictionary
// with an AcronymFinder page scrape as the second source
package acromine

import (
	"bytes"
	"context"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"glossrank/internal/core/normalize"
	perr "glossrank/internal/platform/errors"
	"glossrank/internal/platform/logger"

	"github.com/PuerkitoBio/goquery"
	"github.com/goccy/go-json"
)

const (
	acromineURLDefault      = "http://www.nactem.ac.uk/software/acromine/dictionary.py"
	acronymFinderURLDefault = "https://www.acronymfinder.com"
	userAgent               = "glossrank/1.0"
	maxBodyBytes            = 4 << 20

	acromineTop   = 5
	finderTop     = 3
	finderMinLen  = 10
	rawMeaningMin = 5
)

// Options configures the Client
type Options struct {
	AcromineURL      string
	AcronymFinderURL string
	AcromineTimeout  time.Duration
	FinderTimeout    time.Duration
	HTTP             *http.Client
}

// Client fetches suggestions, Acromine first and AcronymFinder when that yields nothing
type Client struct {
	opts Options
	http *http.Client
	log  *logger.Logger
	now  func() time.Time
}

// NewClient fills defaults: 10s Acromine, 5s AcronymFinder
func NewClient(o Options) *Client {
	o.AcromineURL = strings.TrimSpace(o.AcromineURL)
	if o.AcromineURL == "" {
		o.AcromineURL = acromineURLDefault
	}
	o.AcronymFinderURL = strings.TrimRight(strings.TrimSpace(o.AcronymFinderURL), "/")
	if o.AcronymFinderURL == "" {
		o.AcronymFinderURL = acronymFinderURLDefault
	}
	if o.AcromineTimeout <= 0 {
		o.AcromineTimeout = 10 * time.Second
	}
	if o.FinderTimeout <= 0 {
		o.FinderTimeout = 5 * time.Second
	}
	hc := o.HTTP
	if hc == nil {
		hc = &http.Client{}
	}
	return &Client{opts: o, http: hc, log: logger.Named("acromine"), now: time.Now}
}

// Lookup returns upstream suggestions for abbr, upstream failures yield an empty list
func (c *Client) Lookup(ctx context.Context, abbr string) []Suggestion {
	abbr = strings.TrimSpace(abbr)
	if abbr == "" {
		return nil
	}
	out, err := c.acromine(ctx, abbr)
	if err != nil {
		logger.C(ctx).Warn().Err(err).Str("abbreviation", abbr).Msg("acromine lookup failed")
	}
	if len(out) > 0 {
		return out
	}
	out, err = c.finder(ctx, abbr)
	if err != nil {
		logger.C(ctx).Warn().Err(err).Str("abbreviation", abbr).Msg("acronymfinder lookup failed")
	}
	return out
}

func (c *Client) acromine(ctx context.Context, abbr string) ([]Suggestion, error) {
	ctx, cancel := context.WithTimeout(ctx, c.opts.AcromineTimeout)
	defer cancel()

	body, err := c.get(ctx, c.opts.AcromineURL+"?"+url.Values{"sf": []string{abbr}}.Encode(), "application/json")
	if err != nil {
		return nil, err
	}
	var forms []shortForm
	if err := json.Unmarshal(body, &forms); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeJSON, "decode acromine payload")
	}
	if len(forms) == 0 {
		return nil, nil
	}

	lfs := forms[0].LFs
	lfs = lfs[:min(len(lfs), acromineTop)]
	year := c.now().Year()
	out := make([]Suggestion, 0, len(lfs))
	for _, lf := range lfs {
		if strings.TrimSpace(lf.LF) == "" {
			continue
		}
		out = append(out, Suggestion{
			Meaning:         normalize.CleanLongForm(lf.LF),
			Source:          SourceAcromine,
			Category:        normalize.GuessCategory(lf.LF),
			Type:            TypeAcademic,
			OriginalMeaning: lf.LF,
			Confidence:      Confidence(lf.Freq, lf.Since, year),
			Frequency:       lf.Freq,
			Since:           lf.Since,
		})
	}
	return out, nil
}

func (c *Client) finder(ctx context.Context, abbr string) ([]Suggestion, error) {
	ctx, cancel := context.WithTimeout(ctx, c.opts.FinderTimeout)
	defer cancel()

	body, err := c.get(ctx, c.opts.AcronymFinderURL+"/"+url.PathEscape(abbr)+".html", "text/html")
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnknown, "parse acronymfinder page")
	}

	var out []Suggestion
	for _, m := range finderMeanings(doc) {
		if len(m) <= finderMinLen {
			continue
		}
		out = append(out, Suggestion{
			Meaning:         normalize.TranslateTerms(m),
			Source:          SourceAcronymFinder,
			Category:        normalize.GuessCategory(m),
			Type:            TypeEnglish,
			OriginalMeaning: m,
		})
		if len(out) == finderTop {
			break
		}
	}
	return out, nil
}

// finderMeanings collects distinct td.meaning texts longer than five bytes in page order
func finderMeanings(doc *goquery.Document) []string {
	var out []string
	seen := map[string]struct{}{}
	doc.Find("td.meaning").Each(func(_ int, s *goquery.Selection) {
		m := strings.TrimSpace(s.Text())
		if len(m) <= rawMeaningMin {
			return
		}
		if _, ok := seen[m]; ok {
			return
		}
		seen[m] = struct{}{}
		out = append(out, m)
	})
	return out
}

func (c *Client) get(ctx context.Context, u, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "build request")
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", accept)

	res, err := c.http.Do(req)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "GET %s", u)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, perr.Upstreamf("GET %s: %s", u, res.Status)
	}
	b, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "read body")
	}
	return b, nil
}

// Confidence scores an Acromine long form from its corpus frequency and first year seen
// 0.7 base, up to 0.2 for frequency, 0.1 when first seen within 5 years or 0.05 within 15, capped at 0.95
func Confidence(freq, since, year int) float64 {
	c := 0.7 + math.Min(0.2, float64(freq)/50*0.1)
	if since > 0 {
		switch age := year - since; {
		case age <= 5:
			c += 0.1
		case age <= 15:
			c += 0.05
		}
	}
	return math.Min(0.95, c)
}
