// Package capture builds job snapshots from saved pages and decides which
// application events are captured at all.
package capture

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/jobvault/internal/types"
)

const (
	// MinJDLength is the shortest element text accepted as a job description.
	MinJDLength = 200
	// MinSelectionLength is the shortest user selection accepted instead.
	MinSelectionLength = 100
)

// ErrNoJobDescription means neither the page nor the selection held a usable description.
var ErrNoJobDescription = errors.New("couldn't capture this page; select the job description and retry")

// Options tunes FromHTML.
type Options struct {
	// Selection is text the user highlighted, used when no element qualifies.
	Selection string
	// Company overrides whatever the page says.
	Company string
}

// FromHTML extracts a manual snapshot from a saved job page. The returned
// snapshot has no ID or creation time; the caller stamps those.
func FromHTML(r io.Reader, pageURL string, opts Options) (*types.Snapshot, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	platform := DetectPlatform(pageURL)
	title := strings.TrimSpace(doc.Find("title").First().Text())

	// Drop chrome before reading text so nav links don't count towards the JD
	doc.Find("nav, footer, header, script, style, noscript, form").Remove()

	jd := firstTextAtLeast(doc, JDSelectors(platform), MinJDLength)
	if jd == "" {
		if sel := strings.TrimSpace(opts.Selection); len(sel) >= MinSelectionLength {
			jd = sel
		}
	}
	if jd == "" {
		return nil, ErrNoJobDescription
	}

	company := strings.TrimSpace(opts.Company)
	if company == "" {
		company = firstText(doc, CompanySelectors(platform))
	}
	if company == "" {
		company, _ = doc.Find("meta[property='og:site_name']").First().Attr("content")
		company = strings.TrimSpace(company)
	}
	if company == "" {
		if u, err := url.Parse(pageURL); err == nil {
			company = strings.TrimPrefix(u.Hostname(), "www.")
		}
	}

	role := firstText(doc, RoleSelectors(platform))
	if role == "" {
		role = title
	}

	return &types.Snapshot{
		ApplyKind: types.ApplyManual,
		URL:       pageURL,
		Title:     title,
		Role:      role,
		Company:   company,
		JDText:    jd,
		JDSource:  types.JDSourceToolbar,
	}, nil
}

func firstText(doc *goquery.Document, selectors []string) string {
	for _, selector := range selectors {
		if text := strings.TrimSpace(doc.Find(selector).First().Text()); text != "" {
			return collapseSpaces(text)
		}
	}
	return ""
}

func firstTextAtLeast(doc *goquery.Document, selectors []string, minLen int) string {
	for _, selector := range selectors {
		sel := doc.Find(selector)
		if sel.Length() == 0 {
			continue
		}
		if text := cleanWhitespace(sel.First().Text()); len(text) >= minLen {
			return text
		}
	}
	return ""
}

// cleanWhitespace trims every line and drops blank ones.
func cleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	var cleaned []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}

func collapseSpaces(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
