package labels

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	// UnknownCompany is the company label used when nothing better can be derived.
	UnknownCompany = "UnknownCompany"
	// UntitledPrefix prefixes synthesized role labels.
	UntitledPrefix = "Untitled-"
	// SuffixLength is the length of the random part of an untitled role label.
	SuffixLength = 6
)

var (
	titleSeparatorRE = regexp.MustCompile(`[-|•:@]`)
	requisitionRE    = regexp.MustCompile(`(?i)(jobs|job|req|requisition)[^\d]*(\d{4,})`)
)

// Context is the subset of a snapshot the resolver needs.
type Context struct {
	Company string
	Role    string
	URL     string
	Title   string // page title, if known
}

// Labels holds the resolved, sanitized labels of a record.
type Labels struct {
	Company string
	Role    string
}

// SuffixFunc returns a short random token for untitled roles.
type SuffixFunc func() string

// Resolver derives company and role labels through an ordered fallback chain.
type Resolver struct {
	suffix SuffixFunc
}

// NewResolver returns a Resolver. A nil suffix uses RandomSuffix.
func NewResolver(suffix SuffixFunc) *Resolver {
	if suffix == nil {
		suffix = RandomSuffix
	}
	return &Resolver{suffix: suffix}
}

// RandomSuffix returns SuffixLength random lowercase hex characters.
func RandomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:SuffixLength]
}

// Resolve returns the company and role labels for ctx. It never fails; a URL
// that does not parse only disables host-based derivation.
func (r *Resolver) Resolve(ctx Context) Labels {
	host := ""
	if u, err := url.Parse(strings.TrimSpace(ctx.URL)); err == nil {
		host = u.Hostname()
	}

	company := strings.TrimSpace(ctx.Company)
	if company == "" {
		company = HostToCompany(host)
	}

	role := strings.TrimSpace(ctx.Role)
	if role == "" {
		role = TitleToRole(ctx.Title)
	}
	if role == "" {
		role = URLToRequisition(ctx.URL)
	}
	if role == "" {
		role = r.untitled()
	}

	return Labels{
		Company: Sanitize(company, UnknownCompany),
		Role:    Sanitize(role, r.untitled()),
	}
}

func (r *Resolver) untitled() string {
	return UntitledPrefix + r.suffix()
}

// HostToCompany derives a company name from a host such as "www.acme.io".
// It returns UnknownCompany for an empty host.
func HostToCompany(host string) string {
	host = strings.TrimPrefix(strings.ToLower(host), "www.")

	parts := make([]string, 0, 4)
	for _, p := range strings.Split(host, ".") {
		if p != "" {
			parts = append(parts, p)
		}
	}

	var base string
	switch len(parts) {
	case 0:
		return UnknownCompany
	case 1:
		base = parts[0]
	default:
		base = parts[len(parts)-2]
	}

	first, size := utf8.DecodeRuneInString(base)
	return string(unicode.ToUpper(first)) + base[size:]
}

// TitleToRole returns the first separator-delimited segment of a page title.
func TitleToRole(title string) string {
	if title == "" {
		return ""
	}
	return strings.TrimSpace(titleSeparatorRE.Split(title, 2)[0])
}

// URLToRequisition extracts a requisition token like "Req12345" from a URL.
func URLToRequisition(rawURL string) string {
	m := requisitionRE.FindStringSubmatch(rawURL)
	if m == nil {
		return ""
	}
	return "Req" + m[2]
}
