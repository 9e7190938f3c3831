package capture

import (
	"net/url"
	"strings"
)

// Platform represents a known job board platform.
type Platform string

const (
	// PlatformLinkedIn is LinkedIn job pages
	PlatformLinkedIn Platform = "linkedin"
	// PlatformGreenhouse is the Greenhouse ATS platform
	PlatformGreenhouse Platform = "greenhouse"
	// PlatformLever is the Lever ATS platform
	PlatformLever Platform = "lever"
	// PlatformWorkday is the Workday ATS platform
	PlatformWorkday Platform = "workday"
	// PlatformUnknown is an unrecognized platform
	PlatformUnknown Platform = "unknown"
)

// DetectPlatform identifies the job board platform from a URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}

	host := strings.ToLower(parsed.Hostname())

	switch {
	case host == "linkedin.com" || strings.HasSuffix(host, ".linkedin.com"):
		return PlatformLinkedIn
	case strings.Contains(host, "greenhouse.io"):
		return PlatformGreenhouse
	case strings.Contains(host, "lever.co"):
		return PlatformLever
	case strings.Contains(host, "workday.com") || strings.Contains(host, "myworkdayjobs.com"):
		return PlatformWorkday
	}
	return PlatformUnknown
}

// JDSelectors returns job-description selectors for a platform, most specific
// first, always ending with the generic fallbacks.
func JDSelectors(platform Platform) []string {
	var specific []string
	switch platform {
	case PlatformLinkedIn:
		specific = []string{
			"[data-test='job-description-text']",
			"[data-test='job-details'] .jobs-description__content",
			".jobs-description__content",
			".jobs-description__container",
			".jobs-description-content__text",
			".jobs-box__html-content",
		}
	case PlatformGreenhouse:
		specific = []string{
			".job__description.body",
			".job__description",
			"#content",
		}
	case PlatformLever:
		specific = []string{
			".posting-description",
			".section-wrapper.page-full-width",
		}
	case PlatformWorkday:
		specific = []string{
			"[data-automation-id='jobPostingDescription']",
			"[data-automation-id='jobDescription']",
		}
	}
	return append(specific, genericJDSelectors()...)
}

func genericJDSelectors() []string {
	return []string{
		".job-description",
		"#job-description",
		"[data-testid='job-description']",
		"article[role='article']",
		"main",
	}
}

// CompanySelectors returns selectors holding the company name.
func CompanySelectors(platform Platform) []string {
	switch platform {
	case PlatformLinkedIn:
		return []string{
			".job-details-jobs-unified-top-card__company-name a",
			".job-details-jobs-unified-top-card__company-name",
			".jobs-unified-top-card__company-name a",
			".jobs-unified-top-card__company-name",
		}
	default:
		return nil
	}
}

// RoleSelectors returns selectors holding the job title.
func RoleSelectors(platform Platform) []string {
	specific := []string{}
	switch platform {
	case PlatformLinkedIn:
		specific = []string{".jobs-unified-top-card__job-title", ".job-details-jobs-unified-top-card__job-title"}
	case PlatformLever:
		specific = []string{".posting-headline h2"}
	case PlatformGreenhouse:
		specific = []string{".app-title", ".job__title h1"}
	}
	return append(specific, "[data-test='job-detail-title']", "h1")
}
