// Package metadata fetches a page and pulls link-preview fields out of its
// meta tags. Extraction is purely pattern based: there is no HTML parser, so
// unusual markup simply produces misses.
package metadata

import (
	"html"
	"net/url"
	"regexp"
	"strings"
)

// Metadata is the link preview returned to clients. Missing fields stay nil.
type Metadata struct {
	Image       *string `json:"image"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	URL         string  `json:"url"`
}

// quoted value: "..." or '...'; RE2 has no backreferences
const quotedValue = `(?:"([^"]*)"|'([^']*)')`

type pattern struct {
	re *regexp.Regexp
}

// metaPatterns builds both attribute orders for <meta property|name="key" content="...">.
// Attribute names must follow whitespace, so data-content= and similar never match.
func metaPatterns(key string) []pattern {
	k := regexp.QuoteMeta(key)
	return []pattern{
		{regexp.MustCompile(`(?is)<meta[^>]*?\s(?:property|name)\s*=\s*["']` + k + `["'][^>]*?\scontent\s*=\s*` + quotedValue)},
		{regexp.MustCompile(`(?is)<meta[^>]*?\scontent\s*=\s*` + quotedValue + `[^>]*?\s(?:property|name)\s*=\s*["']` + k + `["']`)},
	}
}

func linkPatterns(rel string) []pattern {
	r := regexp.QuoteMeta(rel)
	return []pattern{
		{regexp.MustCompile(`(?is)<link[^>]*?\srel\s*=\s*["']` + r + `["'][^>]*?\shref\s*=\s*` + quotedValue)},
		{regexp.MustCompile(`(?is)<link[^>]*?\shref\s*=\s*` + quotedValue + `[^>]*?\srel\s*=\s*["']` + r + `["']`)},
	}
}

func concat(groups ...[]pattern) []pattern {
	var out []pattern
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// Priority order matters: the first pattern with a non-empty value wins.
var (
	titlePatterns = concat(
		metaPatterns("og:title"),
		metaPatterns("twitter:title"),
		[]pattern{{regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)}},
	)
	descriptionPatterns = concat(
		metaPatterns("og:description"),
		metaPatterns("twitter:description"),
		metaPatterns("description"),
	)
	imagePatterns = concat(
		metaPatterns("og:image"),
		metaPatterns("og:image:url"),
		metaPatterns("twitter:image"),
		metaPatterns("twitter:image:src"),
		linkPatterns("image_src"),
	)
)

// Extract pulls title, description and image out of an HTML document.
// pageURL is echoed back and used to resolve relative image URLs.
func Extract(document, pageURL string) Metadata {
	meta := Metadata{URL: pageURL}

	if v, ok := firstMatch(document, titlePatterns); ok {
		meta.Title = &v
	}
	if v, ok := firstMatch(document, descriptionPatterns); ok {
		meta.Description = &v
	}
	if v, ok := firstMatch(document, imagePatterns); ok {
		resolved := resolveURL(pageURL, v)
		meta.Image = &resolved
	}

	return meta
}

func firstMatch(document string, patterns []pattern) (string, bool) {
	for _, p := range patterns {
		m := p.re.FindStringSubmatch(document)
		if m == nil {
			continue
		}
		for _, group := range m[1:] {
			if v := clean(group); v != "" {
				return v, true
			}
		}
	}
	return "", false
}

func clean(s string) string {
	return strings.Join(strings.Fields(html.UnescapeString(s)), " ")
}

func resolveURL(base, ref string) string {
	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	if refURL.IsAbs() {
		return ref
	}
	baseURL, err := url.Parse(base)
	if err != nil || !baseURL.IsAbs() {
		return ref
	}
	return baseURL.ResolveReference(refURL).String()
}
