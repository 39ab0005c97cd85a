package pipeline

import (
	"fmt"
	"regexp"
	"strings"
)

// Precompiled heading patterns.
var (
	headingOpenTag = regexp.MustCompile(`<h([1-6])([^>]*)>`)
	idAttr         = regexp.MustCompile(`\bid="([^"]*)"`)
	tagStripper    = regexp.MustCompile(`<[^>]*>`)
	nonSlugChars   = regexp.MustCompile(`[^a-z0-9\- ]+`)
	spaceRuns      = regexp.MustCompile(`\s+`)
)

// AddHeadingIDs gives every h1-h6 element without an id attribute a slug
// derived from its text content. Duplicate slugs get a numeric suffix so
// anchors stay unique within the document.
func AddHeadingIDs(htmlContent string) string {
	seen := map[string]int{}
	return rewriteHeadings(htmlContent, func(level, attrs, inner string) string {
		if idAttr.MatchString(attrs) {
			return fmt.Sprintf("<h%s%s>%s</h%s>", level, attrs, inner, level)
		}
		slug := uniqueSlug(Slugify(textContent(inner)), seen)
		return fmt.Sprintf(`<h%s%s id="%s">%s</h%s>`, level, attrs, slug, inner, level)
	})
}

// AutolinkHeadings wraps a self-referencing anchor around the content of
// every heading that carries an id, so rendered documents get clickable
// section links. Headings without ids are left alone; run AddHeadingIDs
// first (or render with heading IDs enabled) to cover them.
func AutolinkHeadings(htmlContent string) string {
	return rewriteHeadings(htmlContent, func(level, attrs, inner string) string {
		m := idAttr.FindStringSubmatch(attrs)
		if m == nil || strings.Contains(inner, "<a ") {
			return fmt.Sprintf("<h%s%s>%s</h%s>", level, attrs, inner, level)
		}
		return fmt.Sprintf(`<h%s%s><a href="#%s">%s</a></h%s>`, level, attrs, m[1], inner, level)
	})
}

// rewriteHeadings walks h1-h6 elements in document order and replaces each
// with rewrite(level, attrs, inner). Headings with no matching close tag
// are passed through untouched.
func rewriteHeadings(htmlContent string, rewrite func(level, attrs, inner string) string) string {
	var out strings.Builder
	rest := htmlContent
	for {
		loc := headingOpenTag.FindStringSubmatchIndex(rest)
		if loc == nil {
			out.WriteString(rest)
			return out.String()
		}
		level := rest[loc[2]:loc[3]]
		attrs := rest[loc[4]:loc[5]]
		openEnd := loc[1]

		closeTag := "</h" + level + ">"
		closeIdx := strings.Index(rest[openEnd:], closeTag)
		if closeIdx < 0 {
			out.WriteString(rest)
			return out.String()
		}

		inner := rest[openEnd : openEnd+closeIdx]
		out.WriteString(rest[:loc[0]])
		out.WriteString(rewrite(level, attrs, inner))
		rest = rest[openEnd+closeIdx+len(closeTag):]
	}
}

// Slugify lowercases text and reduces it to a-z, 0-9, and hyphens.
func Slugify(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = nonSlugChars.ReplaceAllString(s, "")
	s = spaceRuns.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "section"
	}
	return s
}

func uniqueSlug(slug string, seen map[string]int) string {
	n := seen[slug]
	seen[slug] = n + 1
	if n == 0 {
		return slug
	}
	return fmt.Sprintf("%s-%d", slug, n)
}

// textContent strips tags from an HTML snippet.
func textContent(snippet string) string {
	return strings.TrimSpace(tagStripper.ReplaceAllString(snippet, ""))
}
