package rules

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdfix/pkg/facts"
	"github.com/yaklabco/mdfix/pkg/fix"
	"github.com/yaklabco/mdfix/pkg/flavor"
	"github.com/yaklabco/mdfix/pkg/lint"
	"github.com/yaklabco/mdfix/pkg/mdtext"
)

// ReversedLinkRule checks for (text)[url] syntax.
type ReversedLinkRule struct {
	lint.BaseRule
}

// NewReversedLinkRule creates a new reversed link rule.
func NewReversedLinkRule() *ReversedLinkRule {
	return &ReversedLinkRule{
		BaseRule: lint.NewBaseRule(
			"MD011",
			"no-reversed-links",
			"Reversed link syntax",
			[]string{"links"},
			true,
		),
	}
}

// ShouldSkip skips documents without bracket characters.
func (r *ReversedLinkRule) ShouldSkip(rc *lint.Context) bool {
	return !rc.Facts.LikelyHasLinksOrImages()
}

// Check rewrites (text)[url] into [text](url).
func (r *ReversedLinkRule) Check(rc *lint.Context) []lint.Violation {
	var violations []lint.Violation
	for ln := 1; ln <= rc.Facts.LineCount(); ln++ {
		lf := rc.Facts.Line(ln)
		if lf.Blank || lf.FrontMatter || rc.Facts.InCode(ln) {
			continue
		}
		text := string(rc.Doc.LineText(ln))
		base := rc.Doc.Lines[ln-1].Start

		for idx := strings.Index(text, ")["); idx >= 0; {
			open := strings.LastIndexByte(text[:idx], '(')
			closeIdx := strings.IndexByte(text[idx+2:], ']')
			if open < 0 || closeIdx < 0 {
				break
			}
			closeIdx += idx + 2
			linkText := text[open+1 : idx]
			url := text[idx+2 : closeIdx]

			if linkText != "" && url != "" &&
				!strings.ContainsAny(linkText, "()[]") && !strings.ContainsAny(url, "()[]") &&
				!facts.InSpan(rc.Facts.CodeSpans, base+open) {
				span := mdtext.NewSpan(base+open, base+closeIdx+1)
				violations = append(violations,
					lint.NewViolation(r.ID(), span, "Reversed link syntax").
						WithReplacement("["+linkText+"]("+url+")").
						Build(rc.Doc))
			}

			next := strings.Index(text[closeIdx:], ")[")
			if next < 0 {
				break
			}
			idx = closeIdx + next
		}
	}
	return violations
}

// InlineHTMLRule checks for raw HTML.
type InlineHTMLRule struct {
	lint.BaseRule
}

// NewInlineHTMLRule creates a new inline HTML rule.
func NewInlineHTMLRule() *InlineHTMLRule {
	return &InlineHTMLRule{
		BaseRule: lint.NewBaseRule(
			"MD033",
			"no-inline-html",
			"Inline HTML",
			[]string{"html"},
			false,
		),
	}
}

// ShouldSkip skips documents without '<' bytes.
func (r *InlineHTMLRule) ShouldSkip(rc *lint.Context) bool {
	return !rc.Facts.LikelyHasHTML()
}

// Check flags HTML spans unless the flavor tells this rule to accept
// them or the element is allow-listed.
func (r *InlineHTMLRule) Check(rc *lint.Context) []lint.Violation {
	if rc.Allowed(flavor.ConstructInlineHTML) {
		return nil
	}
	allowed := rc.OptionStringSlice("allowed_elements", nil)

	var violations []lint.Violation
	for _, span := range rc.Facts.HTMLSpans {
		element := htmlElementName(span.Text(rc.Doc.Content))
		if element != "" && containsFold(allowed, element) {
			continue
		}
		msg := "Inline HTML"
		if element != "" {
			msg = fmt.Sprintf("Inline HTML: element %q", element)
		}
		violations = append(violations,
			lint.NewViolation(r.ID(), span, msg).Build(rc.Doc))
	}
	return violations
}

// htmlElementName extracts the tag name from "<tag ...>" text.
func htmlElementName(text []byte) string {
	s := string(text)
	if !strings.HasPrefix(s, "<") {
		return ""
	}
	s = strings.TrimPrefix(s[1:], "/")
	end := strings.IndexFunc(s, func(r rune) bool {
		return r == ' ' || r == '>' || r == '/' || r == '\n'
	})
	if end < 0 {
		end = len(s)
	}
	return strings.ToLower(s[:end])
}

func containsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}

// NoBareURLsRule checks for URLs outside any link construct.
type NoBareURLsRule struct {
	lint.BaseRule
}

// NewNoBareURLsRule creates a new bare URLs rule.
func NewNoBareURLsRule() *NoBareURLsRule {
	return &NoBareURLsRule{
		BaseRule: lint.NewBaseRule(
			"MD034",
			"no-bare-urls",
			"Bare URL used",
			[]string{"links", "url"},
			true,
		),
	}
}

// ShouldSkip skips documents where the inline scan found no bare URLs.
// Marker counters cannot cover this rule: a bare URL needs no bracket,
// bang, or angle byte at all.
func (r *NoBareURLsRule) ShouldSkip(rc *lint.Context) bool {
	return !rc.Facts.LikelyHasBareURLs()
}

// Check wraps bare URLs in angle brackets.
func (r *NoBareURLsRule) Check(rc *lint.Context) []lint.Violation {
	if rc.Allowed(flavor.ConstructBareURL) {
		return nil
	}

	var violations []lint.Violation
	for _, span := range rc.Facts.BareURLs {
		url := string(span.Text(rc.Doc.Content))
		violations = append(violations,
			lint.NewViolation(r.ID(), span, "Bare URL used").
				WithReplacement("<"+url+">").
				Build(rc.Doc))
	}
	return violations
}

// LinkSpacesRule checks for space padding inside link text.
type LinkSpacesRule struct {
	lint.BaseRule
}

// NewLinkSpacesRule creates a new link spaces rule.
func NewLinkSpacesRule() *LinkSpacesRule {
	return &LinkSpacesRule{
		BaseRule: lint.NewBaseRule(
			"MD039",
			"no-space-in-links",
			"Spaces inside link text",
			[]string{"links", "whitespace"},
			true,
		),
	}
}

// ShouldSkip skips documents without link characters.
func (r *LinkSpacesRule) ShouldSkip(rc *lint.Context) bool {
	return !rc.Facts.LikelyHasLinksOrImages()
}

// Check trims padded link text in place.
func (r *LinkSpacesRule) Check(rc *lint.Context) []lint.Violation {
	var violations []lint.Violation
	for _, link := range rc.Facts.Links {
		if link.TextSpan.IsEmpty() {
			continue
		}
		inner := string(link.TextSpan.Text(rc.Doc.Content))
		trimmed := strings.TrimSpace(inner)
		if trimmed == inner || trimmed == "" {
			continue
		}
		violations = append(violations,
			lint.NewViolation(r.ID(), link.Span, "Spaces inside link text").
				WithEdit(fix.Replace(link.TextSpan.Start, link.TextSpan.End, trimmed)).
				Build(rc.Doc))
	}
	return violations
}

// EmptyLinkRule checks for links without a destination.
type EmptyLinkRule struct {
	lint.BaseRule
}

// NewEmptyLinkRule creates a new empty link rule.
func NewEmptyLinkRule() *EmptyLinkRule {
	return &EmptyLinkRule{
		BaseRule: lint.NewBaseRule(
			"MD042",
			"no-empty-links",
			"No empty links",
			[]string{"links"},
			false,
		),
	}
}

// ShouldSkip skips documents without link characters.
func (r *EmptyLinkRule) ShouldSkip(rc *lint.Context) bool {
	return !rc.Facts.LikelyHasLinksOrImages()
}

// Check flags links whose destination is empty or a bare fragment.
func (r *EmptyLinkRule) Check(rc *lint.Context) []lint.Violation {
	wikiOK := rc.Allowed(flavor.ConstructWikiLink)

	var violations []lint.Violation
	for _, link := range rc.Facts.Links {
		if link.Image {
			continue
		}
		if link.Destination != "" && link.Destination != "#" {
			continue
		}
		if wikiOK && facts.InSpan(rc.Facts.WikiLinks, link.Span.Start) {
			continue
		}
		violations = append(violations,
			lint.NewViolation(r.ID(), link.Span, "No empty links").Build(rc.Doc))
	}
	return violations
}

// ImageAltTextRule checks that images carry alternate text.
type ImageAltTextRule struct {
	lint.BaseRule
}

// NewImageAltTextRule creates a new image alt text rule.
func NewImageAltTextRule() *ImageAltTextRule {
	return &ImageAltTextRule{
		BaseRule: lint.NewBaseRule(
			"MD045",
			"no-alt-text",
			"Images should have alternate text",
			[]string{"images", "accessibility"},
			false,
		),
	}
}

// ShouldSkip skips documents without '!' bytes.
func (r *ImageAltTextRule) ShouldSkip(rc *lint.Context) bool {
	return rc.Facts.Counters.Bang == 0
}

// Check flags images with empty alt text.
func (r *ImageAltTextRule) Check(rc *lint.Context) []lint.Violation {
	var violations []lint.Violation
	for _, link := range rc.Facts.Links {
		if !link.Image {
			continue
		}
		alt := strings.TrimSpace(string(link.TextSpan.Text(rc.Doc.Content)))
		if alt != "" {
			continue
		}
		violations = append(violations,
			lint.NewViolation(r.ID(), link.Span, "Images should have alternate text").
				Build(rc.Doc))
	}
	return violations
}

// ReferenceLinksRule checks that reference labels are defined.
type ReferenceLinksRule struct {
	lint.BaseRule
}

// NewReferenceLinksRule creates a new reference links rule.
func NewReferenceLinksRule() *ReferenceLinksRule {
	return &ReferenceLinksRule{
		BaseRule: lint.NewBaseRule(
			"MD052",
			"reference-links-images",
			"Reference links and images should use defined labels",
			[]string{"links", "images"},
			false,
		),
	}
}

// ShouldSkip skips documents without bracket characters.
func (r *ReferenceLinksRule) ShouldSkip(rc *lint.Context) bool {
	return rc.Facts.Counters.Bracket == 0
}

// Check flags usages of labels with no matching definition.
func (r *ReferenceLinksRule) Check(rc *lint.Context) []lint.Violation {
	wikiOK := rc.Allowed(flavor.ConstructWikiLink)

	var violations []lint.Violation
	for _, use := range rc.Facts.RefUses {
		if _, ok := rc.Facts.RefDefs[strings.ToLower(use.Label)]; ok {
			continue
		}
		if wikiOK && facts.InSpan(rc.Facts.WikiLinks, use.Span.Start) {
			continue
		}
		violations = append(violations,
			lint.NewViolation(r.ID(), use.Span,
				fmt.Sprintf("Reference %q not defined", use.Label)).
				Build(rc.Doc))
	}
	return violations
}
