package htmlutil

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/net/html"
)

var tracer = otel.Tracer("ticketleap-bulk.lib.htmlutil")

// GetText concatenates every text node under node, markup stripped.
func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

type Anchor struct {
	Text string
	Href string
}

var innerWhitespace = regexp.MustCompile(`\s\s+`)

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// CleanText trims scraped display text down to something comparable:
// non printable runes dropped, outer whitespace cut, inner runs
// collapsed to one space.
func CleanText(s string) string {
	s = removeNonPrintable(s)
	s = strings.Trim(s, " \t\n")
	return innerWhitespace.ReplaceAllString(s, " ")
}

// Anchors collects the anchor tags in sel in document order. Hrefs are
// kept verbatim, admin pages hide routing in fragments and query
// strings that a url normalization pass would mangle.
func Anchors(ctx context.Context, sel *goquery.Selection) []Anchor {
	_, span := tracer.Start(ctx, "Anchors")
	defer span.End()

	anchors := []Anchor{}
	for _, n := range sel.Nodes {
		href := ""
		for _, a := range n.Attr {
			if a.Key == "href" {
				href = a.Val
				break
			}
		}

		anchor := Anchor{
			Text: CleanText(GetText(n)),
			Href: href,
		}
		anchors = append(anchors, anchor)
		span.AddEvent("anchor", trace.WithAttributes(
			attribute.String("text", anchor.Text),
			attribute.String("href", anchor.Href),
		))
	}

	return anchors
}

// MatchHrefs runs every anchor's href through pattern and returns the
// first capture group of each one that matches, in document order.
func MatchHrefs(anchors []Anchor, pattern *regexp.Regexp) []string {
	var matches []string
	for _, a := range anchors {
		groups := pattern.FindStringSubmatch(a.Href)
		if len(groups) < 2 {
			continue
		}
		matches = append(matches, groups[1])
	}
	return matches
}
