// Package htmldoc provides HTML image inventory and rewriting on top of
// goquery. Parsing always yields a full document tree; callers that work
// with fragments use BodyInner to strip the wrapper again.
package htmldoc

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ImgRef is one <img> element's relevant attributes, in document order.
type ImgRef struct {
	Src string
	Alt string
}

// ExtractImages returns every <img> element with a non-empty src attribute,
// in document order. Images inside raw inline HTML blocks are included
// because extraction runs on the rendered HTML, not the Markdown source.
func ExtractImages(htmlContent string) ([]ImgRef, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	var refs []ImgRef
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		src, ok := s.Attr("src")
		if !ok || src == "" {
			return
		}
		refs = append(refs, ImgRef{Src: src, Alt: s.AttrOr("alt", "")})
	})

	return refs, nil
}

// RewriteImageSources replaces the src attribute of every <img> whose src
// exactly matches a mapping key, leaving all other attributes untouched.
// Matching is exact string equality on the original src; differently
// spelled references to the same file are distinct keys.
//
// Returns the inner content of the document body, without the html/body
// wrapper the parse round trip introduces.
func RewriteImageSources(htmlContent string, mapping map[string]string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		src, ok := s.Attr("src")
		if !ok {
			return
		}
		if newSrc, found := mapping[src]; found {
			s.SetAttr("src", newSrc)
		}
	})

	return BodyInner(doc)
}

// BodyInner returns the inner HTML of the document body.
func BodyInner(doc *goquery.Document) (string, error) {
	inner, err := doc.Find("body").Html()
	if err != nil {
		return "", fmt.Errorf("serializing body: %w", err)
	}
	return inner, nil
}
