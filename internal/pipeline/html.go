package pipeline

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ExtractLinks returns the href of every anchor nested in a div, in document
// order.
func ExtractLinks(fragment string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	out := []string{}
	doc.Find("div a[href]").Each(func(_ int, a *goquery.Selection) {
		if href, ok := a.Attr("href"); ok {
			out = append(out, href)
		}
	})
	return out, nil
}

// ExtractText returns every text node that has a div ancestor, in document
// order. Each node is returned once even when divs are nested.
func ExtractText(fragment string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	out := []string{}
	var walk func(n *html.Node, inDiv bool)
	walk = func(n *html.Node, inDiv bool) {
		if n.Type == html.TextNode && inDiv {
			out = append(out, n.Data)
		}
		if n.Type == html.ElementNode && n.Data == "div" {
			inDiv = true
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, inDiv)
		}
	}
	for _, n := range doc.Nodes {
		walk(n, false)
	}
	return out, nil
}
