package clearscrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// htmlToText derives readable text from an HTML document. Script, style
// and noscript contents are dropped and whitespace is collapsed.
func htmlToText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	doc.Find("script, style, noscript").Remove()

	text := doc.Find("body").Text()
	if text == "" {
		text = doc.Text()
	}
	return strings.Join(strings.Fields(text), " "), nil
}
