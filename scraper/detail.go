package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cicekzamani/catalog/models"
	"golang.org/x/net/html"
)

// CodeUnknown is the sentinel used when a detail page carries no product code.
const CodeUnknown = "Bilinmiyor"

const assetHost = "cdn.ciceksepeti.vip"

// FallbackProduct builds a stub-only product, used when the detail page
// cannot be fetched or parsed. Images and description stay empty.
func FallbackProduct(stub models.ProductStub, category string) models.ScrapedProduct {
	return models.ScrapedProduct{
		ProductCode: CodeUnknown,
		Name:        stub.Name,
		Price:       stub.PriceText,
		URL:         stub.DetailURL,
		Category:    category,
		LocalImages: []string{},
		AllImages:   []string{},
		Contents:    []string{},
	}
}

// ExtractDetail parses a product detail page into a ScrapedProduct, local
// image paths excluded. Every field degrades to the stub's value or a
// sentinel when its marker is missing from the markup.
func ExtractDetail(doc *goquery.Document, stub models.ProductStub, category string) models.ScrapedProduct {
	p := FallbackProduct(stub, category)

	if title := strings.TrimSpace(doc.Find("h1.o-productDetail__title").First().Text()); title != "" {
		p.Name = title
	}
	if code := extractProductCode(doc); code != "" {
		p.ProductCode = code
	}

	urls := append(galleryImageURLs(doc), carouselImageURLs(doc)...)
	urls = DedupeURLs(urls)
	if len(urls) == 0 && stub.ThumbnailURL != "" {
		urls = []string{stub.ThumbnailURL}
	}
	if urls != nil {
		p.AllImages = urls
	}

	if info := doc.Find("div.m-productContent__info").First(); info.Length() > 0 {
		p.Description = blockText(info)
		p.Contents = listItems(info)
	}

	return p
}

// extractProductCode looks for the labelled code span and takes the next
// span's text as the value.
func extractProductCode(doc *goquery.Document) string {
	code := ""
	doc.Find("span").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !strings.Contains(s.Text(), "Çiçek Sepeti Kodu:") {
			return true
		}
		if next := s.NextAllFiltered("span").First(); next.Length() > 0 {
			code = strings.TrimSpace(next.Text())
		}
		return false
	})
	return code
}

// galleryImageURLs collects gallery images, keeping only the site's asset
// CDN and normalizing protocol-relative URLs.
func galleryImageURLs(doc *goquery.Document) []string {
	var urls []string
	doc.Find("div.gallery-top img").Each(func(_ int, img *goquery.Selection) {
		src, ok := img.Attr("src")
		if !ok || src == "" {
			src, _ = img.Attr("data-src")
		}
		if src == "" || !strings.Contains(src, assetHost) {
			return
		}
		urls = append(urls, normalizeProtocol(src))
	})
	return urls
}

// carouselImageURLs extracts the thumbnails' inline background images and
// rewrites the small-size path segment to the large one.
func carouselImageURLs(doc *goquery.Document) []string {
	var urls []string
	doc.Find("div.gallery-thumbs div.swiper-slide").Each(func(_ int, thumb *goquery.Selection) {
		style, _ := thumb.Attr("style")
		src := styleBackgroundURL(style)
		if src == "" {
			return
		}
		src = strings.ReplaceAll(src, "/s/", "/l/")
		urls = append(urls, normalizeProtocol(src))
	})
	return urls
}

func styleBackgroundURL(style string) string {
	if !strings.Contains(style, "background-image") {
		return ""
	}
	const open = `url("`
	i := strings.Index(style, open)
	if i < 0 {
		return ""
	}
	rest := style[i+len(open):]
	j := strings.Index(rest, `")`)
	if j < 0 {
		return ""
	}
	return rest[:j]
}

// DedupeURLs removes duplicates while preserving first-seen order.
func DedupeURLs(urls []string) []string {
	if len(urls) == 0 {
		return urls
	}
	seen := make(map[string]struct{}, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}

// blockText renders the info block as newline-separated trimmed segments.
func blockText(sel *goquery.Selection) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return strings.Join(parts, "\n")
}

func listItems(sel *goquery.Selection) []string {
	items := []string{}
	sel.Find("ul li").Each(func(_ int, li *goquery.Selection) {
		if t := strings.TrimSpace(li.Text()); t != "" {
			items = append(items, t)
		}
	})
	return items
}
