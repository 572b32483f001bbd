package scraper

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cicekzamani/catalog/models"
)

// PriceNotFound is the sentinel recorded when a card carries no price.
const PriceNotFound = "Fiyat bulunamadı"

// ExtractStubs parses a category listing page into product stubs. Cards that
// yield no name or link are skipped and counted; extraction continues with
// the rest. Relative detail links are resolved against base.
func ExtractStubs(doc *goquery.Document, base *url.URL) ([]models.ProductStub, int) {
	cards := doc.Find("div.o-productCard")
	if cards.Length() == 0 {
		cards = doc.Find("a.o-productCard__link")
	}

	var stubs []models.ProductStub
	skipped := 0
	cards.Each(func(_ int, card *goquery.Selection) {
		link := card.Find("a.o-productCard__link").First()
		if link.Length() == 0 && card.Is("a.o-productCard__link") {
			link = card
		}
		href, _ := link.Attr("href")
		name := strings.TrimSpace(card.Find("strong.o-productCard__name").Text())
		if href == "" || name == "" {
			skipped++
			return
		}

		// Listing prices omit the decimal part the site renders separately.
		price := PriceNotFound
		if v := strings.TrimSpace(card.Find("span.o-productCard__priceContent--value").Text()); v != "" {
			price = v + ",00 TL"
		}

		thumb := ""
		if img := card.Find("img").First(); img.Length() > 0 {
			src, ok := img.Attr("src")
			if !ok || src == "" {
				src, _ = img.Attr("data-src")
			}
			thumb = normalizeProtocol(src)
		}

		stubs = append(stubs, models.ProductStub{
			Name:         name,
			DetailURL:    resolveURL(base, href),
			PriceText:    price,
			ThumbnailURL: thumb,
		})
	})

	return stubs, skipped
}

func resolveURL(base *url.URL, href string) string {
	if base == nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

func normalizeProtocol(src string) string {
	if strings.HasPrefix(src, "//") {
		return "https:" + src
	}
	return src
}
