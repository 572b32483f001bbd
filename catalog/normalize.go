package catalog

import (
	"path/filepath"
	"strconv"
	"strings"
)

// categorySlugs maps scraper category labels to catalog slugs.
var categorySlugs = map[string]string{
	"Kokina":                 "kokina",
	"Dogum_Gunu_Cicekleri":   "dogum-gunu",
	"Sevgiliye_Cicek":        "sevgi-ask",
	"Cicek_Buketleri":        "cicek-buketleri",
	"Saksi_Cicekleri":        "saksi-cicekleri",
	"Yeni_Ise_Cicek":         "yeni-is-terfi",
	"Orkide":                 "orkide",
	"Gecmis_Olsun_Cicekleri": "gecmis-olsun",
	"Gul":                    "gul",
	"Acilis_Toren_Cicekleri": "acilis-kutlama",
	"Yeni_Bebek_Cicekleri":   "dogum-yeni-bebek",
	"Aycicegi":               "aycicegi",
	"Papatya_Gerbera":        "papatya-gerbera",
	"Antoryum":               "antoryum",
	"Husnuyusuf":             "husnuyusuf",
	"Tasarim_Cicekler":       "tasarim",
	"Kirmizi_Gul":            "kirmizi-gul",
	"Beyaz_Gul":              "beyaz-gul",
	"Nikah_Dugun_Cicekleri":  "nikah-dugun",
}

// SlugForLabel maps a scraper category label to its catalog slug. Unknown
// labels derive one by lower-casing and swapping underscores for hyphens.
func SlugForLabel(label string) string {
	if slug, ok := categorySlugs[label]; ok {
		return slug
	}
	return strings.ReplaceAll(strings.ToLower(label), "_", "-")
}

// ParsePrice converts a Turkish-locale price string like "1.299,00 TL" to an
// integer amount. Anything unparseable, including the price sentinel, parses
// to 0 instead of rejecting the record.
func ParsePrice(s string) int {
	s = strings.ReplaceAll(s, "TL", "")
	s = strings.ReplaceAll(s, ",00", "")
	s = strings.ReplaceAll(s, ".", "")
	s = strings.TrimSpace(s)

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// FallbackLabelFromFile derives a category label from a batch filename, e.g.
// "kokina_urunler.json" yields "kokina".
func FallbackLabelFromFile(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	return strings.TrimSuffix(name, "_urunler")
}
