package config

import (
	"fmt"
	"os"

	"github.com/cicekzamani/catalog/models"
	"gopkg.in/yaml.v3"
)

// DefaultCategories returns the built-in category list for the target site.
func DefaultCategories() []models.CategorySpec {
	return []models.CategorySpec{
		{URL: "https://www.ciceksepeti.vip/cicek/kokina/", Label: "Kokina"},
		{URL: "https://www.ciceksepeti.vip/cicek/dogum-gunu-cicekleri/", Label: "Dogum_Gunu_Cicekleri"},
		{URL: "https://www.ciceksepeti.vip/cicek/sevgiliye-cicek/", Label: "Sevgiliye_Cicek"},
		{URL: "https://www.ciceksepeti.vip/cicek/cicek-buketleri/", Label: "Cicek_Buketleri"},
		{URL: "https://www.ciceksepeti.vip/cicek/saksi-cicekleri/", Label: "Saksi_Cicekleri"},
		{URL: "https://www.ciceksepeti.vip/cicek/yeni-ise-cicek/", Label: "Yeni_Ise_Cicek"},
		{URL: "https://www.ciceksepeti.vip/cicek/orkide/", Label: "Orkide"},
		{URL: "https://www.ciceksepeti.vip/cicek/gecmis-olsun-cicekleri/", Label: "Gecmis_Olsun_Cicekleri"},
		{URL: "https://www.ciceksepeti.vip/cicek/gul/", Label: "Gul"},
		{URL: "https://www.ciceksepeti.vip/cicek/acilis-toren-cicekleri/", Label: "Acilis_Toren_Cicekleri"},
		{URL: "https://www.ciceksepeti.vip/cicek/yeni-bebek-cicekleri/", Label: "Yeni_Bebek_Cicekleri"},
		{URL: "https://www.ciceksepeti.vip/cicek/aycicegi/", Label: "Aycicegi"},
		{URL: "https://www.ciceksepeti.vip/cicek/papatya-gerbera/", Label: "Papatya_Gerbera"},
		{URL: "https://www.ciceksepeti.vip/cicek/antoryum/", Label: "Antoryum"},
		{URL: "https://www.ciceksepeti.vip/cicek/husnuyusuf/", Label: "Husnuyusuf"},
		{URL: "https://www.ciceksepeti.vip/cicek/tasarim-cicekler/", Label: "Tasarim_Cicekler"},
		{URL: "https://www.ciceksepeti.vip/cicek/kirmizi-gul/", Label: "Kirmizi_Gul"},
		{URL: "https://www.ciceksepeti.vip/cicek/beyaz-gul/", Label: "Beyaz_Gul"},
		{URL: "https://www.ciceksepeti.vip/cicek/nikah-dugun-cicekleri/", Label: "Nikah_Dugun_Cicekleri"},
	}
}

// LoadCategories reads a category list from a YAML file. The file is a
// sequence of {url, label} entries replacing the built-in list.
func LoadCategories(path string) ([]models.CategorySpec, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read category file: %w", err)
	}

	var cats []models.CategorySpec
	if err := yaml.Unmarshal(b, &cats); err != nil {
		return nil, fmt.Errorf("parse category file %q: %w", path, err)
	}
	if len(cats) == 0 {
		return nil, fmt.Errorf("category file %q contains no entries", path)
	}
	return cats, nil
}
