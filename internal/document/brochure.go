package document

import (
	"fmt"

	"invoicekit/internal/rupiah"
	"invoicekit/pkg/models"
)

// Feature is one bullet of a brochure package.
type Feature struct {
	Text        string `json:"text"`
	Highlighted bool   `json:"highlighted,omitempty"`
}

// Package is a website package offered in the digital brochure.
type Package struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Price         models.Amount `json:"price"`
	YearlyHosting models.Amount `json:"yearlyHosting"`
	Color         string        `json:"color"`
	Popular       bool          `json:"popular,omitempty"`
	Features      []Feature     `json:"features"`
}

// VendorInfo is the contact block printed at the bottom of the brochure.
type VendorInfo struct {
	Name     string `json:"name"`
	WhatsApp string `json:"whatsapp"`
	Email    string `json:"email"`
	Website  string `json:"website"`
}

// Brochure holds the brosur digital fields.
type Brochure struct {
	SelectedPackage string     `json:"selectedPackage"`
	Vendor          VendorInfo `json:"vendor"`
}

// DefaultPackageID is selected when a brochure names no package.
const DefaultPackageID = "professional"

var baseFeatures = []Feature{
	{Text: "Tema website sekolah"},
	{Text: "Beranda, Profil, Berita, Galeri, Lokasi, Hubungi"},
}

var (
	featureVideo   = Feature{Text: "VIDEO PROMO SEKOLAH DENGAN ANIMASI ARTIFICIAL INTELLIGENCE", Highlighted: true}
	featureChat    = Feature{Text: "CUSTOMER SERVICE CHAT WHATSAPP OTOMATIS", Highlighted: true}
	featurePPDB    = Feature{Text: "FORM PPDB DATABASE SEKOLAH", Highlighted: true}
	featureSupport = Feature{Text: "Support Maintenance 24/7"}
)

func hostingText(yearly models.Amount) string {
	return fmt.Sprintf("Hosting dan domain 1 tahun (per tahun %s)", rupiah.FormatRupiah(yearly))
}

// Packages returns the brochure catalogue in display order. The slice is
// freshly built on each call.
func Packages() []Package {
	pkgs := []Package{
		{ID: "reguler", Name: "Reguler", Price: 2000000, YearlyHosting: 650000, Color: "#17a2b8"},
		{ID: "professional", Name: "Professional", Price: 2500000, YearlyHosting: 1150000, Color: "#8b5cf6", Popular: true},
		{ID: "bisnis", Name: "Bisnis", Price: 3000000, YearlyHosting: 1500000, Color: "#f59e0b"},
	}

	extras := map[string][]Feature{
		"reguler":      nil,
		"professional": {featureVideo, featureChat},
		"bisnis":       {featureVideo, featureChat, featurePPDB},
	}

	for i := range pkgs {
		features := append([]Feature{}, baseFeatures...)
		features = append(features, extras[pkgs[i].ID]...)
		features = append(features, Feature{Text: hostingText(pkgs[i].YearlyHosting)}, featureSupport)
		pkgs[i].Features = features
	}
	return pkgs
}

// FindPackage looks a package up by id.
func FindPackage(id string) (Package, bool) {
	for _, p := range Packages() {
		if p.ID == id {
			return p, true
		}
	}
	return Package{}, false
}

// Selected returns the chosen package, falling back to the default one.
func (b Brochure) Selected() Package {
	if p, ok := FindPackage(b.SelectedPackage); ok {
		return p
	}
	p, _ := FindPackage(DefaultPackageID)
	return p
}

// DefaultVendor is the brochure contact block used when none is given.
func DefaultVendor() VendorInfo {
	return VendorInfo{
		Name:     "SEMESTA TEKNO",
		WhatsApp: "0812-3456-7890",
		Email:    "info@semestatekno.com",
		Website:  "www.semestatekno.com",
	}
}
