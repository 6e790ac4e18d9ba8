package main

import "lexmarket/models"

func item(kind models.TaxonomyKind, id, name, parent string) models.TaxonomyItem {
	return models.TaxonomyItem{ID: id, Kind: kind, Name: name, ParentID: parent}
}

// starterCatalogue is the reference data a fresh deployment needs before the
// first lawyer can finish onboarding. States point at their country and cities
// at their state.
func starterCatalogue() []models.TaxonomyItem {
	items := []models.TaxonomyItem{
		item(models.KindCountry, "ng", "Nigeria", ""),

		item(models.KindState, "ng-la", "Lagos", "ng"),
		item(models.KindState, "ng-fc", "Federal Capital Territory", "ng"),
		item(models.KindState, "ng-ri", "Rivers", "ng"),
		item(models.KindState, "ng-oy", "Oyo", "ng"),
		item(models.KindState, "ng-kn", "Kano", "ng"),
		item(models.KindState, "ng-en", "Enugu", "ng"),

		item(models.KindCity, "ikeja", "Ikeja", "ng-la"),
		item(models.KindCity, "lekki", "Lekki", "ng-la"),
		item(models.KindCity, "victoria-island", "Victoria Island", "ng-la"),
		item(models.KindCity, "abuja", "Abuja", "ng-fc"),
		item(models.KindCity, "port-harcourt", "Port Harcourt", "ng-ri"),
		item(models.KindCity, "ibadan", "Ibadan", "ng-oy"),
		item(models.KindCity, "kano", "Kano", "ng-kn"),
		item(models.KindCity, "enugu", "Enugu", "ng-en"),

		item(models.KindLanguage, "en", "English", ""),
		item(models.KindLanguage, "yo", "Yoruba", ""),
		item(models.KindLanguage, "ig", "Igbo", ""),
		item(models.KindLanguage, "ha", "Hausa", ""),
		item(models.KindLanguage, "pcm", "Nigerian Pidgin", ""),
		item(models.KindLanguage, "fr", "French", ""),
	}

	areas := []struct {
		id, name string
		specs    [][2]string
	}{
		{"corporate", "Corporate & Commercial Law", [][2]string{{"mergers", "Mergers & Acquisitions"}, {"company-secretarial", "Company Secretarial"}}},
		{"litigation", "Litigation & Dispute Resolution", [][2]string{{"arbitration", "Arbitration"}, {"appellate", "Appellate Practice"}}},
		{"property", "Property & Real Estate", [][2]string{{"conveyancing", "Conveyancing"}, {"land-registration", "Land Registration"}}},
		{"family", "Family Law", [][2]string{{"divorce", "Divorce & Separation"}, {"custody", "Child Custody"}}},
		{"criminal", "Criminal Law", [][2]string{{"white-collar", "White Collar Crime"}, {"criminal-defence", "Criminal Defence"}}},
		{"employment", "Employment & Labour", [][2]string{{"workplace-disputes", "Workplace Disputes"}}},
		{"ip", "Intellectual Property", [][2]string{{"trademarks", "Trademarks"}, {"copyright", "Copyright"}}},
		{"tax", "Tax Law", [][2]string{{"tax-disputes", "Tax Disputes"}}},
		{"energy", "Energy & Natural Resources", [][2]string{{"oil-gas", "Oil & Gas"}}},
		{"immigration", "Immigration", nil},
	}
	for _, a := range areas {
		items = append(items, item(models.KindPracticeArea, a.id, a.name, ""))
		for _, s := range a.specs {
			items = append(items, item(models.KindSpecialization, s[0], s[1], a.id))
		}
	}
	return items
}
