package database

import (
	"github.com/ardhilink/ardhilink-api/internal/models"
	"gorm.io/gorm"
)

var restorationTypes = []models.RestorationType{
	{Name: "forest", DisplayName: "Forest Restoration"},
	{Name: "agroforestry", DisplayName: "Agroforestry"},
	{Name: "wetlands", DisplayName: "Wetlands"},
	{Name: "mangroves", DisplayName: "Mangroves"},
}

var counties = []string{
	"Baringo", "Bomet", "Bungoma", "Busia", "Elgeyo-Marakwet",
	"Embu", "Garissa", "Homa Bay", "Isiolo", "Kajiado",
	"Kakamega", "Kericho", "Kiambu", "Kilifi", "Kirinyaga",
	"Kisii", "Kisumu", "Kitui", "Kwale", "Laikipia",
	"Lamu", "Machakos", "Makueni", "Mandera", "Marsabit",
	"Meru", "Migori", "Mombasa", "Murang'a", "Nairobi",
	"Nakuru", "Nandi", "Narok", "Nyamira", "Nyandarua",
	"Nyeri", "Samburu", "Siaya", "Taita-Taveta", "Tana River",
	"Tharaka-Nithi", "Trans-Nzoia", "Turkana", "Uasin Gishu", "Vihiga",
	"Wajir", "West Pokot",
}

// Subcounties for the larger counties; the rest can be added over time.
var subcounties = map[string][]string{
	"Nairobi": {"Westlands", "Dagoretti North", "Dagoretti South", "Langata", "Kibra",
		"Roysambu", "Kasarani", "Ruaraka", "Embakasi South", "Embakasi North",
		"Embakasi Central", "Embakasi East", "Embakasi West", "Makadara",
		"Kamukunji", "Starehe", "Mathare"},
	"Mombasa": {"Changamwe", "Jomvu", "Kisauni", "Nyali", "Likoni", "Mvita"},
	"Kisumu":  {"Kisumu East", "Kisumu West", "Kisumu Central", "Seme", "Nyando", "Muhoroni", "Nyakach"},
	"Nakuru": {"Nakuru Town East", "Nakuru Town West", "Njoro", "Molo", "Gilgil", "Naivasha",
		"Kuresoi South", "Kuresoi North", "Subukia", "Rongai", "Bahati"},
	"Kiambu": {"Kiambu", "Thika Town", "Ruiru", "Juja", "Gatundu South", "Gatundu North",
		"Githunguri", "Kikuyu", "Limuru", "Kabete", "Lari", "Kiambaa"},
	"Machakos": {"Machakos Town", "Mavoko", "Kathiani", "Yatta", "Kangundo", "Matungulu", "Mwala", "Masinga"},
	"Kakamega": {"Lugari", "Likuyani", "Malava", "Lurambi", "Navakholo", "Mumias West",
		"Mumias East", "Matungu", "Butere", "Khwisero", "Shinyalu", "Ikolomani"},
}

// Seed loads the reference catalogs. Idempotent; safe to run on every boot.
func Seed(db *gorm.DB) error {
	for _, rt := range restorationTypes {
		var out models.RestorationType
		if err := db.Where(models.RestorationType{Name: rt.Name}).
			Attrs(models.RestorationType{DisplayName: rt.DisplayName}).
			FirstOrCreate(&out).Error; err != nil {
			return err
		}
	}

	for _, name := range counties {
		var out models.County
		if err := db.Where(models.County{Name: name}).
			FirstOrCreate(&out).Error; err != nil {
			return err
		}
	}

	for countyName, names := range subcounties {
		var county models.County
		if err := db.Where("name = ?", countyName).First(&county).Error; err != nil {
			continue
		}
		for _, name := range names {
			var out models.Subcounty
			if err := db.Where(models.Subcounty{Name: name, CountyID: county.ID}).
				FirstOrCreate(&out).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
