package schema

var sampleUsers = []map[string]any{
	{"username": "techExplorer42", "email": "tech.explorer42@email.com", "password": "TE#x9$mK2p"},
	{"username": "dataWizard89", "email": "data.wizard89@email.com", "password": "DW#8pL$n3m"},
	{"username": "cloudNinja55", "email": "cloud.ninja55@email.com", "password": "CN@5k#Jp7q"},
	{"username": "pixelMaster77", "email": "pixel.master77@email.com", "password": "PM&7n$Kw4x"},
	{"username": "codePhoenix23", "email": "code.phoenix23@email.com", "password": "CP#2j$Ht8v"},
	{"username": "webPioneer91", "email": "web.pioneer91@email.com", "password": "WP@9m#Ns5k"},
	{"username": "byteCrafter68", "email": "byte.crafter68@email.com", "password": "BC&6p$Lm3w"},
	{"username": "netArchitect34", "email": "net.architect34@email.com", "password": "NA#3h$Rt7j"},
	{"username": "appInventor82", "email": "app.inventor82@email.com", "password": "AI@8k#Mp4v"},
	{"username": "devSage45", "email": "dev.sage45@email.com", "password": "DS#4n$Bq9w"},
}

func samplePlace(name, address, query string, ratings float64) map[string]any {
	return map[string]any{
		"name":      name,
		"address":   address,
		"map_url":   "https://maps.google.com/?q=" + query,
		"image_url": "https://images.example.com/" + query + ".jpg",
		"ratings":   ratings,
	}
}

var sampleItineraries = []map[string]any{
	{
		"location": "Jaipur",
		"hotels": []any{
			samplePlace("Rambagh Palace", "Bhawani Singh Rd, Jaipur", "rambagh-palace", 4.8),
		},
		"tourist_spots": []any{
			samplePlace("Amber Fort", "Devisinghpura, Amer", "amber-fort", 4.7),
			samplePlace("Hawa Mahal", "Badi Choupad, Jaipur", "hawa-mahal", 4.5),
		},
		"restaurants": []any{
			samplePlace("Laxmi Mishthan Bhandar", "Johari Bazar, Jaipur", "lmb-jaipur", 4.2),
		},
		"market_places": []any{
			samplePlace("Johari Bazaar", "Johari Bazar Rd, Jaipur", "johari-bazaar", 4.3),
		},
	},
	{
		"location": "Goa",
		"hotels": []any{
			samplePlace("Taj Exotica", "Benaulim, Goa", "taj-exotica", 4.6),
		},
		"tourist_spots": []any{
			samplePlace("Basilica of Bom Jesus", "Old Goa Rd, Bainguinim", "bom-jesus", 4.6),
		},
		"restaurants": []any{
			samplePlace("Fisherman's Wharf", "Cavelossim, Goa", "fishermans-wharf", 4.4),
		},
		"market_places": []any{
			samplePlace("Anjuna Flea Market", "Anjuna, Goa", "anjuna-flea", 4.1),
		},
	},
}

var sampleHotels = []map[string]any{
	{
		"name":      "The Oberoi Udaivilas",
		"address":   "Haridasji Ki Magri, Udaipur",
		"image_url": "https://images.example.com/udaivilas.jpg",
		"map_url":   "https://maps.google.com/?q=udaivilas",
		"rating":    4.9,
	},
	{
		"name":      "Taj Mahal Palace",
		"address":   "Apollo Bandar, Colaba, Mumbai",
		"image_url": "https://images.example.com/taj-mumbai.jpg",
		"map_url":   "https://maps.google.com/?q=taj-mahal-palace",
		"rating":    "4.7",
	},
	{
		"name":      "ITC Grand Chola",
		"address":   "Guindy, Chennai",
		"image_url": "https://images.example.com/grand-chola.jpg",
		"map_url":   "https://maps.google.com/?q=itc-grand-chola",
		"rating":    4.6,
	},
}
