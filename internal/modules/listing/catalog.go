// README: Seed catalog of storage listings.
package listing

import "sharestuff/internal/types"

func SeedListings() []Listing {
	return []Listing{
		{
			ID:           "l1",
			HostID:       "h1",
			Title:        "Financial District SafeVault",
			Description:  "Premier high-security storage in Manhattan. 24/7 armed security and climate control.",
			PricePerHour: 5.00,
			Capacity:     50,
			Position:     types.Point{Lat: 40.7075, Lng: -74.0113},
			Address:      "15 Broad St, New York, NY",
			City:         "New York",
			Amenities:    []string{"CCTV", "24/7", "Insurance"},
			Rating:       5.0,
			ReviewsCount: 412,
			Image:        "https://images.unsplash.com/photo-1549194388-f61be84a6e9e?auto=format&fit=crop&q=80&w=1200",
		},
		{
			ID:           "can-1",
			HostID:       "h_can1",
			Title:        "Dundas Square Transit Hub",
			Description:  "Located in the heart of Toronto. Perfect for commuters and students. Secure and monitored.",
			PricePerHour: 3.50,
			Capacity:     45,
			Position:     types.Point{Lat: 43.6561, Lng: -79.3803},
			Address:      "350 Victoria St, Toronto, ON",
			City:         "Toronto",
			Amenities:    []string{"Verified", "CCTV", "24/7"},
			Rating:       4.8,
			ReviewsCount: 124,
			Image:        "https://images.unsplash.com/photo-1590483736622-39da8caf3501?auto=format&fit=crop&q=80&w=1200",
		},
		{
			ID:           "can-2",
			HostID:       "h_can2",
			Title:        "Union Station Premium Vault",
			Description:  "High-end storage adjacent to the UP Express. Ideal for Pearson Airport travelers.",
			PricePerHour: 6.00,
			Capacity:     120,
			Position:     types.Point{Lat: 43.6453, Lng: -79.3806},
			Address:      "65 Front St W, Toronto, ON",
			City:         "Toronto",
			Amenities:    []string{"Biometric", "Insurance", "Climate Control"},
			Rating:       5.0,
			ReviewsCount: 856,
			Image:        "https://images.unsplash.com/photo-1506143925201-0252c51780b0?auto=format&fit=crop&q=80&w=1200",
		},
		{
			ID:           "can-5",
			HostID:       "h_can5",
			Title:        "Gastown SafeHaven Vancouver",
			Description:  "Secure, climate-controlled lockers in the heart of Gastown. Steps from Waterfront Station.",
			PricePerHour: 5.00,
			Capacity:     80,
			Position:     types.Point{Lat: 49.2828, Lng: -123.1067},
			Address:      "300 Water St, Vancouver, BC",
			City:         "Vancouver",
			Amenities:    []string{"24/7", "Insurance", "Biometric"},
			Rating:       4.7,
			ReviewsCount: 245,
			Image:        "https://images.unsplash.com/photo-1517705008128-361805f42e86?auto=format&fit=crop&q=80&w=1200",
		},
		{
			ID:           "intl-1",
			HostID:       "h_intl1",
			Title:        "Dubai Marina Nexus",
			Description:  "Premium storage node in the heart of Dubai. Fully automated, climate-locked.",
			PricePerHour: 8.00,
			Capacity:     200,
			Position:     types.Point{Lat: 25.0819, Lng: 55.1367},
			Address:      "Marina Walk, Dubai, UAE",
			City:         "Dubai",
			Amenities:    []string{"24/7", "Biometric", "Verified"},
			Rating:       5.0,
			ReviewsCount: 1204,
			Image:        "https://images.unsplash.com/photo-1512453979798-5ea266f8880c?auto=format&fit=crop&q=80&w=1200",
		},
	}
}
