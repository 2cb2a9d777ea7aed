// README: Seed trips served by the in-memory catalog.
package trip

// SeedTrips returns a fresh copy of the demo trip board.
func SeedTrips() []Trip {
	return []Trip{
		{
			ID:                "t1",
			TravelerID:        "u2",
			Origin:            "Toronto (YYZ)",
			Destination:       "Vancouver (YVR)",
			DepartureDate:     "2024-12-22",
			FlightNumber:      "AC115",
			AvailableWeightKg: 8,
			PricePerKg:        12,
			MinBid:            10,
			Status:            StatusOpen,
		},
		{
			ID:                "t_can_2",
			TravelerID:        "u_can2",
			Origin:            "Toronto (YYZ)",
			Destination:       "London (LHR)",
			DepartureDate:     "2025-01-10",
			FlightNumber:      "AC848",
			AvailableWeightKg: 15,
			PricePerKg:        25,
			MinBid:            20,
			Status:            StatusOpen,
		},
		{
			ID:                "t_intl_1",
			TravelerID:        "u_intl1",
			Origin:            "Paris (CDG)",
			Destination:       "Tokyo (NRT)",
			DepartureDate:     "2024-12-25",
			FlightNumber:      "AF272",
			AvailableWeightKg: 10,
			PricePerKg:        35,
			MinBid:            30,
			Status:            StatusOpen,
		},
	}
}
