package format

// Facts is the stable institutional fact sheet substituted into templated
// answers. Highly structured data (fee tables, contacts, portals) renders
// better from configuration than from retrieved prose, so intents backed
// by such data use these values instead of chunk text.
type Facts struct {
	Institution string `yaml:"institution"`

	HostelPhone  string `yaml:"hostel_phone"`
	HostelEmail  string `yaml:"hostel_email"`
	HostelPortal string `yaml:"hostel_portal"`

	AdmissionsPhone    string `yaml:"admissions_phone"`
	AdmissionsTollFree string `yaml:"admissions_toll_free"`
	AdmissionsEmail    string `yaml:"admissions_email"`
	AdmissionsPortal   string `yaml:"admissions_portal"`

	PlacementPhone string `yaml:"placement_phone"`
	PlacementEmail string `yaml:"placement_email"`

	FeeTable     []FeeRow `yaml:"fee_table"`
	Scholarships []string `yaml:"scholarships"`

	Undergraduate []string `yaml:"undergraduate"`
	Postgraduate  []string `yaml:"postgraduate"`

	MessTimings []string `yaml:"mess_timings"`

	// Topics users can ask about, quoted in greeting and no-result replies.
	Topics []string `yaml:"topics"`
}

// FeeRow is one line of the annual hostel fee table.
type FeeRow struct {
	Occupancy string `yaml:"occupancy"`
	RoomType  string `yaml:"room_type"`
	Mens      string `yaml:"mens"`
	Womens    string `yaml:"womens"`
}

// DefaultFacts carries the 2025-2026 fact sheet the corpus documents.
func DefaultFacts() Facts {
	return Facts{
		Institution: "Kalasalingam Academy of Research and Education",

		HostelPhone:  "+91 4563 289 070",
		HostelEmail:  "hostel@klu.ac.in",
		HostelPortal: "https://hostels.kalasalingam.ac.in",

		AdmissionsPhone:    "+91 73977 60760",
		AdmissionsTollFree: "1800 425 7884",
		AdmissionsEmail:    "info@kalasalingam.ac.in",
		AdmissionsPortal:   "https://apply.kalasalingam.ac.in/",

		PlacementPhone: "+91 4563 289 050",
		PlacementEmail: "placement@klu.ac.in",

		FeeTable: []FeeRow{
			{Occupancy: "2-Bed", RoomType: "NON AC ATTACHED", Mens: "Not Available", Womens: "Rs 95,000"},
			{Occupancy: "4-Bed", RoomType: "NON AC", Mens: "Rs 87,000", Womens: "Rs 87,000"},
			{Occupancy: "4-Bed", RoomType: "NON AC ATTACHED", Mens: "Rs 1,05,000", Womens: "Rs 1,05,000"},
			{Occupancy: "4-Bed", RoomType: "AC ATTACHED", Mens: "Rs 1,40,000", Womens: "Rs 1,40,000"},
			{Occupancy: "5-Bed", RoomType: "NON AC", Mens: "Rs 80,000", Womens: "Rs 80,000"},
			{Occupancy: "5-Bed", RoomType: "NON AC ATTACHED", Mens: "Rs 98,500", Womens: "Rs 98,500"},
			{Occupancy: "5-Bed", RoomType: "AC ATTACHED", Mens: "Rs 1,30,000", Womens: "Rs 1,30,000"},
		},
		Scholarships: []string{
			"JEE rank 1-50,000: up to 100% tuition waiver",
			"JEE rank 50,001-1,00,000: 70% waiver",
			"JEE rank 1,00,001-2,00,000: 40% waiver",
			"90%+ in 12th standard: 20% waiver",
			"80-89.99% in 12th standard: 10% waiver",
		},
		Undergraduate: []string{
			"Computer Science & Engineering",
			"AI & Data Science",
			"Cyber Security",
			"Electronics & Communication",
			"Electrical & Electronics",
			"Mechanical Engineering",
			"Civil Engineering",
		},
		Postgraduate: []string{
			"M.Tech: CSE, VLSI, Power Electronics, Structural",
			"MBA: Finance, Marketing, HR, Operations",
			"M.Sc: Physics, Chemistry, Data Science",
		},
		MessTimings: []string{
			"Breakfast: 7:30 AM - 9:15 AM",
			"Lunch: 12:00 PM - 2:30 PM",
			"Snacks: 5:00 PM - 6:00 PM",
			"Dinner: 7:00 PM - 8:30 PM",
		},
		Topics: []string{
			"admissions and programs",
			"hostel facilities and fees",
			"placements and recruiters",
			"campus facilities",
			"scholarships",
			"contact information",
		},
	}
}
