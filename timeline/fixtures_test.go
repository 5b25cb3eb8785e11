package timeline

func moonDataset() Dataset {
	return Dataset{
		Title: "Campus Milestones",
		Groups: []Group{
			{
				Label: "1970s",
				Year:  "1970",
				Events: []Event{
					{
						Title:       "Moon Landing Replica Unveiled",
						Date:        "1971",
						Description: "A full-scale replica goes on display in the library atrium.",
						Image:       "/img/replica.jpg",
						ImageAlt:    "The replica lander",
						Link:        "https://example.com/replica",
					},
				},
			},
			{
				Label: "1980s",
				Year:  "1980",
				Events: []Event{
					{
						Title:       "New Library Wing",
						Date:        "1983",
						Description: "The <em>Evans</em> wing opens to students.",
					},
				},
			},
		},
	}
}

func decadesDataset() Dataset {
	return Dataset{
		Groups: []Group{
			{
				Label: "1870s",
				Year:  "1870",
				Events: []Event{
					{Title: "College Opens", Date: "October 4, 1876", Description: "Six students enroll on opening day."},
					{Title: "First Commencement", Date: "1880", Description: "Degrees are conferred for the first time."},
				},
			},
			{
				Label:  "1890s",
				Year:   "1890",
				Events: nil,
			},
			{
				Label: "1960s",
				Year:  "1960",
				Events: []Event{
					{Title: "Women Admitted", Date: "1963", Description: "Enrollment opens to women."},
					{Title: "University Status", Date: "August 23, 1963", Description: "The college becomes a university."},
					{Title: "Cyclotron Institute", Date: "1967", Description: "Research facility dedicated."},
				},
			},
		},
	}
}
