package favorability

// Activity is a suggested activity label. ID is the translation message id,
// Default the English text used when no translation is available.
type Activity struct {
	ID      string `json:"id" yaml:"id"`
	Default string `json:"text" yaml:"text"`
}

// Planet is the static metadata of one weekday slot.
type Planet struct {
	Slot int
	Key  string // translation message id of the planet name

	// Suggestions for favorable (rating > 7) and other days. Arrays keep the
	// table immutable; callers receive copies.
	high [3]Activity
	low  [3]Activity
}

// Activities returns a fresh copy of the suggestions for a rating.
func (p Planet) Activities(favorable bool) []Activity {
	src := p.low
	if favorable {
		src = p.high
	}
	out := make([]Activity, len(src))
	copy(out, src[:])
	return out
}

// Planets maps weekday slots (Sunday=1 ... Saturday=7) to their planet. Index 0 is unused.
var Planets = [SlotCount + 1]Planet{
	{},
	{
		Slot: 1, Key: "planet_sun",
		high: [3]Activity{
			{"act_sun_high_launch", "Launch a new project"},
			{"act_sun_high_lead", "Lead a meeting"},
			{"act_sun_high_recognition", "Ask for recognition"},
		},
		low: [3]Activity{
			{"act_sun_low_rest", "Rest and recharge"},
			{"act_sun_low_reflect", "Reflect on your goals"},
			{"act_sun_low_authority", "Avoid clashes with authority"},
		},
	},
	{
		Slot: 2, Key: "planet_moon",
		high: [3]Activity{
			{"act_moon_high_family", "Gather the family"},
			{"act_moon_high_create", "Write or paint"},
			{"act_moon_high_home", "Improve your home"},
		},
		low: [3]Activity{
			{"act_moon_low_meditate", "Meditate"},
			{"act_moon_low_journal", "Keep a journal"},
			{"act_moon_low_flexible", "Keep plans flexible"},
		},
	},
	{
		Slot: 3, Key: "planet_mars",
		high: [3]Activity{
			{"act_mars_high_workout", "Intense workout"},
			{"act_mars_high_hard", "Tackle the hardest task"},
			{"act_mars_high_negotiate", "Negotiate"},
		},
		low: [3]Activity{
			{"act_mars_low_gentle", "Gentle exercise"},
			{"act_mars_low_disputes", "Postpone disputes"},
			{"act_mars_low_repair", "Repair your tools"},
		},
	},
	{
		Slot: 4, Key: "planet_mercury",
		high: [3]Activity{
			{"act_mercury_high_contracts", "Sign contracts"},
			{"act_mercury_high_study", "Study something new"},
			{"act_mercury_high_trip", "Take a short trip"},
		},
		low: [3]Activity{
			{"act_mercury_low_review", "Re-read documents"},
			{"act_mercury_low_messages", "Answer pending messages"},
			{"act_mercury_low_plan", "Plan the week"},
		},
	},
	{
		Slot: 5, Key: "planet_jupiter",
		high: [3]Activity{
			{"act_jupiter_high_finance", "Make financial decisions"},
			{"act_jupiter_high_mentor", "Teach or mentor"},
			{"act_jupiter_high_training", "Start a training"},
		},
		low: [3]Activity{
			{"act_jupiter_low_budget", "Review your budget"},
			{"act_jupiter_low_read", "Read philosophy"},
			{"act_jupiter_low_help", "Help someone"},
		},
	},
	{
		Slot: 6, Key: "planet_venus",
		high: [3]Activity{
			{"act_venus_high_date", "Plan a date"},
			{"act_venus_high_art", "Buy art or clothes"},
			{"act_venus_high_social", "Attend a social event"},
		},
		low: [3]Activity{
			{"act_venus_low_selfcare", "Self-care"},
			{"act_venus_low_tidy", "Tidy your space"},
			{"act_venus_low_music", "Listen to music"},
		},
	},
	{
		Slot: 7, Key: "planet_saturn",
		high: [3]Activity{
			{"act_saturn_high_plan", "Long-term planning"},
			{"act_saturn_high_finish", "Finish pending work"},
			{"act_saturn_high_organize", "Organize your finances"},
		},
		low: [3]Activity{
			{"act_saturn_low_rest", "Rest"},
			{"act_saturn_low_declutter", "Declutter"},
			{"act_saturn_low_elders", "Visit your elders"},
		},
	},
}
