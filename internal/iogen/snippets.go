package iogen

import (
	"github.com/qualverse/qualcode/pkg/survey"
)

// householdShare is the probability of drawing a household-frame
// response; the remainder is provider frame.
const householdShare = 0.65

// surveyMonths caps the number of waves; wave N maps to month N.
var surveyMonths = []string{
	"January 2024",
	"February 2024",
	"March 2024",
}

// states holds the region codes the sample draws from.
var states = []string{
	"AL", "AZ", "CA", "CO", "CT", "FL", "GA", "IL", "MA",
	"MI", "NC", "NJ", "NY", "OH", "PA", "TX", "WA",
}

// snippetThemes lists theme IDs in a fixed order so theme sampling is
// deterministic for a given seed.
var snippetThemes = []string{
	"STRESS_BURNOUT",
	"FOOD_INSECURITY",
	"CHILDCARE_ACCESS",
	"AFFORDABILITY",
	"EMPLOYMENT_DISRUPTION",
	"PROVIDER_STAFF_SHORTAGE",
	"SCHEDULING_CONSTRAINTS",
}

// themeSnippets holds narrative fragments per theme and frame. Each
// snippet contains at least one trigger of its theme in the default
// codebook, so composed responses code back to their source themes.
var themeSnippets = map[string]map[survey.Frame][]string{
	"STRESS_BURNOUT": {
		survey.FrameHousehold: {
			"The stress of juggling work and caregiving is overwhelming and my mental health keeps slipping.",
			"I feel burned out every week trying to cover shifts and still be a present parent.",
			"My partner and I are exhausted, constantly anxious about childcare collapsing at the last minute.",
		},
		survey.FrameProvider: {
			"Staff and I are emotionally drained; burnout is spreading across the team and my own mental health suffers.",
			"Managing constant schedule changes with too few people is crushing my mental health.",
			"I am overwhelmed balancing paperwork, families, and the classroom without relief.",
		},
	},
	"FOOD_INSECURITY": {
		survey.FrameHousehold: {
			"We stretch groceries and sometimes skip meals so tuition can stay current.",
			"Food insecurity is creeping back; we rely on the pantry between paychecks.",
			"I water down meals for the kids when food runs low after rent and the food budget is spent.",
		},
		survey.FrameProvider: {
			"Families tell me they face food insecurity, and we set up snack pantries in the classroom.",
			"I see children coming in hungry, and our pantry scrambles to cover snacks.",
			"Food budgets for the program are maxed out while families ask for extra meals.",
		},
	},
	"CHILDCARE_ACCESS": {
		survey.FrameHousehold: {
			"We have been on a childcare waitlist for months after our center closed.",
			"No slots open when my shifts change, so reliable childcare access feels impossible.",
			"Finding after-school care is a battle every semester, and options keep shrinking.",
		},
		survey.FrameProvider: {
			"Families want more slots than we can offer; the waitlist grows when staff call out.",
			"Our center closed classrooms temporarily, so neighborhood childcare access evaporated.",
			"I field calls daily from parents on the waitlist desperate for openings we just do not have.",
		},
	},
	"AFFORDABILITY": {
		survey.FrameHousehold: {
			"Tuition and fees are too expensive; every increase means cutting groceries.",
			"We cannot afford reliable care when rising costs outpace wages.",
			"Childcare fees remain unaffordable, forcing us to take turns missing work.",
		},
		survey.FrameProvider: {
			"Operating costs skyrocket but families cannot absorb more tuition.",
			"Affordability pressures mean delays in payments and tighter margins; we cannot afford raises.",
			"Keeping tuition affordable while paying staff fairly is nearly impossible.",
		},
	},
	"EMPLOYMENT_DISRUPTION": {
		survey.FrameHousehold: {
			"I miss work every time care falls through, and my employer is losing patience.",
			"My hours were cut after too many schedule changes driven by childcare gaps.",
			"Employment keeps getting disrupted when I have to leave early for pickups.",
		},
		survey.FrameProvider: {
			"I am juggling second jobs because enrollment swings disrupt my own employment stability.",
			"Assistants quit when the shift plan changes, so my employment feels precarious too.",
			"Staff juggle multiple jobs, and every employment disruption ripples through coverage.",
		},
	},
	"PROVIDER_STAFF_SHORTAGE": {
		survey.FrameHousehold: {
			"Our center says classrooms merge because they are short staffed, leaving fewer hours.",
			"Short staffed rooms mean inconsistent caregivers and unpredictable schedules for us.",
			"We were told positions open for months limit the program to part-week care.",
		},
		survey.FrameProvider: {
			"We are short staffed and can't hire assistants even after months of recruiting.",
			"No subs are available, so I cover multiple classrooms daily.",
			"Positions open stay vacant, forcing us to cap enrollment and reduce hours.",
		},
	},
	"SCHEDULING_CONSTRAINTS": {
		survey.FrameHousehold: {
			"My split shift schedule never aligns with the center's hours, so coverage falls apart.",
			"Weekend work is non-negotiable, but there is no coverage for evenings anywhere nearby.",
			"Coordinating the schedule with my partner and the provider is a weekly puzzle we rarely solve.",
		},
		survey.FrameProvider: {
			"Families need nights and weekend coverage, but we cannot stretch the schedule without burning out staff.",
			"Coordinating staggered split shift plans with limited staff feels impossible.",
			"Scheduling constraints force us to close early when multiple people call out.",
		},
	},
}
