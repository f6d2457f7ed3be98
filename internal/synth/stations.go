package synth

import (
	"rehabengine/domain/inmate"
)

// Station reference data is fixed; only current occupancy is sampled.
func (g *Generator) generateRehabStations() []inmate.RehabStation {
	return []inmate.RehabStation{
		{
			StationID:         "RS001",
			StationName:       "Colombo Rehabilitation Center",
			Location:          "Colombo",
			Zone:              "Western",
			Capacity:          200,
			CurrentOccupancy:  g.s.intBetween(150, 200),
			FacilityType:      "mixed",
			Specializations:   "substance_abuse, mental_health, vocational",
			SecurityLevel:     "Medium",
			AvailablePrograms: "substance_abuse_intensive, mental_health_therapy, vocational_carpentry, education_ged",
			StaffCount:        45,
			Rating:            4.2,
		},
		{
			StationID:         "RS002",
			StationName:       "Kandy Vocational Center",
			Location:          "Kandy",
			Zone:              "Central",
			Capacity:          150,
			CurrentOccupancy:  g.s.intBetween(100, 150),
			FacilityType:      "vocational",
			Specializations:   "vocational, education",
			SecurityLevel:     "Minimum",
			AvailablePrograms: "vocational_carpentry, vocational_welding, vocational_it, education_basic",
			StaffCount:        30,
			Rating:            4.5,
		},
		{
			StationID:         "RS003",
			StationName:       "Galle Mental Health Unit",
			Location:          "Galle",
			Zone:              "Southern",
			Capacity:          100,
			CurrentOccupancy:  g.s.intBetween(70, 100),
			FacilityType:      "mental_health",
			Specializations:   "mental_health, counseling",
			SecurityLevel:     "Medium",
			AvailablePrograms: "mental_health_therapy, cognitive_behavioral, family_counseling",
			StaffCount:        35,
			Rating:            4.3,
		},
		{
			StationID:         "RS004",
			StationName:       "Jaffna Substance Abuse Center",
			Location:          "Jaffna",
			Zone:              "Northern",
			Capacity:          120,
			CurrentOccupancy:  g.s.intBetween(80, 120),
			FacilityType:      "substance_abuse",
			Specializations:   "substance_abuse",
			SecurityLevel:     "Medium",
			AvailablePrograms: "substance_abuse_intensive, substance_abuse_standard, counseling",
			StaffCount:        28,
			Rating:            4.0,
		},
		{
			StationID:         "RS005",
			StationName:       "Anuradhapura Education Center",
			Location:          "Anuradhapura",
			Zone:              "North_Central",
			Capacity:          180,
			CurrentOccupancy:  g.s.intBetween(120, 180),
			FacilityType:      "education",
			Specializations:   "education, behavioral",
			SecurityLevel:     "Minimum",
			AvailablePrograms: "education_basic, education_ged, anger_management",
			StaffCount:        32,
			Rating:            4.4,
		},
	}
}
