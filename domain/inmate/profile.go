package inmate

import (
	"time"

	"rehabengine/domain/core"
)

// Gender of an inmate as recorded at booking
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// SecurityLevel is the facility security classification
type SecurityLevel string

const (
	SecurityMinimum SecurityLevel = "Minimum"
	SecurityMedium  SecurityLevel = "Medium"
	SecurityMaximum SecurityLevel = "Maximum"
)

// EducationLevel is the ordinal education attainment scale. Ordering matters:
// the feature extractor encodes it by index.
type EducationLevel string

const (
	EducationElementary  EducationLevel = "Elementary"
	EducationHighSchool  EducationLevel = "High School"
	EducationGED         EducationLevel = "GED"
	EducationSomeCollege EducationLevel = "Some College"
	EducationCollege     EducationLevel = "College"
)

// EducationLevels lists all levels in encoding order.
var EducationLevels = []EducationLevel{
	EducationElementary,
	EducationHighSchool,
	EducationGED,
	EducationSomeCollege,
	EducationCollege,
}

// EncodeEducation returns the ordinal index of a level, or -1 if unknown.
func EncodeEducation(level EducationLevel) int {
	for i, l := range EducationLevels {
		if l == level {
			return i
		}
	}
	return -1
}

// CrimeType identifies an offense category from the fixed catalog
type CrimeType string

const (
	CrimeDrugTrafficking  CrimeType = "drug_trafficking"
	CrimeDrugPossession   CrimeType = "drug_possession"
	CrimeAssault          CrimeType = "assault"
	CrimeRobbery          CrimeType = "robbery"
	CrimeFraud            CrimeType = "fraud"
	CrimeBurglary         CrimeType = "burglary"
	CrimeDomesticViolence CrimeType = "domestic_violence"
	CrimeTheft            CrimeType = "theft"
)

// CrimeProfile carries the per-crime-type priors that condition sentence
// length, rehabilitation needs, and risk.
type CrimeProfile struct {
	AvgSentenceMonths float64 `json:"avg_sentence_months"`
	SubstanceAbuse    float64 `json:"substance_abuse"`
	MentalHealth      float64 `json:"mental_health"`
	ViolenceRisk      float64 `json:"violence_risk"`
	EducationNeed     float64 `json:"education_need"`
}

// CrimeCatalog maps every crime type to its profile. Values mirror observed
// sentencing and rehabilitation-need patterns; they are fixture priors, not
// validated policy.
var CrimeCatalog = map[CrimeType]CrimeProfile{
	CrimeDrugTrafficking:  {AvgSentenceMonths: 36, SubstanceAbuse: 0.9, MentalHealth: 0.4, ViolenceRisk: 0.3, EducationNeed: 0.6},
	CrimeDrugPossession:   {AvgSentenceMonths: 18, SubstanceAbuse: 0.8, MentalHealth: 0.5, ViolenceRisk: 0.2, EducationNeed: 0.5},
	CrimeAssault:          {AvgSentenceMonths: 24, SubstanceAbuse: 0.3, MentalHealth: 0.6, ViolenceRisk: 0.8, EducationNeed: 0.4},
	CrimeRobbery:          {AvgSentenceMonths: 30, SubstanceAbuse: 0.4, MentalHealth: 0.3, ViolenceRisk: 0.6, EducationNeed: 0.7},
	CrimeFraud:            {AvgSentenceMonths: 20, SubstanceAbuse: 0.1, MentalHealth: 0.2, ViolenceRisk: 0.1, EducationNeed: 0.3},
	CrimeBurglary:         {AvgSentenceMonths: 22, SubstanceAbuse: 0.5, MentalHealth: 0.3, ViolenceRisk: 0.4, EducationNeed: 0.6},
	CrimeDomesticViolence: {AvgSentenceMonths: 16, SubstanceAbuse: 0.5, MentalHealth: 0.7, ViolenceRisk: 0.9, EducationNeed: 0.3},
	CrimeTheft:            {AvgSentenceMonths: 12, SubstanceAbuse: 0.4, MentalHealth: 0.2, ViolenceRisk: 0.2, EducationNeed: 0.5},
}

// CrimeTypes lists the catalog keys in a fixed order so seeded draws are
// reproducible (map iteration order is not).
var CrimeTypes = []CrimeType{
	CrimeDrugTrafficking,
	CrimeDrugPossession,
	CrimeAssault,
	CrimeRobbery,
	CrimeFraud,
	CrimeBurglary,
	CrimeDomesticViolence,
	CrimeTheft,
}

// Facilities and Zones are parallel: Zones[i] is the zone of Facilities[i].
var (
	Facilities = []string{"Colombo_Main", "Kandy_Central", "Galle_Regional", "Jaffna_North", "Anuradhapura_Central"}
	Zones      = []string{"Western", "Central", "Southern", "Northern", "North_Central"}
)

// Profile is one inmate's full record: identity, demographics, sentence,
// and the five derived metrics used by every downstream scorer.
// Immutable once generated within a dataset snapshot.
type Profile struct {
	InmateID      core.InmateID `json:"inmate_id"`
	BookingNumber string        `json:"booking_number"`
	FirstName     string        `json:"first_name"`
	LastName      string        `json:"last_name"`
	DateOfBirth   time.Time     `json:"date_of_birth"`
	Gender        Gender        `json:"gender"`
	Age           int           `json:"age"`

	EducationLevel EducationLevel `json:"education_level"`

	SentenceLengthMonths    int       `json:"sentence_length_months"`
	TimeServedMonths        int       `json:"time_served_months"`
	RemainingSentenceMonths int       `json:"remaining_sentence_months"`
	CrimeType               CrimeType `json:"crime_type"`

	SecurityLevel SecurityLevel `json:"security_level"`
	Facility      string        `json:"facility"`
	Block         string        `json:"block"`
	CellNumber    string        `json:"cell_number"`
	Zone          string        `json:"zone"`

	// Derived metrics
	BehaviorScore   float64 `json:"behavior_score"`   // [0,100]
	DisciplineScore float64 `json:"discipline_score"` // [0,100]
	RiskScore       float64 `json:"risk_score"`       // [0,1]

	PriorConvictions        int `json:"prior_convictions"`
	InstitutionalViolations int `json:"institutional_violations"`

	HasSubstanceAbuse        bool `json:"has_substance_abuse"`
	HasMentalHealthIssues    bool `json:"has_mental_health_issues"`
	RequiresMedicalAttention bool `json:"requires_medical_attention"`

	ProgramsCompleted   int     `json:"programs_completed"`
	ProgramsEnrolled    int     `json:"programs_enrolled"`
	TotalAttendanceRate float64 `json:"total_attendance_rate"` // [0,1]

	AdmissionDate         time.Time  `json:"admission_date"`
	ParoleEligibilityDate *time.Time `json:"parole_eligibility_date,omitempty"`
}

// TimeFactor is the served/sentence ratio used as a behavioral-maturity proxy.
func (p *Profile) TimeFactor() float64 {
	if p.SentenceLengthMonths <= 0 {
		return 0
	}
	return float64(p.TimeServedMonths) / float64(p.SentenceLengthMonths)
}
