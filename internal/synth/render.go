package synth

import (
	"rehabengine/domain/dataset"
	"rehabengine/domain/inmate"
)

// Rendering turns typed records into string tables with fixed column order
// and rounding. Column order is part of the dataset contract.

func renderProfiles(profiles []inmate.Profile) *dataset.Table {
	headers := []string{
		"inmate_id", "booking_number", "first_name", "last_name", "date_of_birth",
		"gender", "age", "education_level", "sentence_length_months",
		"time_served_months", "remaining_sentence_months", "crime_type",
		"security_level", "facility", "block", "cell_number", "behavior_score",
		"discipline_score", "risk_score", "prior_convictions",
		"institutional_violations", "has_substance_abuse",
		"has_mental_health_issues", "requires_medical_attention",
		"programs_completed", "programs_enrolled", "total_attendance_rate",
		"admission_date", "parole_eligibility_date", "zone",
	}

	rows := make([][]string, 0, len(profiles))
	for i := range profiles {
		p := &profiles[i]
		rows = append(rows, []string{
			p.InmateID.String(),
			p.BookingNumber,
			p.FirstName,
			p.LastName,
			dToStr(p.DateOfBirth),
			string(p.Gender),
			iToStr(p.Age),
			string(p.EducationLevel),
			iToStr(p.SentenceLengthMonths),
			iToStr(p.TimeServedMonths),
			iToStr(p.RemainingSentenceMonths),
			string(p.CrimeType),
			string(p.SecurityLevel),
			p.Facility,
			p.Block,
			p.CellNumber,
			fToStr(p.BehaviorScore, 2),
			fToStr(p.DisciplineScore, 2),
			fToStr(p.RiskScore, 3),
			iToStr(p.PriorConvictions),
			iToStr(p.InstitutionalViolations),
			bToStr(p.HasSubstanceAbuse),
			bToStr(p.HasMentalHealthIssues),
			bToStr(p.RequiresMedicalAttention),
			iToStr(p.ProgramsCompleted),
			iToStr(p.ProgramsEnrolled),
			fToStr(p.TotalAttendanceRate, 3),
			dToStr(p.AdmissionDate),
			dPtrToStr(p.ParoleEligibilityDate),
			p.Zone,
		})
	}

	return &dataset.Table{Name: dataset.TableInmateProfiles, Headers: headers, Rows: rows}
}

func renderBehavioralRecords(records []inmate.BehavioralRecord) *dataset.Table {
	headers := []string{
		"record_id", "inmate_id", "incident_date", "incident_type", "severity",
		"description", "disciplinary_action", "points_deducted", "resolved",
		"resolution_date",
	}

	rows := make([][]string, 0, len(records))
	for i := range records {
		r := &records[i]
		rows = append(rows, []string{
			r.RecordID.String(),
			r.InmateID.String(),
			dToStr(r.IncidentDate),
			r.IncidentType,
			string(r.Severity),
			r.Description,
			r.DisciplinaryAction,
			iToStr(r.PointsDeducted),
			bToStr(r.Resolved),
			dPtrToStr(r.ResolutionDate),
		})
	}

	return &dataset.Table{Name: dataset.TableBehavioralRecords, Headers: headers, Rows: rows}
}

func renderProgramOutcomes(records []inmate.ProgramOutcome) *dataset.Table {
	headers := []string{
		"outcome_id", "inmate_id", "program_name", "program_type", "start_date",
		"end_date", "status", "completion_percentage", "attendance_rate",
		"performance_score", "behavioral_improvement", "instructor_notes",
		"certificate_awarded",
	}

	rows := make([][]string, 0, len(records))
	for i := range records {
		r := &records[i]
		perf := ""
		if r.PerformanceScore != nil {
			perf = fToStr(*r.PerformanceScore, 2)
		}
		improvement := ""
		if r.BehavioralImprovement != nil {
			improvement = fToStr(*r.BehavioralImprovement, 2)
		}
		rows = append(rows, []string{
			r.OutcomeID.String(),
			r.InmateID.String(),
			r.ProgramName,
			r.ProgramType,
			dToStr(r.StartDate),
			dPtrToStr(r.EndDate),
			string(r.Status),
			fToStr(r.CompletionPercentage, 2),
			fToStr(r.AttendanceRate, 3),
			perf,
			improvement,
			r.InstructorNotes,
			bToStr(r.CertificateAwarded),
		})
	}

	return &dataset.Table{Name: dataset.TableProgramOutcomes, Headers: headers, Rows: rows}
}

func renderCounselingNotes(records []inmate.CounselingNote) *dataset.Table {
	headers := []string{
		"note_id", "inmate_id", "session_date", "counselor_id", "session_type",
		"duration_minutes", "notes", "sentiment", "risk_indicators",
		"progress_rating", "next_session_date",
	}

	rows := make([][]string, 0, len(records))
	for i := range records {
		r := &records[i]
		rows = append(rows, []string{
			r.NoteID.String(),
			r.InmateID.String(),
			dToStr(r.SessionDate),
			r.CounselorID,
			r.SessionType,
			iToStr(r.DurationMinutes),
			r.Notes,
			string(r.Sentiment),
			r.RiskIndicators,
			fToStr(r.ProgressRating, 1),
			dToStr(r.NextSessionDate),
		})
	}

	return &dataset.Table{Name: dataset.TableCounselingNotes, Headers: headers, Rows: rows}
}

func renderEarlyReleases(records []inmate.EarlyReleaseAssessment) *dataset.Table {
	headers := []string{
		"record_id", "inmate_id", "assessment_date", "eligibility_score",
		"recommendation", "behavior_score", "program_completion_count",
		"discipline_score", "time_served_percentage", "risk_assessment",
		"victim_impact_statement", "community_support", "approved_by",
		"approval_date",
	}

	rows := make([][]string, 0, len(records))
	for i := range records {
		r := &records[i]
		rows = append(rows, []string{
			r.RecordID.String(),
			r.InmateID.String(),
			dToStr(r.AssessmentDate),
			fToStr(r.EligibilityScore, 3),
			string(r.Recommendation),
			fToStr(r.BehaviorScore, 2),
			iToStr(r.ProgramCompletionCount),
			fToStr(r.DisciplineScore, 2),
			fToStr(r.TimeServedPercentage, 3),
			fToStr(r.RiskAssessment, 3),
			r.VictimImpactStatement,
			bToStr(r.CommunitySupport),
			r.ApprovedBy,
			dPtrToStr(r.ApprovalDate),
		})
	}

	return &dataset.Table{Name: dataset.TableEarlyReleaseData, Headers: headers, Rows: rows}
}

func renderIndustrialTraining(records []inmate.IndustrialTrainingRecord) *dataset.Table {
	headers := []string{
		"training_id", "inmate_id", "training_program", "skill_level",
		"start_date", "end_date", "hours_completed", "certification_earned",
		"performance_rating", "employment_potential", "industry_demand",
		"instructor_feedback",
	}

	rows := make([][]string, 0, len(records))
	for i := range records {
		r := &records[i]
		rows = append(rows, []string{
			r.TrainingID.String(),
			r.InmateID.String(),
			r.TrainingProgram,
			r.SkillLevel,
			dToStr(r.StartDate),
			dPtrToStr(r.EndDate),
			fToStr(r.HoursCompleted, 1),
			bToStr(r.CertificationEarned),
			fToStr(r.PerformanceRating, 1),
			r.EmploymentPotential,
			r.IndustryDemand,
			r.InstructorFeedback,
		})
	}

	return &dataset.Table{Name: dataset.TableIndustrialTraining, Headers: headers, Rows: rows}
}

func renderHomeLeaves(records []inmate.HomeLeaveRecord) *dataset.Table {
	headers := []string{
		"leave_id", "inmate_id", "request_date", "leave_type", "start_date",
		"end_date", "duration_days", "reason", "approval_status", "approved_by",
		"approval_date", "returned_on_time", "incident_during_leave", "notes",
	}

	rows := make([][]string, 0, len(records))
	for i := range records {
		r := &records[i]
		returned := ""
		if r.ReturnedOnTime != nil {
			returned = bToStr(*r.ReturnedOnTime)
		}
		rows = append(rows, []string{
			r.LeaveID.String(),
			r.InmateID.String(),
			dToStr(r.RequestDate),
			string(r.LeaveType),
			dToStr(r.StartDate),
			dToStr(r.EndDate),
			iToStr(r.DurationDays),
			r.Reason,
			string(r.ApprovalStatus),
			r.ApprovedBy,
			dPtrToStr(r.ApprovalDate),
			returned,
			bToStr(r.IncidentDuringLeave),
			r.Notes,
		})
	}

	return &dataset.Table{Name: dataset.TableHomeLeaveRecords, Headers: headers, Rows: rows}
}

func renderRehabStations(stations []inmate.RehabStation) *dataset.Table {
	headers := []string{
		"station_id", "station_name", "location", "zone", "capacity",
		"current_occupancy", "facility_type", "specializations",
		"security_level", "available_programs", "staff_count", "rating",
	}

	rows := make([][]string, 0, len(stations))
	for i := range stations {
		s := &stations[i]
		rows = append(rows, []string{
			s.StationID,
			s.StationName,
			s.Location,
			s.Zone,
			iToStr(s.Capacity),
			iToStr(s.CurrentOccupancy),
			s.FacilityType,
			s.Specializations,
			s.SecurityLevel,
			s.AvailablePrograms,
			iToStr(s.StaffCount),
			fToStr(s.Rating, 1),
		})
	}

	return &dataset.Table{Name: dataset.TableRehabStations, Headers: headers, Rows: rows}
}
