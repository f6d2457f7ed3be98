package synth

import (
	"fmt"
	"strings"

	"rehabengine/domain/core"
	"rehabengine/domain/inmate"
)

var leaveTypes = []inmate.LeaveType{
	inmate.LeaveEmergency,
	inmate.LeaveFamilyVisit,
	inmate.LeaveMedical,
	inmate.LeaveEarned,
}

// minBehaviorForLeave is a hard gate: below it no leave request is generated.
const minBehaviorForLeave = 50.0

func (g *Generator) generateHomeLeaveRecords(profiles []inmate.Profile) []inmate.HomeLeaveRecord {
	var records []inmate.HomeLeaveRecord
	leaveID := 0

	for i := range profiles {
		p := &profiles[i]
		if p.BehaviorScore < minBehaviorForLeave {
			continue
		}

		var count int
		switch {
		case p.BehaviorScore > 80:
			count = g.s.intBetween(1, 4)
		case p.BehaviorScore > 60:
			count = g.s.intBetween(0, 2)
		default:
			count = g.s.intBetween(0, 1)
		}

		for n := 0; n < count; n++ {
			leaveType := leaveTypes[g.s.intBetween(0, len(leaveTypes)-1)]

			daysAgo := g.s.intBetween(30, p.TimeServedMonths*30)
			if p.TimeServedMonths*30 < 30 {
				daysAgo = 30
			}
			requestDate := g.daysAgo(daysAgo)

			var status inmate.LeaveStatus
			switch {
			case p.BehaviorScore > 75:
				if g.s.chance(0.3) {
					status = inmate.LeaveApproved
				} else {
					status = inmate.LeaveCompleted
				}
			case p.BehaviorScore > 60:
				switch g.s.weighted([]float64{0.4, 0.2, 0.4}) {
				case 0:
					status = inmate.LeaveApproved
				case 1:
					status = inmate.LeaveDenied
				default:
					status = inmate.LeaveCompleted
				}
			default:
				if g.s.chance(0.6) {
					status = inmate.LeaveDenied
				} else {
					status = inmate.LeavePending
				}
			}

			rec := inmate.HomeLeaveRecord{
				LeaveID:        core.FormatRecordID("LEAVE", leaveID),
				InmateID:       p.InmateID,
				RequestDate:    requestDate,
				LeaveType:      leaveType,
				Reason:         fmt.Sprintf("%s request", titleCase(string(leaveType))),
				ApprovalStatus: status,
			}

			if status == inmate.LeaveApproved || status == inmate.LeaveCompleted {
				rec.StartDate = requestDate.AddDate(0, 0, g.s.intBetween(7, 30))
				if leaveType == inmate.LeaveEarned {
					rec.DurationDays = g.s.intBetween(2, 7)
				} else {
					rec.DurationDays = g.s.intBetween(1, 3)
				}
				rec.EndDate = rec.StartDate.AddDate(0, 0, rec.DurationDays)
				rec.ApprovedBy = fmt.Sprintf("ADMIN%03d", g.s.intBetween(1, 10))
				ad := requestDate.AddDate(0, 0, g.s.intBetween(3, 14))
				rec.ApprovalDate = &ad
				returned := g.s.chance(0.95)
				rec.ReturnedOnTime = &returned
				rec.IncidentDuringLeave = g.s.chance(0.05)
			} else {
				rec.StartDate = requestDate.AddDate(0, 0, g.s.intBetween(14, 60))
				rec.DurationDays = g.s.intBetween(2, 7)
				rec.EndDate = rec.StartDate.AddDate(0, 0, rec.DurationDays)
			}

			if status == inmate.LeaveCompleted && rec.ReturnedOnTime != nil && *rec.ReturnedOnTime {
				rec.Notes = "Successful leave"
			} else {
				rec.Notes = "Pending leave"
			}

			records = append(records, rec)
			leaveID++
		}
	}

	return records
}

// titleCase renders "family_visit" as "Family Visit".
func titleCase(s string) string {
	parts := strings.Split(s, "_")
	for i, part := range parts {
		parts[i] = capitalize(part)
	}
	return strings.Join(parts, " ")
}
