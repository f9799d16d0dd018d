package service

import "github.com/gatherhall/gatherhall/internal/model"

// Visibility and mutation predicates for event rosters and attendance.
// All organization comparisons go through model.OrgID.Matches, which fails
// closed on empty or mismatched references.

// CanViewRoster reports whether the actor may read an event's registration
// roster: the event's organizer, a super-admin, or same-org staff,
// coordinator, or admin.
func CanViewRoster(actor model.Actor, event *model.Event) bool {
	if actor.ID != "" && actor.ID == event.OrganizerID {
		return true
	}
	if actor.Role == model.RoleSuperAdmin {
		return true
	}
	return actor.Role.IsOrganizerClass() && actor.OrgID.Matches(event.OrganizationID)
}

// CanRecordAttendance reports whether the actor may mark attendance
// (mark-pending, mark-present, mark-absent): super-admin anywhere, otherwise
// same-org staff, coordinator, or admin.
func CanRecordAttendance(actor model.Actor, event *model.Event) bool {
	if actor.Role == model.RoleSuperAdmin {
		return true
	}
	return actor.Role.IsOrganizerClass() && actor.OrgID.Matches(event.OrganizationID)
}

// CanConfirmAttendance reports whether the actor may confirm a pending
// attendance record. Stricter than CanRecordAttendance: only admins of the
// owning organization, or a super-admin.
func CanConfirmAttendance(actor model.Actor, event *model.Event) bool {
	if actor.Role == model.RoleSuperAdmin {
		return true
	}
	return actor.Role == model.RoleAdmin && actor.OrgID.Matches(event.OrganizationID)
}

// CanManageEvent reports whether the actor may complete or otherwise manage
// an event: its organizer, a same-org admin, or a super-admin.
func CanManageEvent(actor model.Actor, event *model.Event) bool {
	if actor.ID != "" && actor.ID == event.OrganizerID {
		return true
	}
	if actor.Role == model.RoleSuperAdmin {
		return true
	}
	return actor.Role == model.RoleAdmin && actor.OrgID.Matches(event.OrganizationID)
}
