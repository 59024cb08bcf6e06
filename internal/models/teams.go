package models

// TeamHQ is the headquarters team. Its members have global visibility and are
// exempt from defaulter detection.
const TeamHQ = "NW3"

// Teams lists every valid team code, headquarters first.
var Teams = []string{
	TeamHQ,
	"R1 Tirupati", "R2 Chittoor", "R3 Nellore", "R4 Gudur", "R5 Rajampeta",
	"R1 Kurnool", "R2 Nandyal", "R3 Ananthapur", "R4 Dharmavaram", "R5 Kadapa",
}

// Staff roles
const (
	RoleAdmin           = "Admin"
	RoleSuperAdmin      = "Super Admin"
	RoleRegionalManager = "Regional Manager"
	RoleCMCredit        = "CM Credit & NPA"
	RoleCMOperations    = "CM Operations"
	RoleCMDVAS          = "CM D&VAS"
	RoleManagerNPA      = "Manager NPA"
)

// hqRoles and fieldRoles drive the team -> allowed-role mapping. Keeping this a
// single table guarantees the admin form and server-side validation agree.
var (
	hqRoles    = []string{RoleAdmin, RoleSuperAdmin}
	fieldRoles = []string{RoleRegionalManager, RoleCMCredit, RoleCMOperations, RoleCMDVAS, RoleManagerNPA}
)

// RolesForTeam returns the roles a profile on the given team may hold.
// Unknown teams get an empty set.
func RolesForTeam(team string) []string {
	if !IsValidTeam(team) {
		return nil
	}
	if team == TeamHQ {
		return hqRoles
	}
	return fieldRoles
}

// IsValidTeam reports whether the team code is in the registry.
func IsValidTeam(team string) bool {
	for _, t := range Teams {
		if t == team {
			return true
		}
	}
	return false
}

// IsRoleAllowed reports whether the role is permitted on the team.
func IsRoleAllowed(team, role string) bool {
	for _, r := range RolesForTeam(team) {
		if r == role {
			return true
		}
	}
	return false
}

// rolePriority orders roles for roster and report sorting. Lower sorts first.
var rolePriority = map[string]int{
	RoleRegionalManager: 1,
	RoleCMCredit:        2,
	RoleCMDVAS:          3,
	RoleCMOperations:    4,
}

// teamPriority orders teams for report sorting. Headquarters sorts last.
var teamPriority = map[string]int{
	"R1 Tirupati": 1, "R2 Chittoor": 2, "R3 Nellore": 3, "R4 Gudur": 4,
	"R5 Rajampeta": 5, "R1 Kurnool": 6, "R2 Nandyal": 7, "R3 Ananthapur": 8,
	"R4 Dharmavaram": 9, "R5 Kadapa": 10, TeamHQ: 99,
}

// RolePriority returns the sort weight for a role (99 for unknown roles).
func RolePriority(role string) int {
	if p, ok := rolePriority[role]; ok {
		return p
	}
	return 99
}

// TeamPriority returns the sort weight for a team (99 for unknown teams).
func TeamPriority(team string) int {
	if p, ok := teamPriority[team]; ok {
		return p
	}
	return 99
}
