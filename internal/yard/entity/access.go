package entity

// Role is the acting role carried in the JWT. Anything outside the known
// codes maps to RoleNone, which is denied create access entirely.
type Role string

const (
	RolePPIC       Role = "PPIC"
	RoleProduction Role = "PRODUCTION"
	RoleMaster     Role = "MASTER"
	RoleNone       Role = ""
)

// ParseRole maps a raw claim string to a Role.
func ParseRole(s string) Role {
	switch s {
	case string(RolePPIC):
		return RolePPIC
	case string(RoleProduction):
		return RoleProduction
	case string(RoleMaster):
		return RoleMaster
	default:
		return RoleNone
	}
}

// Access is the per-field permission level for a role.
type Access int

const (
	AccessHidden Access = iota
	AccessReadOnly
	AccessWrite
)

func (a Access) String() string {
	switch a {
	case AccessWrite:
		return "write"
	case AccessReadOnly:
		return "read_only"
	default:
		return "hidden"
	}
}

var planningSet = toSet(PlanningFields)
var executionSet = toSet(ExecutionFields)

func toSet(fields []string) map[string]struct{} {
	m := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		m[f] = struct{}{}
	}
	return m
}

// FieldAccess classifies what a role may do with a work-detail field.
// PPIC and MASTER write planning fields; PRODUCTION and MASTER write
// execution fields (PPIC keeps legacy write access there too). A known role
// sees fields outside its write set read-only; unknown roles see nothing.
func FieldAccess(role Role, field string) Access {
	_, planning := planningSet[field]
	_, execution := executionSet[field]
	if !planning && !execution {
		return AccessHidden
	}

	switch role {
	case RoleMaster:
		return AccessWrite
	case RolePPIC:
		// Legacy behavior: PPIC may also fill execution fields.
		return AccessWrite
	case RoleProduction:
		if execution {
			return AccessWrite
		}
		return AccessReadOnly
	default:
		return AccessHidden
	}
}

// CanCreateWorkDetail reports whether the role may create new work details.
func CanCreateWorkDetail(role Role) bool {
	return role == RolePPIC || role == RoleMaster
}

// WritesPlanning reports whether the role owns the planning field set.
func WritesPlanning(role Role) bool {
	return role == RolePPIC || role == RoleMaster
}

// WritesExecution reports whether the role owns the execution field set.
func WritesExecution(role Role) bool {
	return role == RoleProduction || role == RolePPIC || role == RoleMaster
}
