package models

// Role is the semantic meaning a field can take in a row.
type Role int

const (
	RoleImage Role = iota
	RoleLabel
	RolePrimaryValue
	RoleSecondaryValue
	RoleImageType
	RoleOverlayTop
	RoleOverlayLeft
	RoleOverlayWidth
	RoleOverlayHeight

	roleCount
)

var roleNames = [roleCount]string{
	RoleImage:          "image",
	RoleLabel:          "label",
	RolePrimaryValue:   "primaryValue",
	RoleSecondaryValue: "secondaryValue",
	RoleImageType:      "imageType",
	RoleOverlayTop:     "overlayTop",
	RoleOverlayLeft:    "overlayLeft",
	RoleOverlayWidth:   "overlayWidth",
	RoleOverlayHeight:  "overlayHeight",
}

func (r Role) String() string {
	if r < 0 || r >= roleCount {
		return "unknown"
	}
	return roleNames[r]
}

// Roles lists every role in declaration order.
func Roles() []Role {
	roles := make([]Role, 0, roleCount)
	for r := Role(0); r < roleCount; r++ {
		roles = append(roles, r)
	}
	return roles
}

// Absent is the index of a role that no field is bound to.
const Absent = -1

// RoleMap maps each role to a column index, or Absent.
type RoleMap struct {
	idx [roleCount]int
}

// NewRoleMap returns a map with every role absent.
func NewRoleMap() RoleMap {
	var m RoleMap
	for i := range m.idx {
		m.idx[i] = Absent
	}
	return m
}

// Index returns the column bound to r, or Absent.
func (m RoleMap) Index(r Role) int {
	if r < 0 || r >= roleCount {
		return Absent
	}
	return m.idx[r]
}

// Has reports whether r is bound.
func (m RoleMap) Has(r Role) bool {
	return m.Index(r) != Absent
}

// Bind returns a copy of m with r bound to column i unless r is already bound.
func (m RoleMap) Bind(r Role, i int) RoleMap {
	if r < 0 || r >= roleCount || m.idx[r] != Absent {
		return m
	}
	m.idx[r] = i
	return m
}
