package entity

// Actor is the authenticated caller of an operation, carrying the user id
// and role extracted from the access token.
type Actor struct {
	UserID uint
	Role   string
}

func (a Actor) IsPatient() bool {
	return a.Role == RolePatient
}

func (a Actor) IsDoctor() bool {
	return a.Role == RoleDoctor
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
