package models

// Role is a staff member's role in the center
type Role string

const (
	RoleDirector       Role = "director"
	RoleSupervisor     Role = "supervisor"
	RoleTeacher        Role = "teacher"
	RoleStudentAffairs Role = "student_affairs"
)

// IsValid reports whether r is a known role
func (r Role) IsValid() bool {
	switch r {
	case RoleDirector, RoleSupervisor, RoleTeacher, RoleStudentAffairs:
		return true
	}
	return false
}

// Stage is a student's school stage
type Stage string

const (
	StagePrimary    Stage = "primary"
	StagePrep       Stage = "prep"
	StageSecondary  Stage = "secondary"
	StageUniversity Stage = "university"
)

// IsValid reports whether s is a known stage
func (s Stage) IsValid() bool {
	switch s {
	case StagePrimary, StagePrep, StageSecondary, StageUniversity:
		return true
	}
	return false
}

// Relationship is a guardian's relationship to the student
type Relationship string

const (
	RelationshipFather        Relationship = "father"
	RelationshipMother        Relationship = "mother"
	RelationshipBrother       Relationship = "brother"
	RelationshipSister        Relationship = "sister"
	RelationshipPaternalUncle Relationship = "paternal_uncle"
	RelationshipPaternalAunt  Relationship = "paternal_aunt"
	RelationshipMaternalUncle Relationship = "maternal_uncle"
	RelationshipMaternalAunt  Relationship = "maternal_aunt"
	RelationshipGrandfather   Relationship = "grandfather"
	RelationshipGrandmother   Relationship = "grandmother"
	RelationshipOther         Relationship = "other"
)

// DefaultRelationship is used when a guardian is registered without one
const DefaultRelationship = RelationshipFather

// IsValid reports whether r is a known relationship
func (r Relationship) IsValid() bool {
	switch r {
	case RelationshipFather, RelationshipMother, RelationshipBrother, RelationshipSister,
		RelationshipPaternalUncle, RelationshipPaternalAunt, RelationshipMaternalUncle,
		RelationshipMaternalAunt, RelationshipGrandfather, RelationshipGrandmother, RelationshipOther:
		return true
	}
	return false
}
