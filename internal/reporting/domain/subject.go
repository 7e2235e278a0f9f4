package reporting

import "strings"

// SubjectKind identifies who a statement is about.
type SubjectKind string

const (
	SubjectBrand      SubjectKind = "brand"
	SubjectInfluencer SubjectKind = "influencer"
	SubjectPlatform   SubjectKind = "platform"
)

// PlatformSubjectID is the fixed id of the platform-wide subject.
const PlatformSubjectID = "platform"

// ParseSubjectKind normalizes a subject kind string.
func ParseSubjectKind(value string) (SubjectKind, error) {
	switch SubjectKind(strings.ToLower(strings.TrimSpace(value))) {
	case SubjectBrand:
		return SubjectBrand, nil
	case SubjectInfluencer:
		return SubjectInfluencer, nil
	case SubjectPlatform:
		return SubjectPlatform, nil
	default:
		return "", ErrInvalidSubjectKind
	}
}

// Subject is the owner of a statement.
type Subject struct {
	ID   string      `json:"subject_id"`
	Kind SubjectKind `json:"subject_kind"`
}

// NewSubject validates and builds a subject. The platform subject always uses PlatformSubjectID.
func NewSubject(id string, kind SubjectKind) (Subject, error) {
	kind, err := ParseSubjectKind(string(kind))
	if err != nil {
		return Subject{}, err
	}
	if kind == SubjectPlatform {
		return PlatformSubject(), nil
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return Subject{}, ErrEmptySubjectID
	}
	return Subject{ID: id, Kind: kind}, nil
}

// PlatformSubject returns the platform-wide subject.
func PlatformSubject() Subject {
	return Subject{ID: PlatformSubjectID, Kind: SubjectPlatform}
}

// IsPlatform reports whether the subject is platform-wide.
func (s Subject) IsPlatform() bool { return s.Kind == SubjectPlatform }

func (s Subject) String() string { return string(s.Kind) + ":" + s.ID }
