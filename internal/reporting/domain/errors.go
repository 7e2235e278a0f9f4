package reporting

import "errors"

var (
	// ErrInvalidSubjectKind is returned for an unknown subject kind.
	ErrInvalidSubjectKind = errors.New("reporting: invalid subject kind")
	// ErrEmptySubjectID is returned when the subject id is empty.
	ErrEmptySubjectID = errors.New("reporting: empty subject id")
	// ErrSubjectNotFound is returned when a brand or influencer does not exist.
	ErrSubjectNotFound = errors.New("reporting: subject not found")
	// ErrCampaignNotFound is returned when a campaign does not exist or belongs to another brand.
	ErrCampaignNotFound = errors.New("reporting: campaign not found")
	// ErrInvalidPeriod is returned when period boundaries cannot be resolved.
	ErrInvalidPeriod = errors.New("reporting: invalid period")
	// ErrInvalidPeriodKind is returned for a period kind a report does not support.
	ErrInvalidPeriodKind = errors.New("reporting: invalid period kind")
	// ErrStatementExists is returned when a final statement already exists for the identity.
	ErrStatementExists = errors.New("reporting: statement already exists")
	// ErrReportExists is returned when a campaign or platform report already exists for the identity.
	ErrReportExists = errors.New("reporting: report already exists")
	// ErrReportNotFound is returned when a persisted report cannot be found.
	ErrReportNotFound = errors.New("reporting: report not found")
	// ErrNilReport is returned when persisting a nil report.
	ErrNilReport = errors.New("reporting: nil report")
	// ErrInvalidPolicy is returned when policy constants are out of range.
	ErrInvalidPolicy = errors.New("reporting: invalid policy")
)
