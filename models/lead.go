package models

import "strings"

// LeadRecord is one input row: column name to cell value. It is never mutated.
type LeadRecord map[string]string

var (
	FirstNameColumns = []string{"First Name", "first_name", "firstName"}
	LastNameColumns  = []string{"Last Name", "last_name", "lastName"}
	FullNameColumns  = []string{"full_name", "Full Name"}
	CompanyColumns   = []string{"Company Name", "company", "company_name"}
	WebsiteColumns   = []string{"Website", "website"}
)

// First returns the first non-blank value among the given columns, trimmed.
func (r LeadRecord) First(columns ...string) string {
	for _, col := range columns {
		if v := strings.TrimSpace(r[col]); v != "" {
			return v
		}
	}
	return ""
}

// Name is the full-name column when present, otherwise "first last".
func (r LeadRecord) Name() string {
	if full := r.First(FullNameColumns...); full != "" {
		return full
	}
	first := r.First(FirstNameColumns...)
	last := r.First(LastNameColumns...)
	return strings.TrimSpace(first + " " + last)
}

func (r LeadRecord) Company() string {
	return r.First(CompanyColumns...)
}

func (r LeadRecord) Website() string {
	return r.First(WebsiteColumns...)
}

// Merge returns a new record holding r's columns overlaid with extra.
// Columns in extra take precedence.
func (r LeadRecord) Merge(extra map[string]string) LeadRecord {
	out := make(LeadRecord, len(r)+len(extra))
	for k, v := range r {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}
