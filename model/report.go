package model

// MetadataSectionKey is the key of the report-details section. It carries
// report metadata (client, address, inspection date) rather than printable
// body content and is never paginated.
const MetadataSectionKey = "report_details"

// Report is an inspection report as supplied by the editing/storage layer.
type Report struct {
	ID       string    `json:"id" yaml:"id"`
	Title    string    `json:"title,omitempty" yaml:"title,omitempty"`
	Sections []Section `json:"sections" yaml:"sections"`
}

// Section is a titled block of report content (e.g. "Roof", "Electrical").
type Section struct {
	ID    string `json:"id" yaml:"id"`
	Key   string `json:"key" yaml:"key"`
	Title string `json:"title" yaml:"title"`

	// Info holds free-form fields. Only the number of keys matters for
	// layout; iteration order is irrelevant.
	Info map[string]any `json:"info,omitempty" yaml:"info,omitempty"`

	Findings []Finding `json:"findings,omitempty" yaml:"findings,omitempty"`
}

// Finding is one observation within a section. Empty strings mean the
// narrative or recommendation is absent.
type Finding struct {
	Media          []Media `json:"media,omitempty" yaml:"media,omitempty"`
	Narrative      string  `json:"narrative,omitempty" yaml:"narrative,omitempty"`
	Recommendation string  `json:"recommendation,omitempty" yaml:"recommendation,omitempty"`
}

// Media is an attachment (photo, video, document) on a finding.
type Media struct {
	ID          string `json:"id,omitempty" yaml:"id,omitempty"`
	URL         string `json:"url,omitempty" yaml:"url,omitempty"`
	ContentType string `json:"content_type,omitempty" yaml:"content_type,omitempty"`
	Caption     string `json:"caption,omitempty" yaml:"caption,omitempty"`
}

// IsMetadata reports whether the section is the report-details section.
func (s Section) IsMetadata() bool {
	return s.Key == MetadataSectionKey
}

// InfoFieldCount returns the number of info fields (0 for nil info)
func (s Section) InfoFieldCount() int {
	return len(s.Info)
}

// MediaCount returns the total number of attachments across all findings
func (s Section) MediaCount() int {
	count := 0
	for _, f := range s.Findings {
		count += len(f.Media)
	}
	return count
}

// PaginatedSections returns the report's sections in order, without the
// metadata section.
func (r *Report) PaginatedSections() []Section {
	return PaginatedSections(r.Sections)
}

// PaginatedSections filters the metadata section out of sections, keeping
// input order. The input slice is not modified.
func PaginatedSections(sections []Section) []Section {
	out := make([]Section, 0, len(sections))
	for _, s := range sections {
		if s.IsMetadata() {
			continue
		}
		out = append(out, s)
	}
	return out
}
