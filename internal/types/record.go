package types

// Artifact file names inside a record directory.
const (
	LinkFile     = "link.txt"
	JDFile       = "JD.md"
	MetadataFile = "metadata.json"
	ResumeStem   = "resume"
)

// StatusApplied is the status every new record starts with.
const StatusApplied = "Applied"

// RecordMetadata is the content of metadata.json. Field order is the on-disk key order.
type RecordMetadata struct {
	ID        string          `json:"id"`
	Company   string          `json:"company"`
	Role      string          `json:"role"`
	URL       string          `json:"url"`
	Status    string          `json:"status"`
	Notes     string          `json:"notes"`
	JDSource  JDSource        `json:"jdSource"`
	CreatedAt int64           `json:"createdAt"`
	SavedAt   int64           `json:"savedAt"`
	Resume    *ResumeMetadata `json:"resume"`
}

// ResumeMetadata describes an attached résumé in metadata.json.
type ResumeMetadata struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}

// NewRecordMetadata builds the metadata of a record saved at savedAt (Unix ms).
func NewRecordMetadata(s *Snapshot, resume *ResumeDescriptor, savedAt int64) *RecordMetadata {
	source := s.JDSource
	if source == "" {
		source = JDSourceInline
	}
	createdAt := s.CreatedAt
	if createdAt == 0 {
		createdAt = savedAt
	}

	meta := &RecordMetadata{
		ID:        s.ID,
		Company:   s.Company,
		Role:      s.Role,
		URL:       s.URL,
		Status:    StatusApplied,
		Notes:     "",
		JDSource:  source,
		CreatedAt: createdAt,
		SavedAt:   savedAt,
	}
	if resume != nil {
		meta.Resume = &ResumeMetadata{
			Name: resume.Name,
			Type: resume.MimeType,
			Size: resume.SizeBytes,
		}
	}
	return meta
}
