package resumes

import "time"

// ResumeSummary is the outward-facing representation of a stored resume.
type ResumeSummary struct {
	ResumeID  string    `json:"resume_id"`
	Name      string    `json:"name"`
	MimeType  string    `json:"mime_type"`
	SizeBytes int64     `json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
}

func toSummary(resume Resume) ResumeSummary {
	return ResumeSummary{
		ResumeID:  resume.ID,
		Name:      resume.FullName,
		MimeType:  resume.MimeType,
		SizeBytes: resume.SizeBytes,
		CreatedAt: resume.CreatedAt,
	}
}
