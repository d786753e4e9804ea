package render

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"

	"resume-wizard-backend/resume/model"
)

// MimeType is the media type of rendered resumes.
const MimeType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Resume renders a CandidateProfile into a DOCX byte slice. The document is
// assembled part by part: centered 22pt bold name, ruled section headings,
// Calibri 11 body text, bulleted lists for highlights and skills.
func Resume(profile model.CandidateProfile) ([]byte, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	b := newDocBuilder()
	b.name(profile.Name)
	if contact := profile.ContactLine(); contact != "" {
		b.centeredText(contact)
	}

	if summary := strings.TrimSpace(profile.Summary); summary != "" {
		b.heading("Professional Summary")
		b.text(summary)
	}

	if len(profile.Experience) > 0 {
		b.heading("Experience")
		for _, exp := range profile.Experience {
			b.entryTitle(experienceTitle(exp))
			if meta := dateRangeLine(exp.Location, exp.Start, exp.End); meta != "" {
				b.text(meta)
			}
			b.bullets(exp.Bullets)
		}
	}

	if len(profile.Education) > 0 {
		b.heading("Education")
		for _, edu := range profile.Education {
			b.entryTitle(educationTitle(edu))
			if meta := dateRangeLine("", edu.Start, edu.End); meta != "" {
				b.text(meta)
			}
		}
	}

	if len(profile.KeySkills) > 0 {
		b.heading("Key Skills")
		b.bullets(profile.KeySkills)
	}

	if len(profile.TechnicalSkills) > 0 {
		b.heading("Technical Skills")
		b.bullets(profile.TechnicalSkills)
	}

	if len(profile.Certifications) > 0 {
		b.heading("Certifications")
		b.bullets(profile.Certifications)
	}

	if len(profile.Awards) > 0 {
		b.heading("Awards")
		b.bullets(profile.Awards)
	}

	return packDocx(b.documentXML())
}

func experienceTitle(exp model.ExperienceEntry) string {
	role := strings.TrimSpace(exp.Role)
	company := strings.TrimSpace(exp.Company)
	if role == "" {
		return company
	}
	if company == "" {
		return role
	}
	return fmt.Sprintf("%s, %s", role, company)
}

func educationTitle(edu model.EducationEntry) string {
	parts := make([]string, 0, 3)
	for _, v := range []string{edu.Degree, edu.Field, edu.Institution} {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, ", ")
}

func dateRangeLine(location, start, end string) string {
	dates := strings.TrimSpace(start)
	if trimmed := strings.TrimSpace(end); trimmed != "" {
		if dates != "" {
			dates += " - " + trimmed
		} else {
			dates = trimmed
		}
	}
	loc := strings.TrimSpace(location)
	switch {
	case loc != "" && dates != "":
		return loc + " | " + dates
	case loc != "":
		return loc
	default:
		return dates
	}
}

type docBuilder struct {
	body strings.Builder
}

func newDocBuilder() *docBuilder {
	return &docBuilder{}
}

// name writes the centered 22pt bold header paragraph.
func (b *docBuilder) name(text string) {
	fmt.Fprintf(&b.body,
		`<w:p><w:pPr><w:jc w:val="center"/></w:pPr><w:r><w:rPr><w:b/><w:sz w:val="44"/><w:szCs w:val="44"/></w:rPr><w:t xml:space="preserve">%s</w:t></w:r></w:p>`,
		escapeXML(text))
}

// heading writes a bold section heading with a bottom rule.
func (b *docBuilder) heading(text string) {
	fmt.Fprintf(&b.body,
		`<w:p><w:pPr><w:pBdr><w:bottom w:val="single" w:sz="6" w:space="1" w:color="auto"/></w:pBdr><w:spacing w:before="240" w:after="120"/></w:pPr><w:r><w:rPr><w:b/></w:rPr><w:t xml:space="preserve">%s</w:t></w:r></w:p>`,
		escapeXML(text))
}

// entryTitle writes a bold body line introducing an experience or education entry.
func (b *docBuilder) entryTitle(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	fmt.Fprintf(&b.body,
		`<w:p><w:r><w:rPr><w:b/></w:rPr><w:t xml:space="preserve">%s</w:t></w:r></w:p>`,
		escapeXML(text))
}

func (b *docBuilder) text(text string) {
	fmt.Fprintf(&b.body,
		`<w:p><w:r><w:t xml:space="preserve">%s</w:t></w:r></w:p>`,
		escapeXML(text))
}

func (b *docBuilder) centeredText(text string) {
	fmt.Fprintf(&b.body,
		`<w:p><w:pPr><w:jc w:val="center"/></w:pPr><w:r><w:t xml:space="preserve">%s</w:t></w:r></w:p>`,
		escapeXML(text))
}

func (b *docBuilder) bullets(items []string) {
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" {
			continue
		}
		fmt.Fprintf(&b.body,
			`<w:p><w:pPr><w:pStyle w:val="ListParagraph"/><w:numPr><w:ilvl w:val="0"/><w:numId w:val="1"/></w:numPr></w:pPr><w:r><w:t xml:space="preserve">%s</w:t></w:r></w:p>`,
			escapeXML(trimmed))
	}
}

func (b *docBuilder) documentXML() []byte {
	var out bytes.Buffer
	out.WriteString(documentOpen)
	out.WriteString(b.body.String())
	out.WriteString(documentClose)
	return out.Bytes()
}

func packDocx(documentXML []byte) ([]byte, error) {
	var output bytes.Buffer
	writer := zip.NewWriter(&output)

	parts := []struct {
		name    string
		content []byte
	}{
		{"[Content_Types].xml", []byte(contentTypesXML)},
		{"_rels/.rels", []byte(packageRelsXML)},
		{"word/_rels/document.xml.rels", []byte(documentRelsXML)},
		{"word/styles.xml", []byte(stylesXML)},
		{"word/numbering.xml", []byte(numberingXML)},
		{"word/document.xml", documentXML},
	}

	for _, part := range parts {
		f, err := writer.Create(part.name)
		if err != nil {
			return nil, fmt.Errorf("create zip entry %s: %w", part.name, err)
		}
		if _, err := f.Write(part.content); err != nil {
			return nil, fmt.Errorf("write zip entry %s: %w", part.name, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}
	return output.Bytes(), nil
}

var xmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escapeXML(s string) string {
	return xmlReplacer.Replace(s)
}
