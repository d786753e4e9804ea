package s3

import "testing"

func TestApplyPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "no prefix", prefix: "", key: "user/resume.docx", want: "user/resume.docx"},
		{name: "simple prefix", prefix: "resumes", key: "user/resume.docx", want: "resumes/user/resume.docx"},
		{name: "prefix trailing slash", prefix: "resumes/", key: "user/resume.docx", want: "resumes/user/resume.docx"},
		{name: "prefix and key slashes", prefix: "/resumes/", key: "/user/resume.docx", want: "resumes/user/resume.docx"},
		{name: "nested prefix", prefix: "resumes/v1", key: "user/resume.docx", want: "resumes/v1/user/resume.docx"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := applyPrefix(tt.prefix, tt.key); got != tt.want {
				t.Fatalf("applyPrefix(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
			}
		})
	}
}
