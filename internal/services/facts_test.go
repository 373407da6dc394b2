package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSkills(t *testing.T) {
	text := "Experienced developer using Python, AWS and Node.js daily. Worked on machine learning pipelines."

	skills := ExtractSkills(text)

	assert.Contains(t, skills, "Python")
	assert.Contains(t, skills, "Aws")
	assert.Contains(t, skills, "Node.Js")
	assert.Contains(t, skills, "Machine Learning")
	assert.True(t, sortedStrings(skills), "skills must be sorted")
}

func TestExtractSkills_WordBoundary(t *testing.T) {
	// "r" must not match inside other words, "go" must not match "google".
	skills := ExtractSkills("I work at google on rendering")
	assert.NotContains(t, skills, "R")
	assert.NotContains(t, skills, "Go")

	skills = ExtractSkills("Proficient in R and Go")
	assert.Contains(t, skills, "R")
	assert.Contains(t, skills, "Go")
}

func TestExtractSkills_NoDuplicates(t *testing.T) {
	skills := ExtractSkills("python python PYTHON Python")
	count := 0
	for _, s := range skills {
		if s == "Python" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestExtractContact(t *testing.T) {
	text := `John Smith
john.smith@example.com | +44 7911 123456
linkedin.com/in/john-smith`

	contact := ExtractContact(text)

	assert.Equal(t, "john.smith@example.com", contact.Email)
	assert.Equal(t, "linkedin.com/in/john-smith", contact.LinkedIn)
	assert.NotEmpty(t, contact.Phone)
}

func TestExtractContact_Empty(t *testing.T) {
	contact := ExtractContact("no contact details here")
	assert.Empty(t, contact.Email)
	assert.Empty(t, contact.Phone)
	assert.Empty(t, contact.LinkedIn)
}

func TestExtractContact_YearRangeIsNotAPhone(t *testing.T) {
	contact := ExtractContact("Software Engineer at Acme, 2019 - 2022")
	assert.Empty(t, contact.Phone)
}

func TestExtractEducation(t *testing.T) {
	text := `John Smith
Bachelor of Science in Computer Science, MIT
short uni
Master of Engineering, Stanford University
Work Experience at Acme`

	education := ExtractEducation(text)

	require.Len(t, education, 2)
	assert.Equal(t, "Bachelor of Science in Computer Science, MIT", education[0])
	assert.Equal(t, "Master of Engineering, Stanford University", education[1])
}

func TestExtractEducation_CapsAtFive(t *testing.T) {
	text := `Bachelor degree number one here
Bachelor degree number two here
Bachelor degree number three here
Bachelor degree number four here
Bachelor degree number five here
Bachelor degree number six here`

	education := ExtractEducation(text)
	assert.Len(t, education, 5)
}

func TestExtractName(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "first line is the name",
			text: "John Smith\njohn@example.com\nSoftware Engineer",
			want: "John Smith",
		},
		{
			name: "email line skipped",
			text: "john@example.com\nJohn Michael Smith\nLondon",
			want: "John Michael Smith",
		},
		{
			name: "phone line skipped",
			text: "555-123-4567\nJane Doe\nDesigner",
			want: "Jane Doe",
		},
		{
			name: "short multi-word name passes the character ratio",
			text: "Mary Jo Li\nSoftware Engineer\nLondon",
			want: "Mary Jo Li",
		},
		{
			name: "accented name",
			text: "José García\njose@example.com\nMadrid",
			want: "José García",
		},
		{
			name: "single word rejected",
			text: "Curriculum\nVitae Document Here Extra Words Beyond\nNothing",
			want: "",
		},
		{
			name: "name beyond first three lines is ignored",
			text: "a b c d e 1 2 3\n12345 67890 numbers everywhere 99\nx1 y2 z3 w4 v5\nJohn Smith",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractName(tt.text))
		})
	}
}

func TestExtractExperienceYears(t *testing.T) {
	text := "Developer 2019 - 2022\nAnalyst 2015-2017"

	years := ExtractExperienceYears(text, 2026)

	require.NotNil(t, years)
	assert.InDelta(t, 5.0, *years, 0.01)
}

func TestExtractExperienceYears_Present(t *testing.T) {
	years := ExtractExperienceYears("Engineer 2020 - Present", 2026)

	require.NotNil(t, years)
	assert.InDelta(t, 6.0, *years, 0.01)
}

func TestExtractExperienceYears_IgnoresImplausibleSpans(t *testing.T) {
	// Reversed and century-long ranges are noise, not experience.
	years := ExtractExperienceYears("1900 - 2020 and 2022 - 2020", 2026)
	assert.Nil(t, years)
}

func TestExtractExperienceYears_NoneFound(t *testing.T) {
	assert.Nil(t, ExtractExperienceYears("no dates at all", 2026))
}

func TestDetectIndustry(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "software engineering",
			text: "Built APIs in Python, deployed with Docker, versioned in git",
			want: "Software Engineering",
		},
		{
			name: "healthcare",
			text: "Provided patient care on the clinical ward following HIPAA rules",
			want: "Healthcare",
		},
		{
			name: "single keyword falls back to general",
			text: "I once used Python",
			want: "General",
		},
		{
			name: "empty text",
			text: "",
			want: "General",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectIndustry(tt.text))
		})
	}
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Aws", titleCase("aws"))
	assert.Equal(t, "Node.Js", titleCase("node.js"))
	assert.Equal(t, "Machine Learning", titleCase("machine learning"))
	assert.Equal(t, "Ci/Cd", titleCase("ci/cd"))
}

func sortedStrings(s []string) bool {
	for i := 1; i < len(s); i++ {
		if s[i-1] > s[i] {
			return false
		}
	}
	return true
}
