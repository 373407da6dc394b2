package services

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/manojthapa/neuroarc/internal/models"
)

// Deterministic fact extraction from CV text. Every function here is pure
// and works on the normalized text only, no model calls involved.

var (
	emailRe    = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phoneRe    = regexp.MustCompile(`(?:\+\d{1,3}[\s.-]?)?(?:\(?\d{2,4}\)?[\s.-]?)?\d{3,4}[\s.-]?\d{3,4}[\s.-]?\d{0,4}`)
	linkedinRe = regexp.MustCompile(`linkedin\.com/in/[\w-]+`)
	yearSpanRe = regexp.MustCompile(`(\d{4})\s*[-–—]\s*(?:(\d{4})|present|current)`)
	digitRunRe = regexp.MustCompile(`\d{3}[-.\s]?\d{3}`)
)

// ExtractSkills matches the universal skills table against the text.
// Single-word skills require word boundaries, multi-word skills match as
// substrings. The result is title-cased, deduplicated and sorted.
func ExtractSkills(text string) []string {
	lower := strings.ToLower(text)
	seen := make(map[string]struct{})

	for _, skill := range universalSkills {
		var found bool
		if strings.Contains(skill, " ") {
			found = strings.Contains(lower, skill)
		} else {
			re := regexp.MustCompile(`\b` + regexp.QuoteMeta(skill) + `\b`)
			found = re.MatchString(lower)
		}
		if found {
			seen[titleCase(skill)] = struct{}{}
		}
	}

	skills := make([]string, 0, len(seen))
	for s := range seen {
		skills = append(skills, s)
	}
	sort.Strings(skills)
	return skills
}

// ExtractContact returns the first email, phone number and LinkedIn slug
// found in the text. Missing fields stay empty.
func ExtractContact(text string) models.Contact {
	var c models.Contact
	if m := emailRe.FindString(text); m != "" {
		c.Email = m
	}
	if m := phoneRe.FindString(text); m != "" {
		c.Phone = strings.TrimSpace(m)
	}
	if m := linkedinRe.FindString(text); m != "" {
		c.LinkedIn = m
	}
	return c
}

// ExtractEducation collects lines mentioning an education keyword. Lines of
// ten characters or fewer are skipped and at most five entries are kept.
func ExtractEducation(text string) []string {
	entries := []string{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) <= 10 {
			continue
		}
		lower := strings.ToLower(line)
		for _, kw := range educationKeywords {
			if strings.Contains(lower, kw) {
				entries = append(entries, line)
				break
			}
		}
		if len(entries) == 5 {
			break
		}
	}
	return entries
}

// ExtractName guesses the candidate name from the first three non-blank
// lines. Lines containing contact details or too many or too few words are
// rejected, as are lines under 80% letters and whitespace.
func ExtractName(text string) string {
	lines := []string{}
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
		if len(lines) == 3 {
			break
		}
	}

	for _, line := range lines {
		if strings.Contains(line, "@") || digitRunRe.MatchString(line) {
			continue
		}
		words := strings.Fields(line)
		if len(words) < 2 || len(words) > 4 {
			continue
		}
		runes := []rune(line)
		if len(runes) >= 50 {
			continue
		}
		nameish := 0
		for _, r := range runes {
			if unicode.IsLetter(r) || unicode.IsSpace(r) {
				nameish++
			}
		}
		if float64(nameish)/float64(len(runes)) <= 0.8 {
			continue
		}
		return line
	}
	return ""
}

// ExtractExperienceYears sums year ranges like "2019 - 2022" or
// "2020 - present". Spans outside 0..50 years are ignored. Returns nil when
// nothing usable was found.
func ExtractExperienceYears(text string, currentYear int) *float64 {
	total := 0.0
	for _, m := range yearSpanRe.FindAllStringSubmatch(strings.ToLower(text), -1) {
		start := atoiOrZero(m[1])
		end := currentYear
		if m[2] != "" {
			end = atoiOrZero(m[2])
		}
		span := end - start
		if span >= 0 && span <= 50 {
			total += float64(span)
		}
	}
	if total == 0 {
		return nil
	}
	rounded := math.Round(total*10) / 10
	return &rounded
}

// DetectIndustry scores each industry category by keyword hits and returns
// the best one. A winning category needs at least two hits, otherwise the
// fallback applies. Ties go to the category listed first.
func DetectIndustry(text string) string {
	lower := strings.ToLower(text)

	best := fallbackIndustry
	bestScore := 0
	for _, cat := range industryCategories {
		score := 0
		for _, kw := range cat.keywords {
			if strings.Contains(lower, kw) {
				score++
			}
		}
		if score >= 2 && score > bestScore {
			best = cat.name
			bestScore = score
		}
	}
	return best
}

// titleCase uppercases the first letter of every space- or punctuation-
// delimited word, so "node.js" becomes "Node.Js" and "aws" becomes "Aws".
func titleCase(s string) string {
	out := []rune(s)
	prevLetter := false
	for i, r := range out {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		if isLetter && !prevLetter {
			if r >= 'a' && r <= 'z' {
				out[i] = r - ('a' - 'A')
			}
		} else if isLetter && prevLetter {
			if r >= 'A' && r <= 'Z' {
				out[i] = r + ('a' - 'A')
			}
		}
		prevLetter = isLetter
	}
	return string(out)
}

func atoiOrZero(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}
