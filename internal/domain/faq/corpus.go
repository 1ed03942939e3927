package faq

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyCorpus is returned when a corpus holds no entries.
var ErrEmptyCorpus = errors.New("faq corpus has no entries")

// CorpusSource loads the ordered list of FAQ entries.
type CorpusSource interface {
	Load(ctx context.Context) ([]Entry, error)
	Describe() string
}

// DefaultEntries returns the built-in internship FAQ corpus.
func DefaultEntries() []Entry {
	return []Entry{
		{
			Question: "What is an internship?",
			Answer:   "An internship is a temporary work experience offered by companies or organizations to students or recent graduates, allowing them to gain practical skills and industry knowledge in their field of study.",
		},
		{
			Question: "Are internships paid or unpaid?",
			Answer:   "Internships can be either paid or unpaid. Paid internships provide compensation (hourly wage or stipend), while unpaid internships offer experience and sometimes academic credit instead of payment.",
		},
		{
			Question: "How long do internships typically last?",
			Answer:   "Most internships last between 2-6 months, with summer internships typically being 8-12 weeks. Some part-time internships during academic terms may last longer (3-6 months).",
		},
		{
			Question: "When should I apply for summer internships?",
			Answer:   "For summer internships, applications typically open 6-9 months in advance. The best time to apply is usually between September and February for the following summer.",
		},
		{
			Question: "What documents do I need for an internship application?",
			Answer:   "Common requirements include: Resume/CV, Cover letter, Academic transcripts, Letters of recommendation, and Portfolio (for creative fields).",
		},
		{
			Question: "Can international students apply for internships?",
			Answer:   "Yes, but they may need additional documentation like a valid student visa (F-1 in the US) and possibly CPT/OPT authorization. Some companies may have restrictions.",
		},
		{
			Question: "How can I make my internship application stand out?",
			Answer:   "Highlight relevant coursework, projects, and skills. Tailor your resume for each position, include measurable achievements, and demonstrate enthusiasm for the specific company/role.",
		},
		{
			Question: "What should I expect from my first day as an intern?",
			Answer:   "Typically includes orientation, meeting your team, learning about company policies, setting up your workspace, and receiving initial assignments. Dress professionally and come prepared with questions.",
		},
		{
			Question: "Can an internship lead to a full-time job?",
			Answer:   "Yes, many companies use internships as a recruitment pipeline. About 50-60% of interns receive full-time job offers from their internship employers according to NACE data.",
		},
		{
			Question: "What's the difference between an internship and a co-op?",
			Answer:   "Co-ops are typically longer (3-12 months), more structured, often paid, and may alternate with academic terms. Internships are usually shorter and may not be as integrated with academic programs.",
		},
	}
}

// ValidateEntries rejects empty corpora and blank questions or answers.
func ValidateEntries(entries []Entry) error {
	if len(entries) == 0 {
		return ErrEmptyCorpus
	}
	for i, entry := range entries {
		if strings.TrimSpace(entry.Question) == "" {
			return fmt.Errorf("entry %d: question cannot be empty", i)
		}
		if strings.TrimSpace(entry.Answer) == "" {
			return fmt.Errorf("entry %d: answer cannot be empty", i)
		}
	}
	return nil
}
