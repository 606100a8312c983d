package models

import "strconv"

// SubmissionRecord is one predicted instance. Value holds a class label for
// classification and the textual rating for ranking. Reference rows are
// read into the same shape, one projection per task.
type SubmissionRecord struct {
	ID    string
	Value string
	// Line is the 1-based line in the source file, 0 when built in memory.
	Line int
}

// Identifier is the parsed form of "<sentence id>_<filler id>".
type Identifier struct {
	SentenceID int
	FillerID   int
}

func (id Identifier) String() string {
	return strconv.Itoa(id.SentenceID) + "_" + strconv.Itoa(id.FillerID)
}

// LabelMap indexes records by identifier. The caller is responsible for
// rejecting duplicate identifiers first; later records win.
func LabelMap(records []SubmissionRecord) map[string]string {
	m := make(map[string]string, len(records))
	for _, r := range records {
		m[r.ID] = r.Value
	}
	return m
}
