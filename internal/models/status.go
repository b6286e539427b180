package models

// Status is the read-only publication state reference table. Rows are
// seeded at migration time and never edited through the API.
type Status struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Status string `gorm:"uniqueIndex;not null" json:"status"`
}

// Seeded status ids. These are the single source of truth for the
// draft/published mapping; everything else resolves labels through
// StatusIDByLabel / StatusLabel instead of repeating literals.
const (
	StatusDraft     uint = 1
	StatusPublished uint = 2
)

const (
	StatusLabelDraft     = "draft"
	StatusLabelPublished = "published"
)

var statusLabels = map[uint]string{
	StatusDraft:     StatusLabelDraft,
	StatusPublished: StatusLabelPublished,
}

// StatusIDByLabel resolves a status label to its seeded id.
func StatusIDByLabel(label string) (uint, bool) {
	for id, l := range statusLabels {
		if l == label {
			return id, true
		}
	}
	return 0, false
}

// StatusLabel returns the label for a seeded status id, or "" if unknown.
func StatusLabel(id uint) string {
	return statusLabels[id]
}

// SeedStatuses returns the reference rows inserted at migration time.
func SeedStatuses() []Status {
	return []Status{
		{ID: StatusDraft, Status: StatusLabelDraft},
		{ID: StatusPublished, Status: StatusLabelPublished},
	}
}
