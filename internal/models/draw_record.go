package models

import (
	"strings"
	"time"
)

// DrawTimeLayout is the lexical format draw timestamps arrive in,
// e.g. "04/15/25 09:30 AM". Unpadded components are accepted too.
const DrawTimeLayout = "1/2/06 3:04 PM"

// DrawRecord is one participant entry from a draw-time list.
type DrawRecord struct {
	ID          string    `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	DrawTime    time.Time `json:"draw_time"`
	RawDrawTime string    `json:"raw_draw_time"`
	// OriginIndex is the zero-based row position in the source list.
	// It only exists to break timestamp ties deterministically.
	OriginIndex int `json:"origin_index"`
}

// HasID reports whether the record carries a usable identity.
func (d *DrawRecord) HasID() bool {
	return strings.TrimSpace(d.ID) != ""
}

// DisplayName returns the record's name as shown in reports.
func (d *DrawRecord) DisplayName() string {
	return strings.TrimSpace(strings.TrimSpace(d.FirstName) + " " + strings.TrimSpace(d.LastName))
}

// MatchesName compares first and last name case-insensitively,
// ignoring surrounding whitespace.
func (d *DrawRecord) MatchesName(first, last string) bool {
	return strings.EqualFold(strings.TrimSpace(d.FirstName), strings.TrimSpace(first)) &&
		strings.EqualFold(strings.TrimSpace(d.LastName), strings.TrimSpace(last))
}

// Ranking is an ordered competitor sequence from a single source, sorted by
// (draw time ascending, origin index ascending). It is never mutated after
// construction.
type Ranking struct {
	Source  string
	Records []DrawRecord
}

// Len returns the number of records in the ranking.
func (r *Ranking) Len() int {
	return len(r.Records)
}

// IsEmpty reports whether the ranking holds no records.
func (r *Ranking) IsEmpty() bool {
	return len(r.Records) == 0
}

// Ahead returns the records strictly before position idx.
func (r *Ranking) Ahead(idx int) []DrawRecord {
	if idx <= 0 {
		return nil
	}
	if idx > len(r.Records) {
		idx = len(r.Records)
	}
	return r.Records[:idx]
}

// ClaimantSet is an unordered set of identities predicted to claim a spot in
// some pool before the primary competition is reached.
type ClaimantSet map[string]struct{}

// NewClaimantSet returns an empty claimant set.
func NewClaimantSet() ClaimantSet {
	return make(ClaimantSet)
}

// Add inserts an identity into the set.
func (s ClaimantSet) Add(id string) {
	s[id] = struct{}{}
}

// Contains reports whether the identity is in the set.
func (s ClaimantSet) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of identities in the set.
func (s ClaimantSet) Len() int {
	return len(s)
}
