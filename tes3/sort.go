package tes3

import (
	"sort"
	"strings"
)

const (
	rankHeader = iota
	rankOrphanInfo
	rankRecord
)

// recordGroup is a record that moves as a unit when sorting: a DIAL record
// together with the INFO records that follow it, or any other single
// record.
type recordGroup struct {
	rank    int
	tag     string
	id      string
	records []*Record
}

func (g recordGroup) less(other recordGroup) bool {
	if g.rank != other.rank {
		return g.rank < other.rank
	}
	if g.tag != other.tag {
		return g.tag < other.tag
	}

	return g.id < other.id
}

// Sort puts the records in canonical order: the TES3 header first, then
// records by type tag and case-folded ID. Dialogue responses (INFO) stay
// behind the DIAL record they belong to, in their original order. The sort
// is stable, so records with equal keys keep their relative order, and
// sorting a sorted plugin leaves it unchanged.
func (p *Plugin) Sort() {
	groups := p.groups()
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].less(groups[j]) })

	records := make([]*Record, 0, len(p.Records))
	for _, g := range groups {
		records = append(records, g.records...)
	}
	p.Records = records
}

func (p *Plugin) groups() []recordGroup {
	groups := make([]recordGroup, 0, len(p.Records))
	for _, r := range p.Records {
		if r.Tag == "INFO" && len(groups) > 0 && groups[len(groups)-1].tag == "DIAL" {
			last := &groups[len(groups)-1]
			last.records = append(last.records, r)
			continue
		}

		g := recordGroup{
			rank:    rankRecord,
			tag:     r.Tag,
			id:      strings.ToLower(r.ID()),
			records: []*Record{r},
		}
		switch r.Tag {
		case HeaderTag:
			g.rank = rankHeader
		case "INFO":
			// An INFO without a DIAL in front of it goes ahead of every
			// DIAL so that a second pass cannot attach it to one.
			g.rank = rankOrphanInfo
		}
		groups = append(groups, g)
	}

	return groups
}
