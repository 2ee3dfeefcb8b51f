package domain

type Segment string

const (
	SegmentUnassigned Segment = "Unassigned"
	SegmentBSC        Segment = "BSC"
	SegmentGrowth     Segment = "Growth"
	SegmentMidMarket  Segment = "Mid-Market"
	SegmentEnterprise Segment = "Enterprise"
)

// ValidSegments is the canonical set of accepted segment names.
var ValidSegments = map[string]bool{
	"Unassigned": true, "BSC": true, "Growth": true,
	"Mid-Market": true, "Enterprise": true,
}
