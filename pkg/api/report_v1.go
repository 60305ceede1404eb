// pkg/api/report_v1.go
package api

// ReportV1 is the stable JSON schema of one siteout run.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type ReportV1 struct {
	Name      string    `json:"name"`
	Mode      string    `json:"mode"`  // generate | refine | spacer | scan
	State     string    `json:"state"` // converged | exhausted | clean | hits
	Seed      int64     `json:"seed"`
	Rounds    int       `json:"rounds"`
	Mutations int       `json:"mutations"`
	Length    int       `json:"length"`
	GC        float64   `json:"gc"`
	Sequence  string    `json:"sequence"`
	Blocks    []BlockV1 `json:"blocks,omitempty"`
	Hits      []HitV1   `json:"hits"` // unresolved hits, or all hits for scan
	Motifs    []MotifV1 `json:"motifs,omitempty"`
}

// BlockV1 is one template block, half-open 0-based coordinates.
type BlockV1 struct {
	Kind     string  `json:"kind"` // functional | spacer
	Start    int     `json:"start"`
	End      int     `json:"end"`
	TargetGC float64 `json:"target_gc,omitempty"`
	GC       float64 `json:"gc"`
}

// HitV1 is one motif occurrence, half-open 0-based coordinates.
type HitV1 struct {
	MotifID string  `json:"motif_id"`
	Start   int     `json:"start"`
	End     int     `json:"end"`
	Strand  string  `json:"strand"` // "+" | "-"
	Exact   bool    `json:"exact"`
	Score   float64 `json:"score,omitempty"`
	Site    string  `json:"site"`
	// Weight is the site's likelihood ratio against the species background
	// (matrix hits only).
	Weight float64 `json:"weight,omitempty"`
}

// MotifV1 summarizes one catalog entry.
type MotifV1 struct {
	ID      string  `json:"id"`
	Kind    string  `json:"kind"` // explicit | pwm
	Width   int     `json:"width"`
	Seq     string  `json:"seq,omitempty"`
	Cutoff  float64 `json:"cutoff,omitempty"`
	PValue  float64 `json:"p_value,omitempty"`
	Entropy float64 `json:"entropy,omitempty"`
}

// HitLineV1 is one JSONL line: a hit tagged with the sequence name.
type HitLineV1 struct {
	Name string `json:"name"`
	HitV1
}
