// internal/output/common.go
package output

// Output formats.
const (
	FormatText   = "text"
	FormatPretty = "pretty"
	FormatJSON   = "json"
	FormatJSONL  = "jsonl"
	FormatFASTA  = "fasta"
	FormatCSV    = "csv"
)

// HitHeader is the header row of the text hit table.
const HitHeader = "motif_id\tstart\tend\tstrand\texact\tscore\tsite"

// CSVClassHeader is the column comment line of the InSite CSV layout.
const CSVClassHeader = "##class,start,length,motif_type, strength"
