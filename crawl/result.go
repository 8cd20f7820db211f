package crawl

import "github.com/fwojciec/terreno"

// Status is the terminal state of a listing in the pipeline.
type Status int

const (
	StatusExtracted Status = iota
	StatusFilteredOut
	StatusDuplicate
	StatusSellerRejected
	StatusAreaRejected
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusExtracted:
		return "extracted"
	case StatusFilteredOut:
		return "filtered_out"
	case StatusDuplicate:
		return "duplicate"
	case StatusSellerRejected:
		return "seller_rejected"
	case StatusAreaRejected:
		return "area_rejected"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// Result is the outcome of running one listing through the pipeline.
// Property is set only for StatusExtracted and Err only for StatusFailed.
type Result struct {
	Status   Status
	URL      string
	Property *terreno.Property
	Reason   string
	Err      error
}

func extracted(p *terreno.Property) Result {
	return Result{Status: StatusExtracted, URL: p.URL, Property: p}
}

func skipped(status Status, url, reason string) Result {
	return Result{Status: status, URL: url, Reason: reason}
}

func failed(url string, err error) Result {
	return Result{Status: StatusFailed, URL: url, Err: err}
}

// Stats summarizes a crawl run.
type Stats struct {
	// Regions counts regions walked to their last page.
	Regions     int
	Pages       int
	FailedPages int
	Listings    int
	Saved       int
	Duplicates  int
	Filtered    int
	Rejected    int
	Failed      int
}

func (s *Stats) record(r Result) {
	s.Listings++
	switch r.Status {
	case StatusExtracted:
		s.Saved++
	case StatusDuplicate:
		s.Duplicates++
	case StatusFilteredOut:
		s.Filtered++
	case StatusSellerRejected, StatusAreaRejected:
		s.Rejected++
	case StatusFailed:
		s.Failed++
	}
}
