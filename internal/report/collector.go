package report

import "github.com/starford/keyscan/internal/models"

// Result is the in-memory outcome of a scan.
type Result struct {
	Matches []models.Match   `json:"matches"`
	Errors  []FileErrorEvent `json:"errors"`
	Summary models.Summary   `json:"summary"`
}

// Collector keeps every event in memory.
type Collector struct {
	res Result
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	return &Collector{res: Result{Matches: []models.Match{}, Errors: []FileErrorEvent{}}}
}

func (c *Collector) Match(m models.Match) error {
	c.res.Matches = append(c.res.Matches, m)
	return nil
}

func (c *Collector) FileError(e models.FileError) error {
	c.res.Errors = append(c.res.Errors, *ErrorEvent(e).Error)
	return nil
}

func (c *Collector) Close() error { return nil }

// Result returns the collected events with sum attached.
func (c *Collector) Result(sum models.Summary) Result {
	out := c.res
	out.Summary = sum
	return out
}

var (
	_ Reporter = (*Text)(nil)
	_ Reporter = (*JSON)(nil)
	_ Reporter = (*YAML)(nil)
	_ Reporter = (*Collector)(nil)
)
