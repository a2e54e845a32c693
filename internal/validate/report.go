package validate

import "fmt"

// Category is a kind of validation finding.
type Category int

const (
	DataTypeError Category = iota
	MissingMessagesList
	MessageMissingKey
	MessageUnrecognizedKey
	UnrecognizedRole
	MissingContent
	MissingAssistantMessage
)

// String returns the human-readable label for the category.
func (c Category) String() string {
	switch c {
	case DataTypeError:
		return "Data Type Error"
	case MissingMessagesList:
		return "Missing Messages List"
	case MessageMissingKey:
		return "Message Missing Key"
	case MessageUnrecognizedKey:
		return "Message Unrecognized Key"
	case UnrecognizedRole:
		return "Unrecognized Role"
	case MissingContent:
		return "Missing Content"
	case MissingAssistantMessage:
		return "Missing Assistant Message"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// Issue is a single finding. Message is the 0-based index within the
// conversation, or -1 when the whole record is at fault.
type Issue struct {
	Line     int
	Message  int
	Category Category
}

// Report accumulates findings keyed by category.
type Report struct {
	Issues []Issue

	counts map[Category]int
	lines  map[Category][]int
	order  []Category
}

// NewReport returns an empty Report.
func NewReport() *Report {
	return &Report{
		counts: make(map[Category]int),
		lines:  make(map[Category][]int),
	}
}

func (r *Report) add(line, message int, c Category) {
	if _, seen := r.counts[c]; !seen {
		r.order = append(r.order, c)
	}
	r.counts[c]++
	r.lines[c] = append(r.lines[c], line)
	r.Issues = append(r.Issues, Issue{Line: line, Message: message, Category: c})
}

// Count returns how many times c fired.
func (r *Report) Count(c Category) int { return r.counts[c] }

// Lines returns the line numbers where c fired, one entry per occurrence.
func (r *Report) Lines(c Category) []int { return r.lines[c] }

// Categories returns the categories that fired, in first-seen order.
func (r *Report) Categories() []Category { return r.order }

// Total returns the number of findings.
func (r *Report) Total() int { return len(r.Issues) }

// Empty reports whether no findings were recorded.
func (r *Report) Empty() bool { return len(r.Issues) == 0 }
