// Package format shapes ranked retrieval results into user-facing answers.
// Each intent selects a text-assembly strategy: a templated skeleton backed
// by the configured fact sheet, or a digest of the retrieved chunks. Every
// answer ends with a deduplicated source citation line.
package format

import (
	"fmt"
	"sort"
	"strings"

	"campusqa/internal/domain"
	"campusqa/internal/intent"
)

// Formatter renders responses for classified queries.
type Formatter struct {
	facts Facts
}

func NewFormatter(facts Facts) *Formatter {
	return &Formatter{facts: facts}
}

// Greeting is the canned reply for social greetings; retrieval is skipped.
func (f *Formatter) Greeting() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello! I'm the assistant for %s. You can ask me about:\n\n", f.facts.Institution)
	for _, topic := range f.facts.Topics {
		fmt.Fprintf(&b, "- %s\n", topic)
	}
	b.WriteString("\nHow can I help you today?")
	return b.String()
}

// NoResults is the canned reply when nothing cleared the relevance
// threshold. It must guide the user toward askable topics, never be empty.
func (f *Formatter) NoResults() string {
	var b strings.Builder
	b.WriteString("I couldn't find specific information about that. Please try asking about:\n\n")
	for _, topic := range f.facts.Topics {
		fmt.Fprintf(&b, "- %s\n", topic)
	}
	return strings.TrimRight(b.String(), "\n")
}

// Format renders ranked chunks according to the query's intent and appends
// the citation line. With at least one ranked chunk the output is never
// empty: unknown intents fall through to the numbered digest.
func (f *Formatter) Format(in intent.Intent, results []domain.Result) string {
	var body string
	switch in {
	case intent.HostelFee, intent.HostelFresher:
		body = f.hostelFees()
	case intent.HostelBooking:
		body = f.hostelBooking()
	case intent.FeeStructure, intent.FeeScholarship:
		body = f.feeStructure(in)
	case intent.AdmissionProcess:
		body = f.admissionProcess()
	case intent.AdmissionDocuments:
		body = f.admissionDocuments()
	case intent.Placement:
		body = f.placement(results)
	case intent.Contact:
		body = f.contacts()
	case intent.Programs:
		body = f.programs()
	case intent.FoodMenu:
		body = f.foodMenu(results)
	default:
		body = digest(in, results)
	}
	if citation := citationLine(results); citation != "" {
		body += "\n\n" + citation
	}
	return body
}

func (f *Formatter) hostelFees() string {
	var b strings.Builder
	b.WriteString("## Hostel Fee Structure\n\n")
	b.WriteString("| Occupancy | Room Type | Men's Hostel | Women's Hostel |\n")
	b.WriteString("|-|-|-|-|\n")
	for _, row := range f.facts.FeeTable {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", row.Occupancy, row.RoomType, row.Mens, row.Womens)
	}
	b.WriteString("\nMess fees are included in the hostel fees.\n")
	fmt.Fprintf(&b, "\nContact: %s | %s", f.facts.HostelPhone, f.facts.HostelEmail)
	return b.String()
}

func (f *Formatter) hostelBooking() string {
	var b strings.Builder
	b.WriteString("## Hostel Booking Process\n\n")
	fmt.Fprintf(&b, "1. Visit the portal: %s\n", f.facts.HostelPortal)
	b.WriteString("2. Select a room type (2/4/5-bed sharing, AC or non-AC)\n")
	b.WriteString("3. Pay the annual hostel fee online (mess fee included)\n")
	b.WriteString("4. Print the application form and get a parent's signature\n")
	b.WriteString("5. Submit the signed form when entering the hostel\n\n")
	b.WriteString("Allocation is on a first-come-first-serve basis.\n")
	fmt.Fprintf(&b, "\nHelp: %s | %s", f.facts.HostelPhone, f.facts.HostelEmail)
	return b.String()
}

func (f *Formatter) feeStructure(in intent.Intent) string {
	var b strings.Builder
	b.WriteString("## Fee Structure\n\n")
	b.WriteString("### Hostel (annual):\n")
	for _, row := range f.facts.FeeTable {
		fmt.Fprintf(&b, "- %s %s: %s\n", row.Occupancy, row.RoomType, row.Womens)
	}
	if in == intent.FeeScholarship && len(f.facts.Scholarships) > 0 {
		b.WriteString("\n### Scholarships:\n")
		for _, s := range f.facts.Scholarships {
			fmt.Fprintf(&b, "- %s\n", s)
		}
	}
	fmt.Fprintf(&b, "\nFor the detailed program fee structure contact %s.", f.facts.AdmissionsEmail)
	return b.String()
}

func (f *Formatter) admissionProcess() string {
	var b strings.Builder
	b.WriteString("## Admission Process\n\n")
	fmt.Fprintf(&b, "1. Register at %s\n", f.facts.AdmissionsPortal)
	b.WriteString("2. Fill in personal and academic details\n")
	b.WriteString("3. Upload mark sheets, entrance scorecard and photographs\n")
	b.WriteString("4. Pay the application fee online\n")
	b.WriteString("5. Track your application status on the portal\n\n")
	fmt.Fprintf(&b, "Admissions: %s | Toll-free: %s | %s",
		f.facts.AdmissionsPhone, f.facts.AdmissionsTollFree, f.facts.AdmissionsEmail)
	return b.String()
}

func (f *Formatter) admissionDocuments() string {
	var b strings.Builder
	b.WriteString("## Documents Required for Admission\n\n")
	b.WriteString("- 10th and 12th standard mark sheets\n")
	b.WriteString("- Transfer certificate\n")
	b.WriteString("- Entrance exam scorecard (JEE / university entrance)\n")
	b.WriteString("- Community certificate, if applicable\n")
	b.WriteString("- Passport-size photographs\n")
	b.WriteString("- Aadhaar card copy\n\n")
	fmt.Fprintf(&b, "Upload scanned copies at %s and carry originals for verification.", f.facts.AdmissionsPortal)
	return b.String()
}

func (f *Formatter) placement(results []domain.Result) string {
	var b strings.Builder
	b.WriteString("## Placements\n\n")
	for i, r := range results {
		if i >= 5 {
			break
		}
		fmt.Fprintf(&b, "- %s\n", r.Chunk.Text)
	}
	fmt.Fprintf(&b, "\nPlacement cell: %s | %s", f.facts.PlacementEmail, f.facts.PlacementPhone)
	return b.String()
}

func (f *Formatter) contacts() string {
	var b strings.Builder
	b.WriteString("## Contact Information\n\n")
	fmt.Fprintf(&b, "- Admissions: %s (toll-free %s), %s\n",
		f.facts.AdmissionsPhone, f.facts.AdmissionsTollFree, f.facts.AdmissionsEmail)
	fmt.Fprintf(&b, "- Hostel: %s, %s\n", f.facts.HostelPhone, f.facts.HostelEmail)
	fmt.Fprintf(&b, "- Placements: %s, %s", f.facts.PlacementPhone, f.facts.PlacementEmail)
	return b.String()
}

func (f *Formatter) programs() string {
	var b strings.Builder
	b.WriteString("## Programs Offered\n\n")
	b.WriteString("### Undergraduate (B.Tech):\n")
	for _, p := range f.facts.Undergraduate {
		fmt.Fprintf(&b, "- %s\n", p)
	}
	b.WriteString("\n### Postgraduate:\n")
	for _, p := range f.facts.Postgraduate {
		fmt.Fprintf(&b, "- %s\n", p)
	}
	fmt.Fprintf(&b, "\nAdmissions: %s", f.facts.AdmissionsEmail)
	return b.String()
}

func (f *Formatter) foodMenu(results []domain.Result) string {
	var b strings.Builder
	b.WriteString("## Mess & Food\n\n")
	if len(f.facts.MessTimings) > 0 {
		b.WriteString("### Timings:\n")
		for _, line := range f.facts.MessTimings {
			fmt.Fprintf(&b, "- %s\n", line)
		}
		b.WriteString("\n")
	}
	for i, r := range results {
		if i >= 3 {
			break
		}
		fmt.Fprintf(&b, "- %s\n", r.Chunk.Text)
	}
	b.WriteString("\nMess fees are included in the hostel fees.")
	return strings.TrimRight(b.String(), "\n")
}

// digest is the generic fallback: a numbered list of the top ranked
// chunks under a heading naming the intent.
func digest(in intent.Intent, results []domain.Result) string {
	var b strings.Builder
	heading := strings.ReplaceAll(string(in), "_", " ")
	fmt.Fprintf(&b, "**Information found (%s):**\n\n", heading)
	for i, r := range results {
		if i >= 5 {
			break
		}
		fmt.Fprintf(&b, "%d. %s\n\n", i+1, r.Chunk.Text)
	}
	return strings.TrimRight(b.String(), "\n")
}

// citationLine names the contributing source documents, deduplicated and
// sorted for stable output.
func citationLine(results []domain.Result) string {
	seen := make(map[string]struct{}, len(results))
	var sources []string
	for _, r := range results {
		if r.Chunk.SourceID == "" {
			continue
		}
		if _, ok := seen[r.Chunk.SourceID]; ok {
			continue
		}
		seen[r.Chunk.SourceID] = struct{}{}
		sources = append(sources, r.Chunk.SourceID)
	}
	if len(sources) == 0 {
		return ""
	}
	sort.Strings(sources)
	return fmt.Sprintf("*Source: %s*", strings.Join(sources, ", "))
}
