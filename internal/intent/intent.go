// Package intent classifies queries into coarse topical categories using
// keyword membership tests. Classification is intentionally simple: the
// rule order below is the precedence contract, with compound intents
// (topic + aspect) listed before their bare topic.
package intent

import "strings"

// Intent is a topical classification label for a query.
type Intent string

const (
	HostelFresher      Intent = "hostel_fresher"
	HostelFee          Intent = "hostel_fee"
	HostelBooking      Intent = "hostel_booking"
	HostelGeneral      Intent = "hostel_general"
	FeeScholarship     Intent = "fee_scholarship"
	FeeStructure       Intent = "fee_structure"
	AdmissionProcess   Intent = "admission_process"
	AdmissionDocuments Intent = "admission_documents"
	AdmissionGeneral   Intent = "admission_general"
	Placement          Intent = "placement"
	Programs           Intent = "programs"
	Contact            Intent = "contact"
	Website            Intent = "website"
	Facilities         Intent = "facilities"
	Transport          Intent = "transport"
	FoodMenu           Intent = "food_menu"
	General            Intent = "general"
)

// rule matches when any primary keyword appears and, if qualifiers are
// present, any qualifier appears too.
type rule struct {
	intent     Intent
	primary    []string
	qualifiers []string
}

// Classifier resolves a query to a single intent via an ordered rule list.
type Classifier struct {
	rules []rule
}

// Keywords overrides the primary keyword set for one intent.
type Keywords map[Intent][]string

// NewClassifier builds a classifier with the default rules, optionally
// overriding per-intent primary keyword sets from configuration.
func NewClassifier(overrides Keywords) *Classifier {
	rules := defaultRules()
	if len(overrides) > 0 {
		for i := range rules {
			if kw, ok := overrides[rules[i].intent]; ok && len(kw) > 0 {
				rules[i].primary = kw
			}
		}
	}
	return &Classifier{rules: rules}
}

// Classify returns the first matching intent in precedence order, or
// General when nothing matches. Matching is case-insensitive substring
// membership against the whole query.
func (c *Classifier) Classify(query string) Intent {
	q := strings.ToLower(query)
	for _, r := range c.rules {
		if !containsAny(q, r.primary) {
			continue
		}
		if len(r.qualifiers) > 0 && !containsAny(q, r.qualifiers) {
			continue
		}
		return r.intent
	}
	return General
}

func containsAny(q string, words []string) bool {
	for _, w := range words {
		if strings.Contains(q, w) {
			return true
		}
	}
	return false
}

var hostelWords = []string{"hostel", "accommodation", "dormitory", "residence", "room", "stay"}
var admissionWords = []string{"admission", "apply", "application", "eligibility", "entrance", "join"}

func defaultRules() []rule {
	return []rule{
		// Compound hostel intents win over the bare topic.
		{intent: HostelFresher, primary: hostelWords, qualifiers: []string{"fresher", "freshman", "first year", "1st year", "new student"}},
		{intent: HostelFee, primary: hostelWords, qualifiers: []string{"fee", "cost", "price", "charge", "tariff"}},
		{intent: HostelBooking, primary: hostelWords, qualifiers: []string{"book", "booking", "reserve", "apply"}},
		{intent: HostelGeneral, primary: hostelWords},

		{intent: FeeScholarship, primary: []string{"fee", "fees", "cost", "price", "charge", "tuition", "payment"}, qualifiers: []string{"scholarship", "discount", "waiver"}},
		{intent: FeeStructure, primary: []string{"fee", "fees", "cost", "price", "charge", "tuition", "payment"}},

		{intent: AdmissionProcess, primary: admissionWords, qualifiers: []string{"process", "how to", "procedure", "steps"}},
		{intent: AdmissionDocuments, primary: admissionWords, qualifiers: []string{"document", "certificate", "required"}},
		{intent: AdmissionGeneral, primary: admissionWords},

		{intent: Placement, primary: []string{"placement", "job", "company", "recruit", "package", "salary"}},
		{intent: Programs, primary: []string{"program", "course", "degree", "branch", "department", "btech", "mtech", "mba"}},
		{intent: Contact, primary: []string{"contact", "phone", "email", "address", "reach", "call"}},
		{intent: Website, primary: []string{"website", "portal", "url", "link", "online"}},
		{intent: Facilities, primary: []string{"facility", "facilities", "lab", "library", "sports", "gym"}},
		{intent: Transport, primary: []string{"bus", "transport", "route", "travel"}},
		{intent: FoodMenu, primary: []string{"food", "menu", "mess", "meal", "breakfast", "lunch", "dinner", "snacks", "dining", "cuisine"}},
	}
}

// Greetings short-circuit retrieval entirely. A query counts as a greeting
// only when it is short and mentions no institutional topic.
var greetingWords = []string{
	"hello", "hi", "hey", "namaste", "vanakkam", "namaskar",
	"how are you", "whats up", "good morning", "good afternoon", "good evening",
}

var topicWords = []string{"hostel", "fee", "admission", "course", "placement", "program"}

// IsGreeting reports whether the query is a social greeting rather than an
// information request.
func IsGreeting(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if len(q) >= 25 {
		return false
	}
	if containsAny(q, topicWords) {
		return false
	}
	return containsAny(q, greetingWords)
}
