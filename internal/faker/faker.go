package faker

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Kind names a category of realistic text.
type Kind string

const (
	KindName     Kind = "name"
	KindCompany  Kind = "company"
	KindAddress  Kind = "address"
	KindSentence Kind = "sentence"
	KindCity     Kind = "city"
	KindPhrase   Kind = "phrase"

	KindEmail            Kind = "email"
	KindPhone            Kind = "phone"
	KindSecondaryAddress Kind = "secondary_address"
	KindState            Kind = "state"
	KindPostalCode       Kind = "postal_code"
)

// Faker produces realistic-looking names, addresses and text from its own
// seeded stream, independent of the numeric draws made by the generators.
type Faker struct {
	rand    *rand.Rand
	counter int
}

func New(seed uint64) *Faker {
	return &Faker{
		rand: rand.New(rand.NewPCG(seed, seed^0x5deece66d)),
	}
}

// Text dispatches on kind. Unknown kinds fall back to a single word.
func (f *Faker) Text(kind Kind) string {
	switch kind {
	case KindName:
		return f.Name()
	case KindCompany:
		return f.Company()
	case KindAddress:
		return f.StreetAddress()
	case KindSentence:
		return f.Sentence()
	case KindCity:
		return f.City()
	case KindPhrase:
		return f.CatchPhrase()
	case KindEmail:
		return f.Email()
	case KindPhone:
		return f.Phone()
	case KindSecondaryAddress:
		return f.SecondaryAddress()
	case KindState:
		return f.StateAbbr()
	case KindPostalCode:
		return f.Zipcode()
	default:
		return f.Word()
	}
}

func (f *Faker) pick(list []string) string {
	return list[f.rand.IntN(len(list))]
}

func (f *Faker) Name() string {
	return f.pick(firstNames) + " " + f.pick(lastNames)
}

func (f *Faker) Company() string {
	switch f.rand.IntN(3) {
	case 0:
		return f.pick(lastNames) + " " + f.pick(companySuffixes)
	case 1:
		return f.pick(lastNames) + "-" + f.pick(lastNames)
	default:
		return f.pick(lastNames) + ", " + f.pick(lastNames) + " and " + f.pick(lastNames)
	}
}

// CatchPhrase returns a three-word marketing phrase, e.g. "Adaptive modular framework".
func (f *Faker) CatchPhrase() string {
	phrase := f.pick(phraseAdjectives) + " " + f.pick(phraseDescriptors) + " " + f.pick(phraseNouns)
	return strings.ToUpper(phrase[:1]) + phrase[1:]
}

func (f *Faker) Email() string {
	f.counter++
	first := strings.ToLower(f.pick(firstNames))
	last := strings.ToLower(f.pick(lastNames))
	return fmt.Sprintf("%s.%s%d@%s", first, last, f.counter, f.pick(emailDomains))
}

func (f *Faker) Phone() string {
	return fmt.Sprintf("(%03d) %03d-%04d", f.rand.IntN(800)+200, f.rand.IntN(900)+100, f.rand.IntN(10000))
}

func (f *Faker) StreetAddress() string {
	return fmt.Sprintf("%d %s %s", f.rand.IntN(9999)+1, f.pick(streetNames), f.pick(streetSuffixes))
}

func (f *Faker) SecondaryAddress() string {
	if f.rand.IntN(2) == 0 {
		return fmt.Sprintf("Apt. %d", f.rand.IntN(900)+100)
	}
	return fmt.Sprintf("Suite %d", f.rand.IntN(900)+100)
}

func (f *Faker) City() string {
	return f.pick(cities)
}

func (f *Faker) StateAbbr() string {
	return f.pick(stateAbbrs)
}

func (f *Faker) Zipcode() string {
	return fmt.Sprintf("%05d", f.rand.IntN(99000)+1000)
}

func (f *Faker) Word() string {
	return f.pick(words)
}

// Sentence returns 4 to 10 words, capitalized and terminated with a period.
func (f *Faker) Sentence() string {
	n := f.rand.IntN(7) + 4
	parts := make([]string, n)
	for i := range parts {
		parts[i] = f.pick(words)
	}
	s := strings.Join(parts, " ")
	return strings.ToUpper(s[:1]) + s[1:] + "."
}

var firstNames = []string{
	"James", "Mary", "Robert", "Patricia", "John", "Jennifer", "Michael", "Linda", "David", "Elizabeth",
	"William", "Barbara", "Richard", "Susan", "Joseph", "Jessica", "Thomas", "Sarah", "Charles", "Karen",
	"Daniel", "Lisa", "Matthew", "Nancy", "Anthony", "Betty", "Mark", "Sandra", "Steven", "Ashley",
	"Paul", "Emily", "Andrew", "Donna", "Joshua", "Michelle", "Kevin", "Carol", "Brian", "Amanda",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Rodriguez", "Martinez",
	"Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Martin",
	"Lee", "Perez", "Thompson", "White", "Harris", "Sanchez", "Clark", "Ramirez", "Lewis", "Robinson",
	"Walker", "Young", "Allen", "King", "Wright", "Scott", "Torres", "Nguyen", "Hill", "Flores",
}

var companySuffixes = []string{"Inc", "LLC", "Group", "PLC", "Ltd", "and Sons", "Holdings"}

var phraseAdjectives = []string{
	"adaptive", "advanced", "automated", "balanced", "centralized", "customizable", "distributed",
	"enhanced", "ergonomic", "integrated", "innovative", "optimized", "robust", "seamless", "streamlined",
}

var phraseDescriptors = []string{
	"24/7", "asymmetric", "bi-directional", "context-sensitive", "dynamic", "global", "heuristic",
	"interactive", "logistical", "modular", "multimedia", "next generation", "scalable", "tangible",
}

var phraseNouns = []string{
	"ability", "algorithm", "architecture", "capacity", "core", "framework", "hardware", "interface",
	"matrix", "model", "paradigm", "platform", "solution", "strategy", "toolset",
}

var emailDomains = []string{"example.com", "example.net", "example.org", "mail.test", "corp.test"}

var streetNames = []string{
	"Main", "Oak", "Pine", "Maple", "Cedar", "Elm", "Washington", "Lake", "Hill", "Park",
	"Sunset", "Ridge", "River", "Church", "Highland", "Meadow", "Forest", "Spring", "Valley", "Mill",
}

var streetSuffixes = []string{"Street", "Avenue", "Road", "Lane", "Drive", "Court", "Boulevard", "Way"}

var cities = []string{
	"Springfield", "Riverside", "Franklin", "Greenville", "Bristol", "Clinton", "Fairview", "Salem",
	"Madison", "Georgetown", "Arlington", "Ashland", "Dover", "Oxford", "Jackson", "Burlington",
	"Manchester", "Milton", "Newport", "Auburn", "Dayton", "Lexington", "Milford", "Winchester",
}

var stateAbbrs = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "FL", "GA", "HI", "ID", "IL", "IN", "IA", "KS", "KY",
	"LA", "ME", "MD", "MA", "MI", "MN", "MS", "MO", "MT", "NE", "NV", "NH", "NJ", "NM", "NY", "NC", "ND",
	"OH", "OK", "OR", "PA", "RI", "SC", "SD", "TN", "TX", "UT", "VT", "VA", "WA", "WV", "WI", "WY",
}

var words = []string{
	"account", "agree", "already", "around", "available", "before", "building", "capital", "central",
	"check", "common", "company", "control", "customer", "decision", "delivery", "detail", "during",
	"early", "enough", "environment", "every", "final", "follow", "general", "ground", "happen",
	"improve", "include", "inside", "issue", "large", "level", "machine", "market", "material",
	"measure", "minute", "nothing", "order", "package", "partner", "people", "process", "product",
	"quality", "quickly", "reason", "record", "report", "result", "review", "section", "service",
	"simple", "single", "standard", "supply", "system", "through", "together", "various", "within",
}
