/*
main.go - Command-line eligibility quiz

PURPOSE:
  Answers the nine quiz questions from flags, evaluates them against the
  2025 rules and prints the assessment to stdout.

COMMAND-LINE FLAGS (all required, nothing is defaulted):
  -state               NSW, VIC, QLD, SA, WA, TAS, NT or ACT
  -citizen             Australian citizen or permanent resident
  -resident            Lives in the chosen state or territory
  -owns-property       Owns a home or land
  -household           Number of people in the household (>= 1)
  -independent-income  At least one applicant has independent income
  -income              Weekly gross household income in dollars
  -assets              Assessable assets in dollars (excluding super)
  -priority            At risk of homelessness, disability or escaping violence

EXIT CODES:
  0  Assessment printed
  1  Output could not be written
  2  Invalid or missing answers

EXAMPLES:
  quiz -state=NSW -citizen -resident -owns-property=false -household=1 \
       -independent-income -income=600 -assets=20000 -priority=false
*/
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/warp/housing-engine/housing"
	"github.com/warp/housing-engine/logging"
	"github.com/warp/housing-engine/render"
)

const (
	exitOK      = 0
	exitOutput  = 1
	exitInvalid = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type answers struct {
	state             string
	citizen           bool
	resident          bool
	ownsProperty      bool
	household         int
	independentIncome bool
	income            string
	assets            string
	priority          bool
	logLevel          string
}

var required = []string{
	"state", "citizen", "resident", "owns-property", "household",
	"independent-income", "income", "assets", "priority",
}

func run(args []string, stdout, stderr io.Writer) int {
	var a answers
	fs := flag.NewFlagSet("quiz", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&a.state, "state", "", "State or territory code (NSW, VIC, QLD, SA, WA, TAS, NT, ACT)")
	fs.BoolVar(&a.citizen, "citizen", false, "Australian citizen or permanent resident")
	fs.BoolVar(&a.resident, "resident", false, "Lives in the chosen state or territory")
	fs.BoolVar(&a.ownsProperty, "owns-property", false, "Owns a home or land")
	fs.IntVar(&a.household, "household", 0, "Number of people in the household")
	fs.BoolVar(&a.independentIncome, "independent-income", false, "At least one applicant has independent income")
	fs.StringVar(&a.income, "income", "", "Weekly gross household income in dollars")
	fs.StringVar(&a.assets, "assets", "", "Assessable assets in dollars, excluding superannuation")
	fs.BoolVar(&a.priority, "priority", false, "At risk of homelessness, disability or escaping violence")
	fs.StringVar(&a.logLevel, "log-level", "warn", "Log level for diagnostics on stderr")

	if err := fs.Parse(args); err != nil {
		return exitInvalid
	}

	logger, err := logging.New(a.logLevel, "console")
	if err != nil {
		fmt.Fprintf(stderr, "quiz: %v\n", err)
		return exitInvalid
	}
	defer logger.Sync()

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	var missing []string
	for _, name := range required {
		if !set[name] {
			missing = append(missing, "-"+name)
		}
	}
	if len(missing) > 0 {
		fmt.Fprintf(stderr, "quiz: missing answers: %s\n", strings.Join(missing, ", "))
		return exitInvalid
	}

	in, err := a.toInput()
	if err != nil {
		fmt.Fprintf(stderr, "quiz: %v\n", err)
		return exitInvalid
	}

	res, err := housing.Evaluate(in)
	if err != nil {
		fmt.Fprintf(stderr, "quiz: %v\n", err)
		return exitInvalid
	}
	logger.Debug("assessment evaluated",
		zap.String("jurisdiction", string(res.Jurisdiction)),
		zap.Bool("eligible", res.Eligible),
		zap.Any("notes", res.Codes()),
	)

	if err := render.Text(stdout, res); err != nil {
		logger.Error("failed to write assessment", zap.Error(err))
		return exitOutput
	}
	return exitOK
}

func (a answers) toInput() (housing.EligibilityInput, error) {
	j, err := housing.ParseJurisdiction(a.state)
	if err != nil {
		return housing.EligibilityInput{}, err
	}
	income, err := parseDollars("income", a.income)
	if err != nil {
		return housing.EligibilityInput{}, err
	}
	assets, err := parseDollars("assets", a.assets)
	if err != nil {
		return housing.EligibilityInput{}, err
	}
	return housing.EligibilityInput{
		Jurisdiction:           j,
		IsCitizenOrPR:          a.citizen,
		IsJurisdictionResident: a.resident,
		OwnsProperty:           a.ownsProperty,
		HouseholdSize:          a.household,
		HasIndependentIncome:   a.independentIncome,
		WeeklyGrossIncome:      income,
		AssessableAssets:       assets,
		HasPriorityNeed:        a.priority,
	}, nil
}

// parseDollars accepts "1370", "1370.50" or "$1,370".
func parseDollars(name, raw string) (decimal.Decimal, error) {
	s := strings.NewReplacer("$", "", ",", "").Replace(strings.TrimSpace(raw))
	if s == "" {
		return decimal.Zero, errors.New("-" + name + " is required")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("-%s: %q is not a dollar amount", name, raw)
	}
	return d, nil
}
