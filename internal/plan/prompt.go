package plan

import (
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/billy/internal/planning"
	"github.com/MrJamesThe3rd/billy/internal/summary"
)

var promptTemplate = template.Must(template.New("plan").Funcs(template.FuncMap{
	"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
	"orNone": func(s string) string {
		if s == "" {
			return "none"
		}
		return s
	},
}).Parse(`Today is {{.Today}}. Build a short monthly financial plan for me.

My bills this month:
- Active bills: {{.Summary.ActiveBillsCount}}
- Fixed bills: {{money .Summary.TotalFixedBillsValue}} ({{orNone .Summary.FixedBillsNames}})
- One-off expenses this month: {{money .Summary.TotalMonthlyMiscBillsValue}}
- Recent one-off expenses: {{orNone .Summary.MonthlyMiscBillsNames}}
- Installment plans still running: {{money .Summary.TotalInstallmentValue}} in total ({{orNone .Summary.InstallmentBillsNames}})
- Due this month: {{money .Summary.TotalValue}}
- Projected next month: {{money .Summary.PartialValueNextMonth}}
- Projected in two months: {{money .Summary.PartialValue2MonthsLater}}
- Projected in three months: {{money .Summary.PartialValue3MonthsLater}}
{{if .Goals}}
My savings goals:
{{range .Goals}}- {{.Name}}: {{money .Saved}} of {{money .Goal}} saved, target {{.Target}}, needs {{money .Monthly}} per month
{{end}}{{else}}
I have no savings goals yet.
{{end}}
Suggest where to cut, how much to set aside each month and which goal to prioritize.`))

type goalLine struct {
	Name    string
	Saved   decimal.Decimal
	Goal    decimal.Decimal
	Target  string
	Monthly decimal.Decimal
}

type promptData struct {
	Today   string
	Summary *summary.Summary
	Goals   []goalLine
}

// BuildPrompt renders the text sent to the model.
func BuildPrompt(sum *summary.Summary, goals []*planning.Planning, now time.Time) (string, error) {
	data := promptData{
		Today:   now.Format(time.DateOnly),
		Summary: sum,
	}

	for _, g := range goals {
		data.Goals = append(data.Goals, goalLine{
			Name:    g.Name,
			Saved:   g.SavedValue,
			Goal:    g.GoalValue,
			Target:  g.TargetDate.Format(time.DateOnly),
			Monthly: g.MonthlyDeposit(now),
		})
	}

	var b strings.Builder
	if err := promptTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}

	return b.String(), nil
}
