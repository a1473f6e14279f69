package analysis

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/KaramelBytes/dsreport-cli/internal/dataset"
)

// RenderOptions controls report rendering.
type RenderOptions struct {
	// Now supplies the generation timestamp; defaults to time.Now.
	Now func() time.Time
}

const reportSuffix = "_analysis_report"

var whitespaceRun = regexp.MustCompile(`[\s\p{Z}\x{FEFF}]+`)

// ReportBaseName lowercases the dataset name, replaces whitespace runs with
// underscores and appends "_analysis_report".
func ReportBaseName(datasetName string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(datasetName), "_") + reportSuffix
}

// ReportFilename is the markdown report file name for a dataset display name.
func ReportFilename(datasetName string) string {
	return ReportBaseName(datasetName) + ".md"
}

// RenderReport produces the markdown analysis report. Everything before the
// trailing timestamp line is a pure function of the inputs.
func RenderReport(name string, ds *dataset.Dataset, target string, opt RenderOptions) string {
	now := time.Now
	if opt.Now != nil {
		now = opt.Now
	}
	var b strings.Builder
	q := Assess(ds, target)
	shape := ds.Shape()

	fmt.Fprintf(&b, "# Dataset Analysis Report: %s\n\n", name)
	b.WriteString("## 1. Dataset Overview\n\n")
	fmt.Fprintf(&b, "- **Dataset:** %s\n", name)
	fmt.Fprintf(&b, "- **Number of Rows:** %d\n", shape.Rows)
	fmt.Fprintf(&b, "- **Number of Columns:** %d\n", shape.Columns)
	fmt.Fprintf(&b, "- **Memory Usage:** %s KB\n\n", Fixed(MemoryKB(shape), 2))

	if q == nil {
		b.WriteString("_The dataset has no data rows; column analysis was skipped._\n\n")
	} else {
		writeStructure(&b, q)
		writeStatistics(&b, ds, q)
		writeQuality(&b, q, target)
		writeObservations(&b, q)
		writeRecommendations(&b, q)
	}

	t := now()
	b.WriteString("\n---\n")
	fmt.Fprintf(&b, "*Report generated on %s at %s*\n", t.Format("2006-01-02"), t.Format("15:04:05"))
	return b.String()
}

func writeStructure(b *strings.Builder, q *Quality) {
	b.WriteString("## 2. Data Types and Structure\n\n")
	b.WriteString("### Column Information:\n\n")
	b.WriteString("| Column | Non-Null Count | Data Type | Feature Type | Unique Values |\n")
	b.WriteString("|--------|----------------|-----------|--------------|---------------|\n")
	for _, p := range q.Profiles {
		fmt.Fprintf(b, "| %s | %d | %s | %s | %d |\n", cell(p.Name), p.NonNull(q.Shape.Rows), p.Kind, p.Type, p.UniqueCount)
	}
	b.WriteString("\n")

	b.WriteString("### Feature Types Summary:\n")
	fmt.Fprintf(b, "- **Numerical Features:** %d\n", q.Features.Numerical)
	fmt.Fprintf(b, "- **Categorical Features:** %d\n", q.Features.Categorical)
	fmt.Fprintf(b, "- **Binary Features:** %d\n", q.Features.Binary)
	fmt.Fprintf(b, "- **Ordinal Features:** %d\n\n", q.Features.Ordinal)
}

func writeStatistics(b *strings.Builder, ds *dataset.Dataset, q *Quality) {
	b.WriteString("## 3. Statistical Summary\n\n")
	var numeric []string
	for _, p := range q.Profiles {
		if p.Kind == KindNumber {
			numeric = append(numeric, p.Name)
		}
	}
	if len(numeric) == 0 {
		return
	}
	summaries := make([]Summary, len(numeric))
	for i, col := range numeric {
		summaries[i] = DescribeColumn(ds, col)
	}

	b.WriteString("### Numerical Statistics:\n\n")
	heads := make([]string, len(numeric))
	seps := make([]string, len(numeric))
	for i, col := range numeric {
		heads[i] = cell(col)
		seps[i] = "---"
	}
	fmt.Fprintf(b, "| Statistic | %s |\n", strings.Join(heads, " | "))
	fmt.Fprintf(b, "|-----------|%s|\n", strings.Join(seps, "|"))
	for _, stat := range NumericStatNames {
		vals := make([]string, len(summaries))
		for i, s := range summaries {
			v, ok := s.Stat(stat)
			if !ok {
				v = "-"
			}
			vals[i] = v
		}
		fmt.Fprintf(b, "| %s | %s |\n", stat, strings.Join(vals, " | "))
	}
	b.WriteString("\n")
}

func writeQuality(b *strings.Builder, q *Quality, target string) {
	rows := q.Shape.Rows
	b.WriteString("## 4. Data Quality Analysis\n\n")

	b.WriteString("### Missing Values:\n")
	if q.HasNulls() {
		fmt.Fprintf(b, "- **Total Missing Values:** %d (%s%% of dataset)\n", q.TotalNulls, Fixed(q.NullPercentage, 2))
		b.WriteString("- **Columns with Missing Values:**\n")
		for _, p := range q.ColumnsWithNulls {
			fmt.Fprintf(b, "  - %s: %d missing (%s%%)\n", cell(p.Name), p.NullCount, PercentOf(p.NullCount, rows))
		}
	} else {
		b.WriteString("- No missing values detected in the dataset.\n")
	}
	b.WriteString("\n")

	b.WriteString("### Dataset Suitability for Machine Learning:\n")
	if q.SuitableForML {
		fmt.Fprintf(b, "- Dataset is suitable for machine learning with sufficient rows (%d) and features (%d).\n", rows, q.Shape.Columns)
	} else {
		b.WriteString("- Dataset may be too small for reliable ML models. Consider collecting more data.\n")
	}
	b.WriteString("\n")

	if q.Imbalance != nil && target != "" {
		fmt.Fprintf(b, "### Target Variable Analysis (%s):\n", cell(target))
		b.WriteString("- **Class Distribution:**\n")
		for _, c := range q.Imbalance.Classes {
			fmt.Fprintf(b, "  - %s: %d (%s%%)\n", cell(c.Label), c.Count, PercentOf(c.Count, rows))
		}
		if q.Imbalance.IsImbalanced {
			fmt.Fprintf(b, "- **Class Imbalance Detected:** Yes (ratio: %s)\n", q.Imbalance.Ratio)
			b.WriteString("- Consider using techniques like SMOTE, class weights, or stratified sampling.\n")
		} else {
			b.WriteString("- **Class Imbalance:** No significant imbalance detected.\n")
		}
		b.WriteString("\n")
	}
}

// Observations lists the derived findings in their fixed order.
func Observations(q *Quality) []string {
	var out []string
	if q.HasNulls() {
		out = append(out, fmt.Sprintf("The dataset contains missing values in %d columns, requiring imputation or removal strategies.", len(q.ColumnsWithNulls)))
	}
	if q.IsImbalanced() {
		out = append(out, "The target variable shows class imbalance, which may require special handling during model training.")
	}
	for _, p := range q.Profiles {
		if p.Type == TypeCategorical && p.UniqueCount > 10 {
			out = append(out, "Some categorical features have high cardinality, which may need encoding strategies like target encoding.")
			break
		}
	}
	if q.SuitableForML {
		out = append(out, "The dataset has adequate size for machine learning modeling.")
	} else {
		out = append(out, "Dataset size is limited, which may affect model performance and generalization.")
	}
	return out
}

// Recommendations lists the conditional advice followed by the three fixed items.
func Recommendations(q *Quality) []string {
	var out []string
	if q.HasNulls() {
		out = append(out, "Handle missing values through imputation (mean/median for numerical, mode for categorical) or removal if missingness is substantial.")
	}
	if q.IsImbalanced() {
		out = append(out, "Address class imbalance using oversampling (SMOTE), undersampling, or class weight adjustments.")
	}
	return append(out,
		"Perform feature engineering to create more meaningful features from existing ones.",
		"Consider feature scaling for numerical features before model training.",
		"Split data into training, validation, and test sets with stratification if dealing with classification.",
	)
}

func writeObservations(b *strings.Builder, q *Quality) {
	b.WriteString("## 5. Key Observations\n\n")
	for i, o := range Observations(q) {
		fmt.Fprintf(b, "%d. %s\n", i+1, o)
	}
}

func writeRecommendations(b *strings.Builder, q *Quality) {
	b.WriteString("\n## 6. Recommendations\n\n")
	for i, r := range Recommendations(q) {
		fmt.Fprintf(b, "%d. %s\n", i+1, r)
	}
}

// Fixed formats f with the given number of decimals, rounding ties away from zero.
func Fixed(f float64, places int) string {
	r, err := stats.Round(f, places)
	if err != nil {
		r = f
	}
	return strconv.FormatFloat(r, 'f', places, 64)
}

// PercentOf renders n as a percentage of total with one decimal.
func PercentOf(n, total int) string {
	if total == 0 {
		return Fixed(0, 1)
	}
	return Fixed(float64(n)/float64(total)*100, 1)
}

// cell keeps a value on one line and out of markdown table syntax.
func cell(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/")
}
