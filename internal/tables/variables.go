package tables

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strconv"

	"github.com/vk/cogroup/internal/diag"
	"github.com/vk/cogroup/internal/sample"
)

// Stage tags diagnostics produced while loading tables.
const Stage = "tables"

// PermanovaFile is the significance table inside the variable directory.
const PermanovaFile = "permanova_results.csv"

// Significance selects important variables from the PERMANOVA table.
type Significance struct {
	PValueMax     float64
	EffectSizeMin float64
}

// DefaultSignificance returns p <= 0.05 and R² >= 0.1.
func DefaultSignificance() Significance {
	return Significance{PValueMax: 0.05, EffectSizeMin: 0.1}
}

// LoadImportantVariables returns, in table order, the variables of the
// PERMANOVA table that pass sig. A missing table yields no variables and a
// warning. Rows whose statistics are not numbers never pass.
func LoadImportantVariables(dir string, sig Significance) ([]string, []diag.Event, error) {
	ev := diag.For(Stage)
	path := filepath.Join(dir, PermanovaFile)

	t, err := readTable(path)
	if errors.Is(err, fs.ErrNotExist) {
		ev.Warn("PERMANOVA results not found.", "path", path)
		return nil, ev.List(), nil
	}
	if err != nil {
		return nil, nil, err
	}

	idx, err := t.require("Variable", "p_value", "R_squared")
	if err != nil {
		return nil, nil, err
	}

	var important []string
	seen := make(map[string]struct{})
	for _, rec := range t.rows {
		name := cell(rec, idx[0])
		p, perr := strconv.ParseFloat(cell(rec, idx[1]), 64)
		r2, rerr := strconv.ParseFloat(cell(rec, idx[2]), 64)
		if name == "" || perr != nil || rerr != nil {
			ev.Debug("Skipping PERMANOVA row without usable statistics.", "variable", name)
			continue
		}
		if p > sig.PValueMax || r2 < sig.EffectSizeMin {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		important = append(important, name)
	}

	ev.Info("Found important variables.", "count", len(important), "variables", important)
	return important, ev.List(), nil
}

// Variables declares the kind of each named variable from the metadata
// column: a column whose present cells are all numbers is continuous,
// anything else is categorical. Variables without a column are declared
// categorical; the refine stage skips them.
func Variables(names []string, md sample.Metadata) []sample.Variable {
	vars := make([]sample.Variable, 0, len(names))
	for _, name := range names {
		kind := sample.Categorical
		if md.HasColumn(name) && numericColumn(md, name) {
			kind = sample.Continuous
		}
		vars = append(vars, sample.Variable{Name: name, Kind: kind})
	}
	return vars
}

func numericColumn(md sample.Metadata, col string) bool {
	for _, row := range md {
		if v, ok := row[col]; ok && !v.IsNumeric() {
			return false
		}
	}
	return true
}
