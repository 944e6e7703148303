package verify

import (
	"context"
	"sort"
	"time"

	"github.com/harrison/verifier/internal/config"
	"github.com/harrison/verifier/internal/models"
)

// ParameterVerifier checks the document's parameter changes against the
// policy. It never touches the network.
type ParameterVerifier struct {
	policy config.ParameterPolicy
}

// NewParameterVerifier creates a verifier for policy.
func NewParameterVerifier(policy config.ParameterPolicy) *ParameterVerifier {
	return &ParameterVerifier{policy: policy}
}

// Name implements Check.
func (v *ParameterVerifier) Name() string {
	return models.CheckParameters
}

// Verify runs the completeness pass and then the mode pass. Both must pass.
func (v *ParameterVerifier) Verify(_ context.Context, doc *models.AnalysisDocument, _ models.Credentials) models.CheckResult {
	start := time.Now()
	result := models.Pass(v.Name())
	if _, bad := doc.InvalidField(models.FieldParameterChanges); bad {
		result = models.Fail(v.Name(), models.NewFault(models.FaultFormat, "parameter_changes must be an object"))
	} else if fault := v.Check(doc.ParameterChanges); fault != nil {
		result = models.Fail(v.Name(), fault)
	}
	result.Duration = time.Since(start)
	return result
}

// Check validates changes and returns the first fault found, or nil.
func (v *ParameterVerifier) Check(changes map[string]models.ParameterChange) *models.Fault {
	if fault := v.checkComplete(changes); fault != nil {
		return fault
	}

	switch v.policy.Mode {
	case config.ModeExact:
		return v.checkExact(changes)
	case config.ModeAny:
		return v.checkAny(changes)
	case config.ModeRange:
		return v.checkRange(changes)
	default:
		return models.NewFault(models.FaultPolicy, "unknown validation mode %q", v.policy.Mode)
	}
}

func (v *ParameterVerifier) checkComplete(changes map[string]models.ParameterChange) *models.Fault {
	for _, name := range v.policy.Required {
		if _, ok := changes[name]; !ok {
			return models.NewFault(models.FaultFormat, "missing parameter change data for: %s", name)
		}
	}

	for _, name := range sortedKeys(changes) {
		if changes[name].Malformed() {
			return models.NewFault(models.FaultFormat, "parameter change data for %s must be an object", name)
		}
		if field := changes[name].MissingField(); field != "" {
			return models.NewFault(models.FaultFormat, "missing %s for parameter: %s", field, name)
		}
	}
	return nil
}

func (v *ParameterVerifier) checkExact(changes map[string]models.ParameterChange) *models.Fault {
	for _, name := range sortedKeys(v.policy.Expected) {
		want := v.policy.Expected[name]
		got, ok := changes[name]
		if !ok {
			return models.NewFault(models.FaultFormat, "missing parameter change data for: %s", name)
		}
		if !models.ValuesEqual(got.Before, want.Before) || !models.ValuesEqual(got.After, want.After) {
			return models.NewFault(models.FaultMismatch, "%s value mismatch - expected %s→%s, got %s→%s",
				name,
				models.FormatValue(want.Before), models.FormatValue(want.After),
				models.FormatValue(got.Before), models.FormatValue(got.After))
		}
	}
	return nil
}

func (v *ParameterVerifier) checkAny(changes map[string]models.ParameterChange) *models.Fault {
	for _, name := range v.policy.Required {
		change := changes[name]
		if models.ValuesEqual(change.Before, change.After) {
			return models.NewFault(models.FaultMismatch, "no change detected for %s", name)
		}
	}
	return nil
}

func (v *ParameterVerifier) checkRange(changes map[string]models.ParameterChange) *models.Fault {
	for _, name := range sortedKeys(v.policy.Ranges) {
		bounds := v.policy.Ranges[name]
		change, ok := changes[name]
		if !ok {
			return models.NewFault(models.FaultFormat, "missing parameter change data for: %s", name)
		}
		before, isNum := models.NumericValue(change.Before)
		if !isNum {
			return models.NewFault(models.FaultFormat, "%s before value %s is not a number",
				name, models.FormatValue(change.Before))
		}
		if before < bounds.MinBefore || before > bounds.MaxBefore {
			return models.NewFault(models.FaultMismatch, "%s before value %v not in range %v-%v",
				name, before, bounds.MinBefore, bounds.MaxBefore)
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
