package config

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"

	apperrors "github.com/pmehra7/summingbird/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	semverPattern     = regexp.MustCompile(`^\d+\.\d+(?:\.\d+)?(?:-[0-9A-Za-z-.]+)?(?:\+[0-9A-Za-z-.]+)?$`)
	operatorIDPattern = regexp.MustCompile(`^[a-z0-9_]+$`)

	passthroughKinds = map[string]struct{}{"name": {}, "identity_key": {}, "option_map": {}}
	transformKinds   = map[string]struct{}{"flat_map": {}, "write": {}, "left_join": {}}
	storedTransforms = map[string]struct{}{"write": {}, "left_join": {}}
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("semver", func(fl validator.FieldLevel) bool {
			return semverPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("operator_id", func(fl validator.FieldLevel) bool {
			return operatorIDPattern.MatchString(fl.Field().String())
		})

		validateInst = v
	})

	return validateInst
}

// ValidateTopology performs schema and cross-field validation on a topology.
// Schema violations are reported one at a time; operator-level problems are
// collected and returned together.
func ValidateTopology(topo *Topology) error {
	if topo == nil {
		return apperrors.NewValidationError("topology", "topology is nil", nil)
	}

	v := validatorInstance()
	if err := v.Struct(topo); err != nil {
		return convertValidationError(err)
	}

	var result *multierror.Error
	index := make(map[string]int, len(topo.Operators))

	for i, op := range topo.Operators {
		if _, exists := index[op.ID]; exists {
			result = multierror.Append(result, apperrors.NewValidationError(fieldForOperator(i, "id"), fmt.Sprintf("duplicate operator id %q", op.ID), nil))
			continue
		}
		index[op.ID] = i

		if err := ValidateOperator(op); err != nil {
			result = multierror.Append(result, err)
		}
	}

	for i, op := range topo.Operators {
		for _, ref := range []struct{ field, id string }{{"input", op.Input}, {"left", op.Left}, {"right", op.Right}} {
			if ref.id == "" {
				continue
			}
			if _, ok := index[ref.id]; !ok {
				result = multierror.Append(result, apperrors.NewValidationError(fieldForOperator(i, ref.field), fmt.Sprintf("references unknown operator %q", ref.id), nil))
			}
		}
	}

	if _, ok := index[topo.Terminal]; !ok {
		result = multierror.Append(result, apperrors.NewValidationError("terminal", fmt.Sprintf("references unknown operator %q", topo.Terminal), nil))
	}

	if err := result.ErrorOrNil(); err != nil {
		return err
	}

	if cycle := detectCycle(topo.Operators); len(cycle) > 0 {
		return apperrors.NewValidationError("operators", fmt.Sprintf("dependency cycle detected: %s", strings.Join(cycle, " -> ")), nil)
	}

	return nil
}

// ValidateOperator checks the fields a single operator requires for its type,
// independent of the rest of the topology.
func ValidateOperator(op OperatorSpec) error {
	v := validatorInstance()
	if err := v.Struct(op); err != nil {
		return convertValidationError(err)
	}

	switch op.Type {
	case TypeSource:
		if len(op.Inputs()) > 0 {
			return apperrors.NewValidationError(op.ID, "source operators take no input", nil)
		}
		if op.Kind != "" {
			return apperrors.NewValidationError(op.ID, "source operators have no kind", nil)
		}
	case TypePassthrough:
		if err := requireSingleInput(op); err != nil {
			return err
		}
		if _, ok := passthroughKinds[op.Kind]; op.Kind != "" && !ok {
			return apperrors.NewValidationError(op.ID, fmt.Sprintf("unknown passthrough kind %q", op.Kind), nil)
		}
	case TypeTransform:
		if err := requireSingleInput(op); err != nil {
			return err
		}
		if _, ok := transformKinds[op.Kind]; op.Kind != "" && !ok {
			return apperrors.NewValidationError(op.ID, fmt.Sprintf("unknown transform kind %q", op.Kind), nil)
		}
		if _, ok := storedTransforms[op.Kind]; ok && op.Store == "" {
			return apperrors.NewValidationError(op.ID, fmt.Sprintf("%s transforms require a store", op.Kind), nil)
		}
	case TypeMerge:
		if op.Left == "" || op.Right == "" {
			return apperrors.NewValidationError(op.ID, "merge operators require left and right", nil)
		}
		if op.Input != "" {
			return apperrors.NewValidationError(op.ID, "merge operators use left and right instead of input", nil)
		}
	case TypeAggregate:
		if err := requireSingleInput(op); err != nil {
			return err
		}
		if op.Store == "" {
			return apperrors.NewValidationError(op.ID, "aggregate operators require a store", nil)
		}
	default:
		return apperrors.NewValidationError(op.ID, fmt.Sprintf("unknown operator type %q", op.Type), nil)
	}

	return nil
}

func requireSingleInput(op OperatorSpec) error {
	if op.Input == "" {
		return apperrors.NewValidationError(op.ID, fmt.Sprintf("%s operators require an input", op.Type), nil)
	}
	if op.Left != "" || op.Right != "" {
		return apperrors.NewValidationError(op.ID, "left and right only apply to merge operators", nil)
	}
	return nil
}
