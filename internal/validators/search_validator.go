package validators

import (
	"errors"
	"fmt"

	"tripapi/internal/models"
	"tripapi/internal/utils"
)

var ErrUnknownPreferenceKey = errors.New("unknown preference key")

// ValidateSearchCriteria checks required search fields and rejects
// preference keys outside the fixed vehicle specification set. A bad
// criteria set is a caller error, never a silent empty result.
func ValidateSearchCriteria(criteria *models.SearchCriteria) error {
	if err := utils.ValidateStruct(criteria); err != nil {
		return err
	}

	if criteria.MinTakeOffTime != "" && criteria.MaxTakeOffTime != "" &&
		criteria.MinTakeOffTime > criteria.MaxTakeOffTime {
		return errors.New("min take-off time is after max take-off time")
	}

	for key := range criteria.Preferences {
		if !models.IsSpecificationKey(key) {
			return fmt.Errorf("%w: %s", ErrUnknownPreferenceKey, key)
		}
	}
	return nil
}
