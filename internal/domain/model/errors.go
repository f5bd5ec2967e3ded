package model

import (
	"fmt"

	"codejarvis/internal/common"
)

var errInvalidFilter = fmt.Errorf("invalid filter value: %w", common.ErrValidation)
