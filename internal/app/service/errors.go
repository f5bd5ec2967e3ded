package service

import (
	"fmt"

	"codejarvis/internal/common"
)

var (
	errUnknownPlatform = fmt.Errorf("unknown platform: %w", common.ErrValidation)
	errUnknownProblem  = fmt.Errorf("unknown practice problem: %w", common.ErrValidation)
	errUnknownLanguage = fmt.Errorf("unsupported language: %w", common.ErrValidation)
)
