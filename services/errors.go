package services

import (
	"fmt"

	"dispatch-tracker/repositories"
)

var ErrLastSuperAdmin = fmt.Errorf("%w: the last super_admin cannot be demoted", repositories.ErrInvalidState)
