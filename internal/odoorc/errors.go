package odoorc

import "errors"

var (
	// ErrUnknownContainerType is returned for a CONTAINER_TYPE that has no
	// worker profile.
	ErrUnknownContainerType = errors.New("unknown container type")

	// ErrInstanceType is returned when INSTANCE_TYPE and ODOO_STAGE are
	// both empty or disagree.
	ErrInstanceType = errors.New("cannot determine the instance type")
)
