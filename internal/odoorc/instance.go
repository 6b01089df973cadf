package odoorc

import (
	"fmt"
	"strconv"

	"gopkg.in/ini.v1"
)

// sentryOdooDir is where the Odoo sources live inside the image.
const sentryOdooDir = "/home/odoo/instance/odoo"

// InstanceType resolves the deployment flavour from INSTANCE_TYPE (it) and
// the Odoo-native ODOO_STAGE (ost). ODOO_STAGE may be omitted; when both are
// given they must name the same stage:
//
//	INSTANCE_TYPE  ODOO_STAGE
//	production     production
//	updates        staging
//	test           staging
//	develop        dev
func InstanceType(it, ost string) (string, error) {
	switch {
	case it == "" && ost == "":
		return "", fmt.Errorf("%w: INSTANCE_TYPE and/or ODOO_STAGE must be defined and match", ErrInstanceType)
	case ost == "":
		return it, nil
	case it == "production" && ost == "production":
		return "production", nil
	case it == "updates" && ost == "staging":
		return "updates", nil
	case it == "develop" && ost == "dev":
		return "develop", nil
	case it == "test" && ost == "staging":
		return "test", nil
	}

	return "", fmt.Errorf("%w: INSTANCE_TYPE=%q and ODOO_STAGE=%q do not match", ErrInstanceType, it, ost)
}

// UpdateSentry points sentry at the Odoo sources and tags events with the
// instance type. It does nothing unless sentry_enabled parses as true.
func UpdateSentry(cfg *ini.File, instanceType string) {
	if !sentryEnabled(cfg) {
		return
	}

	opts := cfg.Section(mainSection)
	opts.Key("sentry_odoo_dir").SetValue(sentryOdooDir)
	opts.Key("sentry_environment").SetValue(instanceType)
}

func sentryEnabled(cfg *ini.File) bool {
	opts := cfg.Section(mainSection)
	if !opts.HasKey("sentry_enabled") {
		return false
	}

	enabled, err := strconv.ParseBool(opts.Key("sentry_enabled").Value())
	return err == nil && enabled
}
