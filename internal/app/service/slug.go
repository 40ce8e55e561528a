package service

import (
	"fmt"

	"github.com/karimelh/vitrine-backend/pkg/util"
)

// slugProbe reports whether a slug is already taken, ignoring excludeID so
// renames do not collide with themselves.
type slugProbe func(slug string, excludeID uint) (bool, error)

// uniqueSlug slugifies the desired name and probes storage, appending -1,
// -2, ... until a free slug is found. Probe-then-insert is best effort: a
// concurrent duplicate surfaces as a unique-constraint error from the store.
func uniqueSlug(desired string, excludeID uint, exists slugProbe) (string, error) {
	base := util.Slugify(desired)
	if base == "" {
		base = "item"
	}

	slug := base
	for suffix := 1; ; suffix++ {
		taken, err := exists(slug, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, suffix)
	}
}
