package assets

import (
	"fmt"
	"strings"
)

// ValidateAssetName checks a bare style or template name such as "dark" or
// "default". The name is joined with its kind's directory and extension, so
// it must not carry a separator or a dot; CSS files given by path never
// reach this check.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if i := strings.IndexAny(name, "/\\."); i >= 0 {
		return fmt.Errorf("%w: %q contains %q (use a bare name like \"dark\")", ErrInvalidAssetName, name, name[i])
	}
	return nil
}
