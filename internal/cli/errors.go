package cli

import "fmt"

func errNotFound(kind, id string) error {
	return fmt.Errorf("%s not found: %s", kind, id)
}
